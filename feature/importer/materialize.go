package importer

import (
	"patron-import/core/identity"

	"github.com/google/uuid"
)

// Materialize translates the human-readable reference fields of a record
// into service-internal identifiers. It is a pure function over its inputs:
//
//   - PatronGroup is replaced by its id, or dropped when unmappable.
//   - Personal.PreferredContactTypeID is replaced by its well-known id, or
//     dropped when unmappable.
//   - Each address's AddressTypeID is replaced by its id; addresses whose
//     type cannot be resolved are excluded entirely, since an address
//     without a valid type is unusable data.
//
// The input record is never mutated; a translated copy is returned.
func Materialize(record identity.User, tables ReferenceTables) identity.User {
	out := record

	if out.PatronGroup != "" {
		out.PatronGroup = tables.PatronGroups[out.PatronGroup]
	}

	if record.Personal != nil {
		personal := *record.Personal
		if personal.PreferredContactTypeID != "" {
			personal.PreferredContactTypeID = tables.ContactTypes[personal.PreferredContactTypeID]
		}

		if len(personal.Addresses) > 0 {
			addresses := make([]identity.Address, 0, len(personal.Addresses))
			for _, addr := range personal.Addresses {
				id, ok := tables.AddressTypes[addr.AddressTypeID]
				if !ok {
					continue
				}
				addr.AddressTypeID = id
				addresses = append(addresses, addr)
			}
			personal.Addresses = addresses
		}
		out.Personal = &personal
	}

	return out
}

// MaterializeForCreate translates the record and assigns it a freshly
// generated remote identifier. Generating the id client-side means a
// retried create is a new logical attempt, not a dedupe candidate.
func MaterializeForCreate(record identity.User, tables ReferenceTables) identity.User {
	out := Materialize(record, tables)
	out.ID = uuid.NewString()
	return out
}

// MaterializeForUpdate translates the record and carries over the remote
// identifier matched during reconciliation.
func MaterializeForUpdate(record identity.User, remoteID string, tables ReferenceTables) identity.User {
	out := Materialize(record, tables)
	out.ID = remoteID
	return out
}
