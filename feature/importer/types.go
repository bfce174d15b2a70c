package importer

import "time"

// Status is the terminal state of one record's import.
type Status string

const (
	// StatusCreated means the record and all its creation sub-steps succeeded.
	StatusCreated Status = "created"
	// StatusUpdated means the existing remote record was replaced.
	StatusUpdated Status = "updated"
	// StatusFailed means the record could not be imported; Reason explains why.
	StatusFailed Status = "failed"
)

// Outcome is the per-record result of an import run. Every input record
// gets exactly one Outcome.
type Outcome struct {
	// ExternalSystemID identifies the input record.
	ExternalSystemID string `json:"externalSystemId"`

	// Status is the terminal state.
	Status Status `json:"status"`

	// Reason carries the failure cause for StatusFailed outcomes.
	Reason string `json:"reason,omitempty"`
}

// FailedRecord identifies a record that could not be imported, for
// operator follow-up.
type FailedRecord struct {
	ExternalSystemID string `json:"externalSystemId"`
	Reason           string `json:"reason"`
}

// RunSummary aggregates the outcomes of one import run.
type RunSummary struct {
	// Total is the number of input records.
	Total int `json:"total"`

	// Created counts records newly created on the remote service.
	Created int `json:"created"`

	// Updated counts records that matched an existing remote record.
	Updated int `json:"updated"`

	// Failed counts records that ended in StatusFailed.
	Failed int `json:"failed"`

	// FailedRecords identifies each failed record.
	FailedRecords []FailedRecord `json:"failedRecords,omitempty"`

	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration"`
}

// add folds one outcome into the summary.
func (s *RunSummary) add(o Outcome) {
	switch o.Status {
	case StatusCreated:
		s.Created++
	case StatusUpdated:
		s.Updated++
	case StatusFailed:
		s.Failed++
		s.FailedRecords = append(s.FailedRecords, FailedRecord{
			ExternalSystemID: o.ExternalSystemID,
			Reason:           o.Reason,
		})
	}
}

// ReferenceTables is an immutable snapshot of the name -> id lookup tables
// used to translate input records. It is built once per run; no component
// mutates it after construction.
type ReferenceTables struct {
	// AddressTypes maps address-type names to service ids.
	AddressTypes map[string]string

	// PatronGroups maps patron-group names to service ids.
	PatronGroups map[string]string

	// ContactTypes maps preferred-contact-type names to their well-known
	// ids. This table is static; the service does not expose it.
	ContactTypes map[string]string
}

// contactTypes are the well-known preferred-contact-type ids.
var contactTypes = map[string]string{
	"mail":   "001",
	"email":  "002",
	"text":   "003",
	"phone":  "004",
	"mobile": "005",
}

// NewReferenceTables builds a snapshot from the two fetched tables plus the
// static contact-type table. Nil maps are replaced by empty ones so lookups
// degrade to dropped fields rather than panics.
func NewReferenceTables(addressTypes, patronGroups map[string]string) ReferenceTables {
	if addressTypes == nil {
		addressTypes = map[string]string{}
	}
	if patronGroups == nil {
		patronGroups = map[string]string{}
	}
	return ReferenceTables{
		AddressTypes: addressTypes,
		PatronGroups: patronGroups,
		ContactTypes: contactTypes,
	}
}
