package importer

import (
	"testing"

	"patron-import/core/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() ReferenceTables {
	return NewReferenceTables(
		map[string]string{"Home": "at-home", "Work": "at-work"},
		map[string]string{"staff": "pg-staff", "undergrad": "pg-ug"},
	)
}

func TestMaterialize_TranslatesReferenceFields(t *testing.T) {
	record := identity.User{
		ExternalSystemID: "ext-1",
		PatronGroup:      "staff",
		Personal: &identity.Personal{
			LastName:               "Doe",
			PreferredContactTypeID: "email",
			Addresses: []identity.Address{
				{City: "Lund", AddressTypeID: "Home"},
			},
		},
	}

	out := Materialize(record, testTables())

	assert.Equal(t, "pg-staff", out.PatronGroup)
	require.NotNil(t, out.Personal)
	assert.Equal(t, "002", out.Personal.PreferredContactTypeID)
	require.Len(t, out.Personal.Addresses, 1)
	assert.Equal(t, "at-home", out.Personal.Addresses[0].AddressTypeID)
	assert.Equal(t, "Lund", out.Personal.Addresses[0].City)
}

func TestMaterialize_DropsUnmappableFields(t *testing.T) {
	record := identity.User{
		ExternalSystemID: "ext-2",
		PatronGroup:      "alumni",
		Personal: &identity.Personal{
			PreferredContactTypeID: "carrier-pigeon",
		},
	}

	out := Materialize(record, testTables())

	assert.Empty(t, out.PatronGroup)
	assert.Empty(t, out.Personal.PreferredContactTypeID)
}

func TestMaterialize_ExcludesAddressesWithUnresolvableType(t *testing.T) {
	record := identity.User{
		ExternalSystemID: "ext-3",
		Personal: &identity.Personal{
			Addresses: []identity.Address{
				{City: "Keep", AddressTypeID: "Home"},
				{City: "Drop", AddressTypeID: "Igloo"},
			},
		},
	}

	out := Materialize(record, testTables())

	require.Len(t, out.Personal.Addresses, 1)
	assert.Equal(t, "Keep", out.Personal.Addresses[0].City)
}

func TestMaterialize_PureAndIdempotent(t *testing.T) {
	record := identity.User{
		ExternalSystemID: "ext-4",
		PatronGroup:      "undergrad",
		Personal: &identity.Personal{
			PreferredContactTypeID: "mail",
			Addresses: []identity.Address{
				{City: "A", AddressTypeID: "Home"},
				{City: "B", AddressTypeID: "Nowhere"},
			},
		},
	}
	tables := testTables()

	first := Materialize(record, tables)
	second := Materialize(record, tables)
	assert.Equal(t, first, second)

	// Input untouched, including the shared Personal block.
	assert.Equal(t, "undergrad", record.PatronGroup)
	assert.Equal(t, "mail", record.Personal.PreferredContactTypeID)
	assert.Len(t, record.Personal.Addresses, 2)
}

func TestMaterializeForCreate_AssignsFreshID(t *testing.T) {
	record := identity.User{ExternalSystemID: "ext-5"}
	tables := testTables()

	first := MaterializeForCreate(record, tables)
	second := MaterializeForCreate(record, tables)

	_, err := uuid.Parse(first.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestMaterializeForUpdate_CarriesRemoteID(t *testing.T) {
	record := identity.User{ExternalSystemID: "ext-6", PatronGroup: "staff"}

	out := MaterializeForUpdate(record, "remote-9", testTables())

	assert.Equal(t, "remote-9", out.ID)
	assert.Equal(t, "pg-staff", out.PatronGroup)
}
