package importer

import (
	"fmt"
	"testing"

	"patron-import/core/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecords(n int) []identity.User {
	records := make([]identity.User, n)
	for i := range records {
		records[i] = identity.User{ExternalSystemID: fmt.Sprintf("ext-%d", i)}
	}
	return records
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name     string
		records  int
		pageSize int
		batches  int
		lastLen  int
	}{
		{"Empty input", 0, 10, 0, 0},
		{"Exact multiple", 20, 10, 2, 10},
		{"Final partial batch", 25, 10, 3, 5},
		{"Page larger than input", 3, 10, 1, 3},
		{"Page size one", 4, 1, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := makeRecords(tt.records)
			batches, err := Partition(records, tt.pageSize)
			require.NoError(t, err)
			require.Len(t, batches, tt.batches)

			// All but the last batch are exactly pageSize; concatenation
			// reproduces the input in order.
			flat := make([]identity.User, 0, tt.records)
			for i, batch := range batches {
				if i < len(batches)-1 {
					assert.Len(t, batch, tt.pageSize)
				} else {
					assert.Len(t, batch, tt.lastLen)
				}
				flat = append(flat, batch...)
			}
			assert.Equal(t, records, flat)
		})
	}
}

func TestPartition_InvalidPageSize(t *testing.T) {
	for _, pageSize := range []int{0, -1} {
		_, err := Partition(makeRecords(3), pageSize)
		assert.Error(t, err)
	}
}
