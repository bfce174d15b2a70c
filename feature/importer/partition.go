package importer

import (
	"fmt"

	"patron-import/core/identity"
)

// Partition splits records into batches of at most pageSize, preserving
// input order. The last batch may be shorter. pageSize must be positive.
func Partition(records []identity.User, pageSize int) ([][]identity.User, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	batches := make([][]identity.User, 0, (len(records)+pageSize-1)/pageSize)
	for start := 0; start < len(records); start += pageSize {
		end := start + pageSize
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches, nil
}
