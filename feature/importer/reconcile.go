package importer

import (
	"context"
	"fmt"
	"strings"

	"patron-import/core/identity"
)

// UpdateItem pairs an input record with the remote id it matched during
// reconciliation.
type UpdateItem struct {
	Record   identity.User
	RemoteID string
}

// Reconciliation partitions a batch into records that already exist
// remotely and records that must be created.
type Reconciliation struct {
	ToUpdate []UpdateItem
	ToCreate []identity.User
}

// BuildQuery constructs a CQL disjunction of external-id equality
// predicates covering the whole batch, so one read call answers the
// existence question for every record in it.
func BuildQuery(batch []identity.User) (string, error) {
	if len(batch) == 0 {
		return "", fmt.Errorf("cannot build query for an empty batch")
	}

	predicates := make([]string, 0, len(batch))
	for _, record := range batch {
		id := record.ExternalSystemID
		if id == "" {
			return "", fmt.Errorf("record %q has no external system id", record.Username)
		}
		if strings.ContainsAny(id, `"\`) {
			return "", fmt.Errorf("external system id %q contains unsupported characters", id)
		}
		predicates = append(predicates, fmt.Sprintf("externalSystemId==%q", id))
	}
	return strings.Join(predicates, " or "), nil
}

// Reconcile queries the remote service for the batch's external ids and
// classifies each record as to-update (with its matched remote id) or
// to-create. Remote records whose external id is not in the batch are
// ignored. Any error here means no matching decision is possible for the
// batch, so the caller fails the batch as a whole.
func Reconcile(ctx context.Context, client identity.Client, batch []identity.User) (*Reconciliation, error) {
	query, err := BuildQuery(batch)
	if err != nil {
		return nil, fmt.Errorf("build existence query: %w", err)
	}

	existing, err := client.QueryUsers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query existing records: %w", err)
	}

	remoteIDs := make(map[string]string, len(existing))
	for _, remote := range existing {
		if remote.ExternalSystemID != "" {
			remoteIDs[remote.ExternalSystemID] = remote.ID
		}
	}

	result := &Reconciliation{}
	for _, record := range batch {
		if remoteID, ok := remoteIDs[record.ExternalSystemID]; ok {
			result.ToUpdate = append(result.ToUpdate, UpdateItem{Record: record, RemoteID: remoteID})
		} else {
			result.ToCreate = append(result.ToCreate, record)
		}
	}
	return result, nil
}
