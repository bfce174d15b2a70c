package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"patron-import/core/identity"
	"patron-import/core/worker"

	"go.uber.org/zap"
)

// Service drives the reconciliation pipeline: batching, existence-diffing,
// per-record create/update with bounded concurrency, and outcome
// aggregation.
type Service struct {
	client identity.Client
	logger *zap.Logger
	cfg    Config
}

// NewService creates a new importer service.
func NewService(client identity.Client, logger *zap.Logger, cfg Config) *Service {
	return &Service{
		client: client,
		logger: logger,
		cfg:    cfg,
	}
}

// Login authenticates the session used by every subsequent call. A login
// failure is fatal for the run; nothing else can be authorized without it.
func (s *Service) Login(ctx context.Context) error {
	return s.client.Login(ctx)
}

// ParseRecords decodes the input byte stream as a JSON array of records.
// A parse failure aborts the run before any remote call is made.
func ParseRecords(data []byte) ([]identity.User, error) {
	var records []identity.User
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse input records: %w", err)
	}
	return records, nil
}

// ResolveReferenceTables fetches the two lookup tables needed for
// translation. A failed or unparsable fetch degrades that table to empty,
// which drops the corresponding field on every record; it does not abort
// the run.
func (s *Service) ResolveReferenceTables(ctx context.Context) ReferenceTables {
	addressTypes, err := s.client.AddressTypes(ctx)
	if err != nil {
		s.logger.Warn("address-type lookup unavailable, address fields will be dropped", zap.Error(err))
		addressTypes = nil
	}

	patronGroups, err := s.client.PatronGroups(ctx)
	if err != nil {
		s.logger.Warn("patron-group lookup unavailable, group fields will be dropped", zap.Error(err))
		patronGroups = nil
	}

	return NewReferenceTables(addressTypes, patronGroups)
}

// task is one per-record remote operation scheduled on the worker pool.
type task struct {
	record identity.User
	update bool
}

// Run imports all records and returns a summary of outcomes. Batches are
// processed sequentially in input order; within a batch, reconciliation
// completes before any create/update starts, then record operations fan
// out across the worker pool. Record and batch failures are folded into
// the summary; only invalid input aborts the run.
func (s *Service) Run(ctx context.Context, records []identity.User, tables ReferenceTables) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{Total: len(records)}

	// Records without the reconciliation key can never be matched or
	// created meaningfully; fail them up front, keep their siblings.
	valid := make([]identity.User, 0, len(records))
	for _, record := range records {
		if record.ExternalSystemID == "" {
			summary.add(s.failed(record, fmt.Errorf("record has no external system id")))
			continue
		}
		valid = append(valid, record)
	}

	batches, err := Partition(valid, s.cfg.PageSize)
	if err != nil {
		return nil, err
	}

	for i, batch := range batches {
		s.runBatch(ctx, i, batch, tables, summary)
	}

	summary.Duration = time.Since(start)
	s.logger.Info("import run finished",
		zap.Int("total", summary.Total),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// runBatch reconciles one batch and executes its record operations. A
// reconciliation failure fails every record in the batch, since no
// matching decision is possible; later batches are unaffected.
func (s *Service) runBatch(ctx context.Context, index int, batch []identity.User, tables ReferenceTables, summary *RunSummary) {
	reconciliation, err := Reconcile(ctx, s.client, batch)
	if err != nil {
		s.logger.Error("batch reconciliation failed",
			zap.Int("batch", index),
			zap.Int("records", len(batch)),
			zap.Error(err),
		)
		for _, record := range batch {
			summary.add(s.failed(record, fmt.Errorf("reconcile batch: %w", err)))
		}
		return
	}

	s.logger.Debug("batch reconciled",
		zap.Int("batch", index),
		zap.Int("toCreate", len(reconciliation.ToCreate)),
		zap.Int("toUpdate", len(reconciliation.ToUpdate)),
	)

	tasks := make([]task, 0, len(batch))
	for _, item := range reconciliation.ToUpdate {
		tasks = append(tasks, task{
			record: MaterializeForUpdate(item.Record, item.RemoteID, tables),
			update: true,
		})
	}
	for _, record := range reconciliation.ToCreate {
		tasks = append(tasks, task{
			record: MaterializeForCreate(record, tables),
		})
	}

	results := worker.ProcessAll(ctx, tasks, s.runTask, worker.Options{
		Workers:      s.cfg.Workers,
		RateLimitRPS: s.cfg.RateLimitRPS,
	})

	// Outcomes are folded in here, single-threaded, so the summary needs
	// no locking.
	for _, result := range results {
		if result.Err != nil {
			summary.add(s.failed(result.Input.record, result.Err))
			continue
		}
		summary.add(result.Output)
	}
}

// runTask executes one record operation. Record-level failures are already
// converted into Outcomes; the error return only carries cancellation.
func (s *Service) runTask(ctx context.Context, t task) (Outcome, error) {
	if t.update {
		return s.update(ctx, t.record), nil
	}
	return s.create(ctx, t.record), nil
}
