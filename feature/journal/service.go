package journal

import (
	"context"
	"time"

	"patron-import/feature/importer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service persists run summaries to the journal database.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new journal service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Migrate creates or updates the journal tables.
func (s *Service) Migrate() error {
	return s.db.AutoMigrate(&ImportRun{}, &FailedRecord{})
}

// Record persists one run summary and its failed records.
func (s *Service) Record(ctx context.Context, summary *importer.RunSummary) error {
	run := ImportRun{
		RanAt:      time.Now(),
		DurationMS: summary.Duration.Milliseconds(),
		Total:      summary.Total,
		Created:    summary.Created,
		Updated:    summary.Updated,
		Failed:     summary.Failed,
	}
	if err := s.db.WithContext(ctx).Create(&run).Error; err != nil {
		return err
	}

	if len(summary.FailedRecords) == 0 {
		return nil
	}

	records := make([]FailedRecord, 0, len(summary.FailedRecords))
	for _, fr := range summary.FailedRecords {
		records = append(records, FailedRecord{
			RunID:            run.ID,
			ExternalSystemID: fr.ExternalSystemID,
			Reason:           fr.Reason,
		})
	}
	if err := s.db.WithContext(ctx).Create(&records).Error; err != nil {
		return err
	}

	s.logger.Debug("run journaled",
		zap.Uint("run_id", run.ID),
		zap.Int("failed_records", len(records)),
	)
	return nil
}
