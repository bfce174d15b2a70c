package importer

import (
	"context"
	"fmt"

	"patron-import/core/identity"

	"go.uber.org/zap"
)

// update replaces the matched remote record with the translated input
// record. A failure here is confined to this record; it never aborts the
// surrounding batch or run.
func (s *Service) update(ctx context.Context, record identity.User) Outcome {
	if err := s.client.UpdateUser(ctx, record); err != nil {
		return s.failed(record, fmt.Errorf("update record: %w", err))
	}

	s.logger.Info("record updated",
		zap.String("externalSystemId", record.ExternalSystemID),
		zap.String("id", record.ID),
	)
	return Outcome{ExternalSystemID: record.ExternalSystemID, Status: StatusUpdated}
}

// failed converts a record-level error into a terminal Outcome and logs it.
func (s *Service) failed(record identity.User, err error) Outcome {
	s.logger.Warn("record import failed",
		zap.String("externalSystemId", record.ExternalSystemID),
		zap.Error(err),
	)
	return Outcome{
		ExternalSystemID: record.ExternalSystemID,
		Status:           StatusFailed,
		Reason:           err.Error(),
	}
}
