package importer

import (
	"context"
	"fmt"

	"patron-import/core/identity"

	"go.uber.org/zap"
)

// create executes the three-step creation sequence for a translated record:
// create the record, register credentials, attach the permission set. If a
// later step fails, the earlier steps are unwound in reverse order before
// the record is marked failed.
//
// The rollback is best-effort. A delete that fails itself is logged and
// swallowed; an orphaned remote record may survive a failed compensation
// attempt, and the log is the only place that surfaces it.
func (s *Service) create(ctx context.Context, record identity.User) Outcome {
	if err := s.client.CreateUser(ctx, record); err != nil {
		return s.failed(record, fmt.Errorf("create record: %w", err))
	}

	if err := s.client.CreateCredentials(ctx, record); err != nil {
		s.rollbackRecord(ctx, record)
		return s.failed(record, fmt.Errorf("create credentials: %w", err))
	}

	if err := s.client.AddPermissions(ctx, record); err != nil {
		s.rollbackCredentials(ctx, record)
		s.rollbackRecord(ctx, record)
		return s.failed(record, fmt.Errorf("attach permission set: %w", err))
	}

	s.logger.Info("record created",
		zap.String("externalSystemId", record.ExternalSystemID),
		zap.String("id", record.ID),
	)
	return Outcome{ExternalSystemID: record.ExternalSystemID, Status: StatusCreated}
}

// rollbackCredentials removes the credentials registered for the record.
func (s *Service) rollbackCredentials(ctx context.Context, record identity.User) {
	if err := s.client.DeleteCredentials(ctx, record.Username); err != nil {
		s.logger.Warn("credential rollback failed",
			zap.String("externalSystemId", record.ExternalSystemID),
			zap.String("username", record.Username),
			zap.Error(err),
		)
	}
}

// rollbackRecord removes the partially created record. If this fails the
// remote service is left with a dangling record.
func (s *Service) rollbackRecord(ctx context.Context, record identity.User) {
	if err := s.client.DeleteUser(ctx, record.ID); err != nil {
		s.logger.Warn("record rollback failed, remote orphan may remain",
			zap.String("externalSystemId", record.ExternalSystemID),
			zap.String("id", record.ID),
			zap.Error(err),
		)
	}
}
