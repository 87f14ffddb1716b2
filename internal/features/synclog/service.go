package synclog

import (
	"context"
	"time"

	"brevo-connector/internal/common/models"

	"go.uber.org/zap"
)

// Retention: routine entries age out after 30 days, errors are kept
// three times as long for troubleshooting.
const (
	routineRetention = 30 * 24 * time.Hour
	errorRetention   = 90 * 24 * time.Hour
)

type SyncLogService interface {
	Success(ctx context.Context, op models.Operation, dir models.Direction, message string, refs Refs)
	Error(ctx context.Context, op models.Operation, dir models.Direction, message string, refs Refs)
	Warning(ctx context.Context, op models.Operation, dir models.Direction, message string, refs Refs)
	Info(ctx context.Context, op models.Operation, dir models.Direction, message string, refs Refs)
	List(ctx context.Context, filter Filter) ([]SyncLog, error)
	Cleanup(ctx context.Context) (int64, error)
}

type SyncLogServiceImpl struct {
	Repo   SyncLogRepository
	Logger *zap.Logger
}

func NewSyncLogService(repo SyncLogRepository, logger *zap.Logger) SyncLogService {
	return &SyncLogServiceImpl{
		Repo:   repo,
		Logger: logger,
	}
}

func (s *SyncLogServiceImpl) record(ctx context.Context, status models.LogStatus, op models.Operation, dir models.Direction, message string, refs Refs) {
	now := time.Now()
	entry := &SyncLog{
		Operation:    op,
		Direction:    dir,
		Status:       status,
		Message:      message,
		ContactID:    refs.ContactID,
		ListID:       refs.ListID,
		LeadID:       refs.LeadID,
		BrevoID:      refs.BrevoID,
		BrevoEmail:   refs.BrevoEmail,
		Details:      refs.Details,
		ErrorMessage: refs.Err,
		StartTime:    now,
		EndTime:      now,
	}

	// An unwritable audit entry must never break the sync itself.
	if err := s.Repo.Create(ctx, entry); err != nil {
		s.Logger.Warn("failed to write sync log entry",
			zap.String("operation", string(op)),
			zap.Error(err))
	}
}

func (s *SyncLogServiceImpl) Success(ctx context.Context, op models.Operation, dir models.Direction, message string, refs Refs) {
	s.record(ctx, models.LogStatusSuccess, op, dir, message, refs)
}

func (s *SyncLogServiceImpl) Error(ctx context.Context, op models.Operation, dir models.Direction, message string, refs Refs) {
	s.record(ctx, models.LogStatusError, op, dir, message, refs)
}

func (s *SyncLogServiceImpl) Warning(ctx context.Context, op models.Operation, dir models.Direction, message string, refs Refs) {
	s.record(ctx, models.LogStatusWarning, op, dir, message, refs)
}

func (s *SyncLogServiceImpl) Info(ctx context.Context, op models.Operation, dir models.Direction, message string, refs Refs) {
	s.record(ctx, models.LogStatusInfo, op, dir, message, refs)
}

func (s *SyncLogServiceImpl) List(ctx context.Context, filter Filter) ([]SyncLog, error) {
	return s.Repo.List(ctx, filter)
}

// Cleanup removes aged entries and returns how many were deleted.
func (s *SyncLogServiceImpl) Cleanup(ctx context.Context) (int64, error) {
	now := time.Now()

	routine, err := s.Repo.DeleteBefore(ctx,
		[]string{string(models.LogStatusSuccess), string(models.LogStatusInfo), string(models.LogStatusWarning)},
		now.Add(-routineRetention))
	if err != nil {
		return 0, err
	}

	errored, err := s.Repo.DeleteBefore(ctx,
		[]string{string(models.LogStatusError)},
		now.Add(-errorRetention))
	if err != nil {
		return routine, err
	}

	total := routine + errored
	if total > 0 {
		s.Logger.Info("cleaned up old sync logs", zap.Int64("deleted", total))
	}
	return total, nil
}
