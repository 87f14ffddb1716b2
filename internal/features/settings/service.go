package settings

import (
	"context"
	"errors"
	"fmt"

	"brevo-connector/internal/common/models"
	"brevo-connector/internal/features/synclog"

	"go.uber.org/zap"
)

// ConnectionTester checks the remote credentials. Satisfied by the
// Brevo client.
type ConnectionTester interface {
	TestConnection(ctx context.Context) (string, error)
}

type SettingsService interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, req UpdateRequest) (*Settings, error)
	TestConnection(ctx context.Context) (string, error)
	SetIntervalListener(fn func(minutes int))
}

type SettingsServiceImpl struct {
	Repo   SettingsRepository
	Tester ConnectionTester
	Logs   synclog.SyncLogService
	Logger *zap.Logger

	onInterval func(int)
}

func NewSettingsService(
	repo SettingsRepository,
	tester ConnectionTester,
	logs synclog.SyncLogService,
	logger *zap.Logger,
) SettingsService {
	return &SettingsServiceImpl{
		Repo:   repo,
		Tester: tester,
		Logs:   logs,
		Logger: logger,
	}
}

func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (*Settings, error) {
	return s.Repo.EnsureDefaults(ctx)
}

func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, req UpdateRequest) (*Settings, error) {
	current, err := s.Repo.EnsureDefaults(ctx)
	if err != nil {
		return nil, err
	}

	intervalChanged := false

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.SyncInterval != nil {
		if *req.SyncInterval < 1 {
			return nil, errors.New("sync interval must be at least one minute")
		}
		if *req.SyncInterval != current.SyncInterval {
			intervalChanged = true
		}
		current.SyncInterval = *req.SyncInterval
	}
	if req.BatchSize != nil {
		if *req.BatchSize < 1 || *req.BatchSize > 500 {
			return nil, errors.New("batch size must be between 1 and 500")
		}
		current.BatchSize = *req.BatchSize
	}
	if req.WebhookEnabled != nil {
		current.WebhookEnabled = *req.WebhookEnabled
	}
	if req.AutoSyncContacts != nil {
		current.AutoSyncContacts = *req.AutoSyncContacts
	}
	if req.AutoSyncLists != nil {
		current.AutoSyncLists = *req.AutoSyncLists
	}

	if err := s.Repo.Update(ctx, current); err != nil {
		return nil, err
	}

	if intervalChanged && s.onInterval != nil {
		s.onInterval(current.SyncInterval)
	}

	return current, nil
}

// TestConnection verifies the API key against the Brevo account
// endpoint and records the outcome.
func (s *SettingsServiceImpl) TestConnection(ctx context.Context) (string, error) {
	account, err := s.Tester.TestConnection(ctx)
	if err != nil {
		s.Logs.Error(ctx, models.OpConnectionTest, models.DirectionPull,
			"Brevo connection test failed", synclog.Refs{Err: err.Error()})
		return "", err
	}

	s.Logs.Success(ctx, models.OpConnectionTest, models.DirectionPull,
		fmt.Sprintf("Connected to Brevo account: %s", account), synclog.Refs{})

	return account, nil
}

// SetIntervalListener registers the callback fired when the sync
// interval changes. The scheduler uses it to reschedule itself.
func (s *SettingsServiceImpl) SetIntervalListener(fn func(minutes int)) {
	s.onInterval = fn
}
