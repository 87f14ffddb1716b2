package sync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"brevo-connector/internal/features/settings"
	"brevo-connector/internal/features/synclog"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler drives the periodic sync cycle and the daily log cleanup.
// The sync interval comes from the settings record and can be changed
// at runtime through Reschedule.
type Scheduler struct {
	cron     *cron.Cron
	service  SyncService
	settings settings.SettingsRepository
	logs     synclog.SyncLogService
	logger   *zap.Logger

	mu        sync.Mutex
	syncEntry cron.EntryID
}

func NewScheduler(
	service SyncService,
	settingsRepo settings.SettingsRepository,
	logs synclog.SyncLogService,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		service:  service,
		settings: settingsRepo,
		logs:     logs,
		logger:   logger,
	}
}

// Start schedules the sync job at the configured interval and the
// nightly log cleanup, then starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	cfg, err := s.settings.EnsureDefaults(ctx)
	if err != nil {
		return err
	}

	if err := s.schedule(cfg.SyncInterval); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("@daily", s.runCleanup); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("sync scheduler started",
		zap.Int("interval_minutes", cfg.SyncInterval))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("sync scheduler stopped")
}

// Reschedule swaps the sync job onto a new interval. Wired as the
// settings service's interval listener.
func (s *Scheduler) Reschedule(minutes int) {
	if err := s.schedule(minutes); err != nil {
		s.logger.Error("rescheduling sync failed",
			zap.Int("interval_minutes", minutes), zap.Error(err))
		return
	}
	s.logger.Info("sync rescheduled", zap.Int("interval_minutes", minutes))
}

func (s *Scheduler) schedule(minutes int) error {
	if minutes < 1 {
		minutes = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.syncEntry != 0 {
		s.cron.Remove(s.syncEntry)
	}

	id, err := s.cron.AddFunc(fmt.Sprintf("@every %dm", minutes), s.runSync)
	if err != nil {
		return err
	}
	s.syncEntry = id
	return nil
}

// runSync executes one scheduled cycle, honoring the auto-sync toggles.
func (s *Scheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	cfg, err := s.settings.EnsureDefaults(ctx)
	if err != nil {
		s.logger.Error("loading settings for scheduled sync failed", zap.Error(err))
		return
	}

	if cfg.AutoSyncLists {
		if _, err := s.service.SyncLists(ctx); err != nil {
			s.logger.Error("scheduled list sync failed", zap.Error(err))
		}
	}

	if cfg.AutoSyncContacts {
		if _, err := s.service.SyncContacts(ctx); err != nil {
			s.logger.Error("scheduled contact pull failed", zap.Error(err))
		}
		if _, err := s.service.SyncPending(ctx); err != nil {
			s.logger.Error("scheduled contact push failed", zap.Error(err))
		}
	}
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.logs.Cleanup(ctx); err != nil {
		s.logger.Error("sync log cleanup failed", zap.Error(err))
	}
}
