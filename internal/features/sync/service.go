package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"brevo-connector/internal/brevo"
	"brevo-connector/internal/common/models"
	"brevo-connector/internal/features/contact"
	"brevo-connector/internal/features/list"
	"brevo-connector/internal/features/mapping"
	"brevo-connector/internal/features/settings"
	"brevo-connector/internal/features/synclog"

	"go.uber.org/zap"
)

// BrevoAPI is the slice of the Brevo client the sync engine needs.
// Satisfied by *brevo.Client.
type BrevoAPI interface {
	FetchContacts(ctx context.Context, limit, offset int, modifiedSince time.Time) ([]brevo.Contact, error)
	PushContact(ctx context.Context, email string, attributes map[string]interface{}, listIDs []int64, remoteID string) (string, error)
	FetchLists(ctx context.Context, limit, offset int) ([]brevo.List, error)
}

// SyncResult summarizes one sync pass.
type SyncResult struct {
	Synced  int    `json:"synced"`
	Errors  int    `json:"errors"`
	Message string `json:"message"`
}

type SyncService interface {
	SyncContacts(ctx context.Context) (*SyncResult, error)
	SyncPending(ctx context.Context) (*SyncResult, error)
	SyncLists(ctx context.Context) (*SyncResult, error)
	SyncAll(ctx context.Context) (*SyncResult, error)
	SyncContact(ctx context.Context, id string) (*SyncResult, error)
	Status(ctx context.Context) (*settings.Settings, error)
}

type SyncServiceImpl struct {
	API        BrevoAPI
	Contacts   contact.ContactRepository
	Reconciler *contact.Reconciler
	Mapper     *mapping.Mapper
	Mappings   contact.MappingSource
	Lists      list.ListService
	Settings   settings.SettingsRepository
	Logs       synclog.SyncLogService
	Logger     *zap.Logger
}

func NewSyncService(
	api BrevoAPI,
	contacts contact.ContactRepository,
	reconciler *contact.Reconciler,
	mapper *mapping.Mapper,
	mappings contact.MappingSource,
	lists list.ListService,
	settingsRepo settings.SettingsRepository,
	logs synclog.SyncLogService,
	logger *zap.Logger,
) SyncService {
	return &SyncServiceImpl{
		API:        api,
		Contacts:   contacts,
		Reconciler: reconciler,
		Mapper:     mapper,
		Mappings:   mappings,
		Lists:      lists,
		Settings:   settingsRepo,
		Logs:       logs,
		Logger:     logger,
	}
}

// SyncContacts pulls remote contacts page by page and applies each bag
// through the reconciler. One bad record never stops the pass; paging
// stops when a page comes back smaller than requested.
func (s *SyncServiceImpl) SyncContacts(ctx context.Context) (*SyncResult, error) {
	cfg, err := s.Settings.EnsureDefaults(ctx)
	if err != nil {
		return nil, err
	}

	batch := int(cfg.BatchSize)
	if batch <= 0 {
		batch = 100
	}

	result := &SyncResult{}
	started := time.Now()

	for offset := 0; ; offset += batch {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := s.API.FetchContacts(ctx, batch, offset, cfg.LastContactSync)
		if err != nil {
			s.recordFailure(ctx, cfg, err)
			return result, err
		}

		for i := range page {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			_, outcome := s.Reconciler.ResolveAndApply(ctx, page[i])
			if outcome.Kind == contact.OutcomeFailed {
				result.Errors++
			} else {
				result.Synced++
			}
		}

		if len(page) < batch {
			break
		}
	}

	cfg.LastContactSync = started
	cfg.SyncStatus = "ok"
	cfg.LastError = ""
	if err := s.Settings.Update(ctx, cfg); err != nil {
		s.Logger.Warn("updating sync bookkeeping failed", zap.Error(err))
	}

	result.Message = fmt.Sprintf("Contact sync finished: %d synced, %d errors", result.Synced, result.Errors)
	s.Logs.Info(ctx, models.OpSyncAll, models.DirectionPull, result.Message, synclog.Refs{})

	return result, nil
}

// SyncPending pushes locally changed contacts to Brevo. Per-contact
// failures are recorded on the record and in the audit log, then the
// pass moves on.
func (s *SyncServiceImpl) SyncPending(ctx context.Context) (*SyncResult, error) {
	cfg, err := s.Settings.EnsureDefaults(ctx)
	if err != nil {
		return nil, err
	}

	mappings, err := s.Mappings.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := s.Contacts.ListSyncCandidates(ctx, cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		c := &candidates[i]
		if !contact.ShouldSync(c) {
			continue
		}
		if err := s.pushContact(ctx, c, mappings); err != nil {
			result.Errors++
		} else {
			result.Synced++
		}
	}

	result.Message = fmt.Sprintf("Outbound sync finished: %d pushed, %d errors", result.Synced, result.Errors)
	s.Logs.Info(ctx, models.OpSyncAll, models.DirectionPush, result.Message, synclog.Refs{})

	return result, nil
}

// pushContact serializes one contact into an attribute bag and pushes
// it, then stamps the sync bookkeeping.
func (s *SyncServiceImpl) pushContact(ctx context.Context, c *contact.Contact, mappings []mapping.FieldMapping) error {
	snapshot := c.Snapshot(mappedFields(mappings))
	attrs := s.Mapper.ToRemote(snapshot, mappings)

	// The display name travels as the FNAME/LNAME pair unless a mapping
	// already produced one of them.
	first, last := splitName(c.Name)
	if _, ok := attrs["FNAME"]; !ok && first != "" {
		attrs["FNAME"] = first
	}
	if _, ok := attrs["LNAME"]; !ok && last != "" {
		attrs["LNAME"] = last
	}

	var remoteListIDs []int64
	if len(c.ListIDs) > 0 {
		ids, err := s.Lists.RemoteIDsFor(ctx, c.ListIDs)
		if err != nil {
			s.Logger.Warn("resolving remote list ids failed",
				zap.String("contact", c.Email), zap.Error(err))
		} else {
			remoteListIDs = ids
		}
	}

	remoteID, err := s.API.PushContact(ctx, c.Email, attrs, remoteListIDs, c.BrevoID)
	if err != nil {
		c.SyncStatus = models.SyncStatusError
		c.SyncError = err.Error()
		if saveErr := s.Contacts.Replace(ctx, c); saveErr != nil {
			s.Logger.Error("persisting push failure failed",
				zap.String("contact", c.Email), zap.Error(saveErr))
		}
		s.Logs.Error(ctx, models.OpContactUpdate, models.DirectionPush,
			fmt.Sprintf("Pushing contact failed: %s", c.Email),
			synclog.Refs{ContactID: &c.ID, BrevoEmail: c.Email, Err: err.Error()})
		return err
	}

	if c.BrevoID == "" {
		c.BrevoID = remoteID
	}
	c.SyncStatus = models.SyncStatusSynced
	c.SyncError = ""
	now := time.Now()
	c.LastSync = now
	c.UpdatedAt = now

	if err := s.Contacts.Replace(ctx, c); err != nil {
		return err
	}

	s.Logs.Success(ctx, models.OpContactUpdate, models.DirectionPush,
		fmt.Sprintf("Contact pushed to Brevo: %s", c.Email),
		synclog.Refs{ContactID: &c.ID, BrevoID: c.BrevoID, BrevoEmail: c.Email})

	return nil
}

// SyncLists mirrors the remote contact lists locally.
func (s *SyncServiceImpl) SyncLists(ctx context.Context) (*SyncResult, error) {
	cfg, err := s.Settings.EnsureDefaults(ctx)
	if err != nil {
		return nil, err
	}

	batch := int(cfg.BatchSize)
	if batch <= 0 {
		batch = 100
	}

	result := &SyncResult{}
	for offset := 0; ; offset += batch {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := s.API.FetchLists(ctx, batch, offset)
		if err != nil {
			s.recordFailure(ctx, cfg, err)
			return result, err
		}

		for i := range page {
			if _, _, err := s.Lists.SyncFromRemote(ctx, page[i]); err != nil {
				result.Errors++
				s.Logs.Error(ctx, models.OpListUpdate, models.DirectionPull,
					fmt.Sprintf("Syncing list failed: %s", page[i].Name),
					synclog.Refs{Err: err.Error()})
				continue
			}
			result.Synced++
		}

		if len(page) < batch {
			break
		}
	}

	cfg.LastListSync = time.Now()
	if err := s.Settings.Update(ctx, cfg); err != nil {
		s.Logger.Warn("updating sync bookkeeping failed", zap.Error(err))
	}

	result.Message = fmt.Sprintf("List sync finished: %d synced, %d errors", result.Synced, result.Errors)
	s.Logs.Info(ctx, models.OpSyncAll, models.DirectionPull, result.Message, synclog.Refs{})

	return result, nil
}

// SyncAll runs the full cycle: lists first so membership resolution has
// fresh mirrors, then the inbound pull, then the outbound push.
func (s *SyncServiceImpl) SyncAll(ctx context.Context) (*SyncResult, error) {
	total := &SyncResult{}

	lists, err := s.SyncLists(ctx)
	if err != nil {
		return total, err
	}
	total.Synced += lists.Synced
	total.Errors += lists.Errors

	inbound, err := s.SyncContacts(ctx)
	if err != nil {
		return total, err
	}
	total.Synced += inbound.Synced
	total.Errors += inbound.Errors

	outbound, err := s.SyncPending(ctx)
	if err != nil {
		return total, err
	}
	total.Synced += outbound.Synced
	total.Errors += outbound.Errors

	total.Message = fmt.Sprintf("Full sync finished: %d synced, %d errors", total.Synced, total.Errors)
	return total, nil
}

// SyncContact pushes a single contact on demand, regardless of its
// pending state.
func (s *SyncServiceImpl) SyncContact(ctx context.Context, id string) (*SyncResult, error) {
	c, err := s.Contacts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Email) == "" {
		return nil, fmt.Errorf("contact %s has no email address", id)
	}

	mappings, err := s.Mappings.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.pushContact(ctx, c, mappings); err != nil {
		return &SyncResult{Errors: 1, Message: err.Error()}, err
	}
	return &SyncResult{Synced: 1, Message: fmt.Sprintf("Contact pushed: %s", c.Email)}, nil
}

// Status exposes the sync bookkeeping for operators.
func (s *SyncServiceImpl) Status(ctx context.Context) (*settings.Settings, error) {
	return s.Settings.EnsureDefaults(ctx)
}

func (s *SyncServiceImpl) recordFailure(ctx context.Context, cfg *settings.Settings, err error) {
	cfg.SyncStatus = "error"
	cfg.LastError = err.Error()
	if saveErr := s.Settings.Update(ctx, cfg); saveErr != nil {
		s.Logger.Warn("updating sync bookkeeping failed", zap.Error(saveErr))
	}
	s.Logs.Error(ctx, models.OpSyncAll, models.DirectionPull,
		"Sync pass failed", synclog.Refs{Err: err.Error()})
}

// mappedFields lists the distinct local field names the mappings address.
func mappedFields(mappings []mapping.FieldMapping) []string {
	seen := make(map[string]bool, len(mappings))
	var fields []string
	for i := range mappings {
		f := mappings[i].LocalField
		if f != "" && !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	return fields
}

// splitName divides a display name into its FNAME and LNAME halves: the
// first word and the rest.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
