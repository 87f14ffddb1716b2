package contact

import (
	"context"
	"fmt"
	"strings"

	"brevo-connector/internal/brevo"
	"brevo-connector/internal/common/models"
	"brevo-connector/internal/features/synclog"

	"go.uber.org/zap"
)

// ErrRemoteLinkConfirm is returned when a delete would orphan a remote
// contact and the caller did not confirm the remote delete.
var ErrRemoteLinkConfirm = fmt.Errorf("contact is linked to Brevo; pass confirm_remote=true to delete it remotely as well")

// RemoteDeleter removes a contact on the Brevo side. Satisfied by the
// API client.
type RemoteDeleter interface {
	DeleteContact(ctx context.Context, remoteID string) error
}

type ContactService interface {
	CreateContact(ctx context.Context, contact *Contact) error
	GetContact(ctx context.Context, id string) (*Contact, error)
	ListContacts(ctx context.Context, limit, offset int64) ([]Contact, error)
	UpdateContact(ctx context.Context, id string, updates map[string]interface{}) (*Contact, error)
	DeleteContact(ctx context.Context, id string, confirmRemote bool) error
}

type ContactServiceImpl struct {
	Repo   ContactRepository
	Remote RemoteDeleter
	Logs   synclog.SyncLogService
	Logger *zap.Logger
}

func NewContactService(repo ContactRepository, remote RemoteDeleter, logs synclog.SyncLogService, logger *zap.Logger) ContactService {
	return &ContactServiceImpl{
		Repo:   repo,
		Remote: remote,
		Logs:   logs,
		Logger: logger,
	}
}

func (s *ContactServiceImpl) CreateContact(ctx context.Context, contact *Contact) error {
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))
	if contact.Name == "" && contact.Email == "" {
		return fmt.Errorf("contact needs a name or an email address")
	}
	contact.Active = true
	contact.SyncStatus = models.SyncStatusNever

	return s.Repo.Create(ctx, contact)
}

func (s *ContactServiceImpl) GetContact(ctx context.Context, id string) (*Contact, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ContactServiceImpl) ListContacts(ctx context.Context, limit, offset int64) ([]Contact, error) {
	return s.Repo.List(ctx, limit, offset)
}

// UpdateContact applies field writes through the registry and marks the
// record pending so the next outbound pass picks it up.
func (s *ContactServiceImpl) UpdateContact(ctx context.Context, id string, updates map[string]interface{}) (*Contact, error) {
	contact, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for field, value := range updates {
		contact.SetFieldValue(field, value)
	}
	if contact.SyncStatus == models.SyncStatusSynced {
		contact.SyncStatus = models.SyncStatusPending
	}

	if err := s.Repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContact removes a contact. A record still linked to Brevo is
// only deleted when the caller explicitly confirms, and then the remote
// copy goes first so the link is never silently broken.
func (s *ContactServiceImpl) DeleteContact(ctx context.Context, id string, confirmRemote bool) error {
	contact, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if contact.BrevoID != "" {
		if !confirmRemote {
			return ErrRemoteLinkConfirm
		}
		if s.Remote != nil {
			if err := s.Remote.DeleteContact(ctx, contact.BrevoID); err != nil {
				s.Logs.Error(ctx, models.OpContactDelete, models.DirectionPush,
					fmt.Sprintf("Failed to delete contact in Brevo: %s", contact.Email),
					synclog.Refs{ContactID: &contact.ID, BrevoID: contact.BrevoID, Err: err.Error()})
				return fmt.Errorf("deleting remote contact: %w", err)
			}
		}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logs.Success(ctx, models.OpContactDelete, models.DirectionPush,
		fmt.Sprintf("Contact deleted: %s", contact.Email),
		synclog.Refs{BrevoID: contact.BrevoID, BrevoEmail: contact.Email})
	s.Logger.Info("contact deleted",
		zap.String("id", id),
		zap.String("email", contact.Email))
	return nil
}

// make sure the brevo client keeps satisfying the deleter contract
var _ RemoteDeleter = (*brevo.Client)(nil)
