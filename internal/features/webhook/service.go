package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"brevo-connector/internal/brevo"
	"brevo-connector/internal/common/models"
	"brevo-connector/internal/features/contact"
	"brevo-connector/internal/features/lead"
	"brevo-connector/internal/features/list"
	"brevo-connector/internal/features/synclog"

	"go.uber.org/zap"
)

// eventAliases maps the meeting/call event names Brevo sends to the
// canonical booking events the router handles.
var eventAliases = map[string]string{
	"meeting.booked":    "booking.created",
	"meeting.cancelled": "booking.cancelled",
	"meeting.started":   "booking.updated",
	"call.finished":     "booking.updated",
}

// NormalizeEvent lowercases an event name and resolves its alias.
func NormalizeEvent(event string) string {
	e := strings.ToLower(strings.TrimSpace(event))
	if canonical, ok := eventAliases[e]; ok {
		return canonical
	}
	return e
}

type WebhookService interface {
	Process(ctx context.Context, event string, data json.RawMessage) (string, error)
	VerifySignature(body []byte, signature string) bool
}

type WebhookServiceImpl struct {
	Reconciler *contact.Reconciler
	Contacts   contact.ContactRepository
	Lists      list.ListService
	Leads      lead.LeadService
	Logs       synclog.SyncLogService
	Logger     *zap.Logger
	Secret     string
}

func NewWebhookService(
	reconciler *contact.Reconciler,
	contacts contact.ContactRepository,
	lists list.ListService,
	leads lead.LeadService,
	logs synclog.SyncLogService,
	logger *zap.Logger,
	secret string,
) WebhookService {
	return &WebhookServiceImpl{
		Reconciler: reconciler,
		Contacts:   contacts,
		Lists:      lists,
		Leads:      leads,
		Logs:       logs,
		Logger:     logger,
		Secret:     secret,
	}
}

// Process routes one webhook event to its handler and returns a short
// outcome message. Unknown events are acknowledged, not errored, so
// Brevo does not retry them forever.
func (s *WebhookServiceImpl) Process(ctx context.Context, event string, data json.RawMessage) (string, error) {
	event = NormalizeEvent(event)

	s.Logger.Info("webhook event received", zap.String("event", event))

	switch event {
	case "contact.created", "contact.updated":
		return s.handleContactUpsert(ctx, data)
	case "contact.deleted":
		return s.handleContactDeleted(ctx, data)
	case "list.created", "list.updated":
		return s.handleListUpsert(ctx, data)
	case "list.deleted":
		return s.handleListDeleted(ctx, data)
	case "booking.created":
		return s.handleBooking(ctx, data, s.Leads.CreateFromBooking)
	case "booking.updated":
		return s.handleBooking(ctx, data, s.Leads.UpdateFromBooking)
	case "booking.cancelled":
		return s.handleBooking(ctx, data, s.Leads.CancelByBookingID)
	}

	s.Logs.Info(ctx, models.OpWebhook, models.DirectionPull,
		fmt.Sprintf("Ignored webhook event: %s", event), synclog.Refs{})
	return fmt.Sprintf("event %s ignored", event), nil
}

func (s *WebhookServiceImpl) handleContactUpsert(ctx context.Context, data json.RawMessage) (string, error) {
	var bag brevo.Contact
	if err := json.Unmarshal(data, &bag); err != nil {
		return "", fmt.Errorf("decode contact payload: %w", err)
	}

	c, outcome := s.Reconciler.ResolveAndApply(ctx, bag)
	if outcome.Kind == contact.OutcomeFailed {
		return "", fmt.Errorf("applying contact failed: %s", outcome.Reason)
	}
	return fmt.Sprintf("contact %s: %s", c.Email, outcome.Kind), nil
}

// handleContactDeleted archives the local record for a remotely deleted
// contact. A contact we never mirrored is acknowledged silently.
func (s *WebhookServiceImpl) handleContactDeleted(ctx context.Context, data json.RawMessage) (string, error) {
	var payload struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode contact payload: %w", err)
	}

	var c *contact.Contact
	var err error
	if payload.ID != 0 {
		c, err = s.Contacts.FindByBrevoID(ctx, fmt.Sprintf("%d", payload.ID))
		if err != nil {
			return "", err
		}
	}
	if c == nil && payload.Email != "" {
		c, err = s.Contacts.FindByEmail(ctx, payload.Email)
		if err != nil {
			return "", err
		}
	}
	if c == nil {
		return "contact unknown, nothing to archive", nil
	}

	if err := s.Contacts.Archive(ctx, c.ID); err != nil {
		return "", err
	}

	s.Logs.Success(ctx, models.OpContactDelete, models.DirectionPull,
		fmt.Sprintf("Contact archived after remote delete: %s", c.Email),
		synclog.Refs{ContactID: &c.ID, BrevoID: c.BrevoID, BrevoEmail: c.Email})

	return fmt.Sprintf("contact %s archived", c.Email), nil
}

func (s *WebhookServiceImpl) handleListUpsert(ctx context.Context, data json.RawMessage) (string, error) {
	var remote brevo.List
	if err := json.Unmarshal(data, &remote); err != nil {
		return "", fmt.Errorf("decode list payload: %w", err)
	}

	l, created, err := s.Lists.SyncFromRemote(ctx, remote)
	if err != nil {
		return "", err
	}

	op := models.OpListUpdate
	verb := "updated"
	if created {
		op = models.OpListCreate
		verb = "created"
	}
	s.Logs.Success(ctx, op, models.DirectionPull,
		fmt.Sprintf("List %s from webhook: %s", verb, l.Name),
		synclog.Refs{ListID: &l.ID})

	return fmt.Sprintf("list %s %s", l.Name, verb), nil
}

func (s *WebhookServiceImpl) handleListDeleted(ctx context.Context, data json.RawMessage) (string, error) {
	var payload struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode list payload: %w", err)
	}

	l, err := s.Lists.ArchiveByRemoteID(ctx, payload.ID)
	if err != nil {
		return "", err
	}
	if l == nil {
		return "list unknown, nothing to archive", nil
	}

	s.Logs.Success(ctx, models.OpListDelete, models.DirectionPull,
		fmt.Sprintf("List archived after remote delete: %s", l.Name),
		synclog.Refs{ListID: &l.ID})

	return fmt.Sprintf("list %s archived", l.Name), nil
}

func (s *WebhookServiceImpl) handleBooking(ctx context.Context, data json.RawMessage, fn func(context.Context, lead.Booking) (*lead.Lead, error)) (string, error) {
	var booking lead.Booking
	if err := json.Unmarshal(data, &booking); err != nil {
		return "", fmt.Errorf("decode booking payload: %w", err)
	}

	l, err := fn(ctx, booking)
	if err != nil {
		s.Logs.Error(ctx, models.OpWebhook, models.DirectionPull,
			fmt.Sprintf("Booking event failed: %s", booking.IDString()),
			synclog.Refs{Err: err.Error()})
		return "", err
	}
	if l == nil {
		return "booking unknown, nothing to do", nil
	}
	return fmt.Sprintf("lead %s: %s", l.Name, l.Status), nil
}

// VerifySignature checks the HMAC-SHA256 hex signature of a raw body.
// The "sha256=" prefix is accepted but not required.
func (s *WebhookServiceImpl) VerifySignature(body []byte, signature string) bool {
	signature = strings.TrimPrefix(strings.TrimSpace(signature), "sha256=")
	if signature == "" || s.Secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.Secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
