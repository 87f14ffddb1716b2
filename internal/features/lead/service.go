package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brevo-connector/internal/common/models"
	"brevo-connector/internal/features/contact"
	"brevo-connector/internal/features/mapping"
	"brevo-connector/internal/features/synclog"

	"go.uber.org/zap"
)

var ErrBookingWithoutEmail = errors.New("booking has no contact email")

type LeadService interface {
	GetLead(ctx context.Context, id string) (*Lead, error)
	ListLeads(ctx context.Context, limit, offset int64) ([]Lead, error)
	CreateFromBooking(ctx context.Context, booking Booking) (*Lead, error)
	UpdateFromBooking(ctx context.Context, booking Booking) (*Lead, error)
	CancelByBookingID(ctx context.Context, booking Booking) (*Lead, error)
}

type LeadServiceImpl struct {
	Repo     LeadRepository
	Contacts contact.ContactRepository
	Logs     synclog.SyncLogService
	Logger   *zap.Logger
}

func NewLeadService(
	repo LeadRepository,
	contacts contact.ContactRepository,
	logs synclog.SyncLogService,
	logger *zap.Logger,
) LeadService {
	return &LeadServiceImpl{
		Repo:     repo,
		Contacts: contacts,
		Logs:     logs,
		Logger:   logger,
	}
}

func (s *LeadServiceImpl) GetLead(ctx context.Context, id string) (*Lead, error) {
	return s.Repo.Get(ctx, id)
}

func (s *LeadServiceImpl) ListLeads(ctx context.Context, limit, offset int64) ([]Lead, error) {
	return s.Repo.List(ctx, limit, offset)
}

// CreateFromBooking turns a booking event into a lead, linking or
// creating the contact behind it. A booking already seen (same booking
// id) is routed to the update path instead of duplicated.
func (s *LeadServiceImpl) CreateFromBooking(ctx context.Context, booking Booking) (*Lead, error) {
	email := strings.ToLower(strings.TrimSpace(booking.Contact.Email))
	if email == "" {
		return nil, ErrBookingWithoutEmail
	}

	if existing, err := s.Repo.FindByBookingID(ctx, booking.IDString()); err != nil {
		return nil, err
	} else if existing != nil {
		return s.UpdateFromBooking(ctx, booking)
	}

	linked, err := s.linkContact(ctx, booking, email)
	if err != nil {
		return nil, err
	}

	lead := &Lead{
		Name:         booking.LeadName(),
		Email:        email,
		Phone:        booking.Contact.Phone,
		Description:  booking.Description,
		BookingID:    booking.IDString(),
		BookingTime:  booking.StartTimeParsed(),
		BookingNotes: booking.Notes,
		Source:       "booking",
		Type:         booking.LeadType(),
		Status:       LeadStatusOpen,
		SyncStatus:   models.SyncStatusSynced,
		LastSync:     time.Now(),
	}
	if linked != nil {
		lead.ContactID = &linked.ID
	}
	if t, err := mapping.ParseRemoteTime(booking.CreatedAt); err == nil {
		lead.CreatedAt = t
	}

	if err := s.Repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.Logs.Success(ctx, models.OpLeadCreate, models.DirectionPull,
		fmt.Sprintf("Lead created from booking: %s", lead.Name),
		synclog.Refs{LeadID: &lead.ID, ContactID: lead.ContactID, BrevoEmail: email})

	return lead, nil
}

// UpdateFromBooking refreshes the booking details on an existing lead.
// An update for a booking never seen falls back to creation.
func (s *LeadServiceImpl) UpdateFromBooking(ctx context.Context, booking Booking) (*Lead, error) {
	lead, err := s.Repo.FindByBookingID(ctx, booking.IDString())
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return s.CreateFromBooking(ctx, booking)
	}

	if t := booking.StartTimeParsed(); !t.IsZero() {
		lead.BookingTime = t
	}
	if booking.Notes != "" {
		lead.BookingNotes = booking.Notes
	}
	lead.LastSync = time.Now()

	if err := s.Repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	s.Logs.Success(ctx, models.OpLeadUpdate, models.DirectionPull,
		fmt.Sprintf("Lead updated from booking: %s", lead.Name),
		synclog.Refs{LeadID: &lead.ID, ContactID: lead.ContactID})

	return lead, nil
}

// CancelByBookingID marks the lead for a cancelled booking. A booking
// we never recorded is not an error.
func (s *LeadServiceImpl) CancelByBookingID(ctx context.Context, booking Booking) (*Lead, error) {
	lead, err := s.Repo.FindByBookingID(ctx, booking.IDString())
	if err != nil {
		return nil, err
	}
	if lead == nil {
		s.Logger.Debug("cancellation for unknown booking", zap.String("booking_id", booking.IDString()))
		return nil, nil
	}

	lead.Status = LeadStatusCancelled
	lead.LastSync = time.Now()

	if err := s.Repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	s.Logs.Success(ctx, models.OpLeadUpdate, models.DirectionPull,
		fmt.Sprintf("Lead cancelled from booking: %s", lead.Name),
		synclog.Refs{LeadID: &lead.ID, ContactID: lead.ContactID})

	return lead, nil
}

// linkContact resolves the booking's contact by email, creating a
// minimal record when none exists yet. The new contact starts unsynced
// so the next outbound pass pushes it.
func (s *LeadServiceImpl) linkContact(ctx context.Context, booking Booking, email string) (*contact.Contact, error) {
	existing, err := s.Contacts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	c := &contact.Contact{
		Name:   booking.ContactName(),
		Email:  email,
		Phone:  booking.Contact.Phone,
		Active: true,
	}
	if err := s.Contacts.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Info("contact created from booking",
		zap.String("email", email),
		zap.String("booking_id", booking.IDString()))

	return c, nil
}
