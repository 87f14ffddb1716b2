package lead

import (
	"strconv"
	"strings"
	"time"

	"brevo-connector/internal/features/mapping"
)

// Booking is the payload of a Brevo meetings/booking webhook event.
// Brevo is not consistent about the id type, so it is decoded loosely
// and normalized through IDString.
type Booking struct {
	ID          interface{}    `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	StartTime   string         `json:"start_time"`
	Notes       string         `json:"notes"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
	Contact     BookingContact `json:"contact"`
}

type BookingContact struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// IDString normalizes the booking id, which arrives as either a JSON
// string or a number.
func (b *Booking) IDString() string {
	switch v := b.ID.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// LeadType classifies the booking: meetings and calls are treated as
// opportunities, anything else as a plain lead.
func (b *Booking) LeadType() LeadType {
	t := strings.ToLower(b.Type)
	if strings.Contains(t, "meeting") || strings.Contains(t, "call") {
		return LeadTypeOpportunity
	}
	return LeadTypeLead
}

// ContactName joins the booking contact's name halves, falling back to
// the email address.
func (b *Booking) ContactName() string {
	name := strings.TrimSpace(strings.TrimSpace(b.Contact.FirstName) + " " + strings.TrimSpace(b.Contact.LastName))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(b.Contact.Email))
	}
	return name
}

// LeadName builds the lead title from the booking title and contact.
func (b *Booking) LeadName() string {
	title := strings.TrimSpace(b.Title)
	if title == "" {
		title = "Booking"
	}
	if name := b.ContactName(); name != "" {
		return title + " - " + name
	}
	return title
}

// StartTimeParsed parses the booking start time; a zero time means the
// payload carried none or an unparseable one.
func (b *Booking) StartTimeParsed() time.Time {
	if b.StartTime == "" {
		return time.Time{}
	}
	t, err := mapping.ParseRemoteTime(b.StartTime)
	if err != nil {
		return time.Time{}
	}
	return t
}
