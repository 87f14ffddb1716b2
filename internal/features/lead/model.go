package lead

import (
	"time"

	"brevo-connector/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LeadType string

const (
	LeadTypeLead        LeadType = "lead"
	LeadTypeOpportunity LeadType = "opportunity"
)

type LeadStatus string

const (
	LeadStatusOpen      LeadStatus = "open"
	LeadStatusCancelled LeadStatus = "cancelled"
)

// Lead is a sales record created from an inbound Brevo booking event.
// Bookings for meetings and calls come in as opportunities, everything
// else as a plain lead.
type Lead struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	ContactID *primitive.ObjectID `bson:"contact_id,omitempty" json:"contact_id,omitempty"`

	BookingID    string    `bson:"booking_id" json:"booking_id"`
	BookingTime  time.Time `bson:"booking_time,omitempty" json:"booking_time,omitempty"`
	BookingNotes string    `bson:"booking_notes,omitempty" json:"booking_notes,omitempty"`

	Source string     `bson:"source" json:"source"`
	Type   LeadType   `bson:"type" json:"type"`
	Status LeadStatus `bson:"status" json:"status"`

	SyncStatus models.SyncStatus `bson:"sync_status" json:"sync_status"`
	LastSync   time.Time         `bson:"last_sync,omitempty" json:"last_sync,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
