package synclog

import (
	"time"

	"brevo-connector/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SyncLog is one append-only audit entry for a sync operation outcome.
type SyncLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Operation models.Operation   `bson:"operation" json:"operation"`
	Direction models.Direction   `bson:"direction" json:"direction"`
	Status    models.LogStatus   `bson:"status" json:"status"`
	Message   string             `bson:"message" json:"message"`

	ContactID *primitive.ObjectID `bson:"contact_id,omitempty" json:"contact_id,omitempty"`
	ListID    *primitive.ObjectID `bson:"list_id,omitempty" json:"list_id,omitempty"`
	LeadID    *primitive.ObjectID `bson:"lead_id,omitempty" json:"lead_id,omitempty"`

	BrevoID    string `bson:"brevo_id,omitempty" json:"brevo_id,omitempty"`
	BrevoEmail string `bson:"brevo_email,omitempty" json:"brevo_email,omitempty"`

	Details      string `bson:"details,omitempty" json:"details,omitempty"`
	ErrorMessage string `bson:"error_message,omitempty" json:"error_message,omitempty"`

	StartTime time.Time `bson:"start_time" json:"start_time"`
	EndTime   time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Refs carries the optional record references attached to an entry.
type Refs struct {
	ContactID  *primitive.ObjectID
	ListID     *primitive.ObjectID
	LeadID     *primitive.ObjectID
	BrevoID    string
	BrevoEmail string
	Details    string
	Err        string
}

// Filter narrows log listings for operators.
type Filter struct {
	Operation models.Operation
	Direction models.Direction
	Status    models.LogStatus
	Limit     int64
	Offset    int64
}
