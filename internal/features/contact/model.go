package contact

import (
	"time"

	"brevo-connector/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact is the local customer record kept in sync with Brevo.
//
// Known fields live as typed columns; anything a field mapping
// introduces beyond the schema lands in Extra. The sync bookkeeping
// block at the bottom is written only by the reconciler and the
// outbound pusher, never by mapped attribute values.
type Contact struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	Mobile      string `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Street      string `bson:"street,omitempty" json:"street,omitempty"`
	Street2     string `bson:"street2,omitempty" json:"street2,omitempty"`
	City        string `bson:"city,omitempty" json:"city,omitempty"`
	Zip         string `bson:"zip,omitempty" json:"zip,omitempty"`
	State       string `bson:"state,omitempty" json:"state,omitempty"`
	Country     string `bson:"country,omitempty" json:"country,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
	CompanyName string `bson:"company_name,omitempty" json:"company_name,omitempty"`
	JobPosition string `bson:"job_position,omitempty" json:"job_position,omitempty"`
	Comment     string `bson:"comment,omitempty" json:"comment,omitempty"`
	Active      bool   `bson:"active" json:"active"`

	// ListIDs references the local mirrors of the Brevo lists this
	// contact belongs to.
	ListIDs []primitive.ObjectID `bson:"list_ids,omitempty" json:"list_ids,omitempty"`

	// Extra holds mapping-introduced fields outside the typed schema.
	Extra map[string]interface{} `bson:"extra,omitempty" json:"extra,omitempty"`

	BrevoID       string            `bson:"brevo_id,omitempty" json:"brevo_id,omitempty"`
	SyncStatus    models.SyncStatus `bson:"sync_status" json:"sync_status"`
	SyncError     string            `bson:"sync_error,omitempty" json:"sync_error,omitempty"`
	LastSync      time.Time         `bson:"last_sync,omitempty" json:"last_sync,omitempty"`
	BrevoCreated  time.Time         `bson:"brevo_created,omitempty" json:"brevo_created,omitempty"`
	BrevoModified time.Time         `bson:"brevo_modified,omitempty" json:"brevo_modified,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
