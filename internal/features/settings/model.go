package settings

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Settings is the single active connector configuration record. Exactly
// one active record exists; EnsureDefaults seeds it on first start.
type Settings struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name   string             `bson:"name" json:"name"`
	Active bool               `bson:"active" json:"active"`

	SyncInterval int   `bson:"sync_interval" json:"sync_interval"` // minutes
	BatchSize    int64 `bson:"batch_size" json:"batch_size"`

	WebhookEnabled   bool `bson:"webhook_enabled" json:"webhook_enabled"`
	AutoSyncContacts bool `bson:"auto_sync_contacts" json:"auto_sync_contacts"`
	AutoSyncLists    bool `bson:"auto_sync_lists" json:"auto_sync_lists"`

	SyncStatus      string    `bson:"sync_status,omitempty" json:"sync_status,omitempty"`
	LastError       string    `bson:"last_error,omitempty" json:"last_error,omitempty"`
	LastContactSync time.Time `bson:"last_contact_sync,omitempty" json:"last_contact_sync,omitempty"`
	LastListSync    time.Time `bson:"last_list_sync,omitempty" json:"last_list_sync,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UpdateRequest carries the operator-editable fields.
type UpdateRequest struct {
	Name             *string `json:"name"`
	SyncInterval     *int    `json:"sync_interval"`
	BatchSize        *int64  `json:"batch_size"`
	WebhookEnabled   *bool   `json:"webhook_enabled"`
	AutoSyncContacts *bool   `json:"auto_sync_contacts"`
	AutoSyncLists    *bool   `json:"auto_sync_lists"`
}
