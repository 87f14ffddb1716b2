package list

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactList mirrors a Brevo contact list locally. Membership lives on
// the contact side; this record carries the remote link and the counters
// Brevo reports.
type ContactList struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`

	BrevoID  int64 `bson:"brevo_id" json:"brevo_id"`
	FolderID int64 `bson:"folder_id,omitempty" json:"folder_id,omitempty"`

	TotalSubscribers  int64 `bson:"total_subscribers" json:"total_subscribers"`
	TotalBlacklisted  int64 `bson:"total_blacklisted" json:"total_blacklisted"`
	UniqueSubscribers int64 `bson:"unique_subscribers" json:"unique_subscribers"`

	Active   bool      `bson:"active" json:"active"`
	LastSync time.Time `bson:"last_sync,omitempty" json:"last_sync,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
