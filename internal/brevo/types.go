package brevo

import (
	"fmt"
)

// Contact is the remote contact payload as Brevo returns it, both from
// the paged fetch endpoints and inside webhook event data.
type Contact struct {
	ID               int64                  `json:"id"`
	Email            string                 `json:"email"`
	Attributes       map[string]interface{} `json:"attributes"`
	ListIDs          []int64                `json:"listIds"`
	EmailBlacklisted bool                   `json:"emailBlacklisted"`
	SMSBlacklisted   bool                   `json:"smsBlacklisted"`
	CreatedAt        string                 `json:"createdAt"`
	ModifiedAt       string                 `json:"modifiedAt"`
}

// List is the remote contact list payload.
type List struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	FolderID          int64  `json:"folderId"`
	TotalSubscribers  int64  `json:"totalSubscribers"`
	TotalBlacklisted  int64  `json:"totalBlacklisted"`
	UniqueSubscribers int64  `json:"uniqueSubscribers"`
}

// Attribute describes one contact attribute known to the remote account.
type Attribute struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

// APIError carries the HTTP status and the reason Brevo reported, so
// callers can store a meaningful message on the record that failed.
type APIError struct {
	Status int
	Code   string
	Reason string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("brevo api: %s (%s, status %d)", e.Reason, e.Code, e.Status)
	}
	return fmt.Sprintf("brevo api: %s (status %d)", e.Reason, e.Status)
}
