package mapping

import (
	"time"

	"brevo-connector/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldMapping binds one Brevo attribute to one local contact field.
// Mappings are deactivated rather than deleted so the pairing history
// stays visible to operators.
type FieldMapping struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BrevoAttribute string             `bson:"brevo_attribute" json:"brevo_attribute"`
	LocalField     string             `bson:"local_field" json:"local_field"`
	FieldType      models.FieldType   `bson:"field_type" json:"field_type"`
	Direction      models.Direction   `bson:"direction" json:"direction"`
	Active         bool               `bson:"active" json:"active"`
	Predefined     bool               `bson:"predefined" json:"predefined"`
	// Options holds the allowed values for selection fields. They are
	// informational: inbound values pass through unvalidated.
	Options   []string  `bson:"options,omitempty" json:"options,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PullEnabled reports whether remote values may flow into the local field.
func (m *FieldMapping) PullEnabled() bool {
	return m.Active && (m.Direction == models.DirectionPull || m.Direction == models.DirectionBoth)
}

// PushEnabled reports whether local values may flow out to Brevo.
func (m *FieldMapping) PushEnabled() bool {
	return m.Active && (m.Direction == models.DirectionPush || m.Direction == models.DirectionBoth)
}

// Warning is a non-fatal diagnostic produced while coercing one
// attribute. The field it concerns is skipped, never the whole record.
type Warning struct {
	Attribute string `json:"attribute"`
	Field     string `json:"field"`
	Message   string `json:"message"`
}
