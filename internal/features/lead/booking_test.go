package lead

import (
	"encoding/json"
	"testing"
)

func TestBookingIDString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"numeric id", `{"id": 12345}`, "12345"},
		{"string id", `{"id": "abc-789"}`, "abc-789"},
		{"missing id", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Booking
			if err := json.Unmarshal([]byte(tt.raw), &b); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := b.IDString(); got != tt.want {
				t.Errorf("IDString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBookingLeadType(t *testing.T) {
	tests := []struct {
		bookingType string
		want        LeadType
	}{
		{"meeting", LeadTypeOpportunity},
		{"discovery-call", LeadTypeOpportunity},
		{"Sales Meeting", LeadTypeOpportunity},
		{"webinar", LeadTypeLead},
		{"", LeadTypeLead},
	}

	for _, tt := range tests {
		b := Booking{Type: tt.bookingType}
		if got := b.LeadType(); got != tt.want {
			t.Errorf("LeadType(%q) = %v, want %v", tt.bookingType, got, tt.want)
		}
	}
}

func TestBookingNames(t *testing.T) {
	b := Booking{
		Title: "Demo",
		Contact: BookingContact{
			Email:     "Jane@Example.com",
			FirstName: "Jane",
			LastName:  "Doe",
		},
	}
	if got := b.ContactName(); got != "Jane Doe" {
		t.Errorf("ContactName() = %q", got)
	}
	if got := b.LeadName(); got != "Demo - Jane Doe" {
		t.Errorf("LeadName() = %q", got)
	}

	// No name halves: the lowercased email stands in.
	b.Contact.FirstName = ""
	b.Contact.LastName = ""
	if got := b.ContactName(); got != "jane@example.com" {
		t.Errorf("ContactName() fallback = %q", got)
	}
}
