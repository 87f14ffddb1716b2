package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func TestNormalizeEvent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"contact.created", "contact.created"},
		{"Contact.Updated", "contact.updated"},
		{"meeting.booked", "booking.created"},
		{"meeting.cancelled", "booking.cancelled"},
		{"meeting.started", "booking.updated"},
		{"call.finished", "booking.updated"},
		{" list.deleted ", "list.deleted"},
		{"something.else", "something.else"},
	}

	for _, tt := range tests {
		if got := NormalizeEvent(tt.in); got != tt.want {
			t.Errorf("NormalizeEvent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVerifySignature(t *testing.T) {
	secret := "test-secret"
	body := []byte(`{"event":"contact.updated"}`)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	s := &WebhookServiceImpl{Secret: secret}

	if !s.VerifySignature(body, valid) {
		t.Error("valid signature rejected")
	}
	if !s.VerifySignature(body, "sha256="+valid) {
		t.Error("prefixed signature rejected")
	}
	if s.VerifySignature(body, "deadbeef") {
		t.Error("wrong signature accepted")
	}
	if s.VerifySignature(body, "") {
		t.Error("empty signature accepted")
	}
	if s.VerifySignature([]byte("tampered"), valid) {
		t.Error("signature for different body accepted")
	}

	unconfigured := &WebhookServiceImpl{}
	if unconfigured.VerifySignature(body, valid) {
		t.Error("signature accepted without a configured secret")
	}
}
