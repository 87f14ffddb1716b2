package contact

import (
	"context"
	"testing"
	"time"

	"brevo-connector/internal/brevo"
	"brevo-connector/internal/common/models"
	"brevo-connector/internal/features/mapping"
	"brevo-connector/internal/features/synclog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeContactRepo struct {
	contacts []*Contact
}

func (f *fakeContactRepo) Create(ctx context.Context, c *Contact) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.SyncStatus == "" {
		c.SyncStatus = models.SyncStatusNever
	}
	cp := *c
	f.contacts = append(f.contacts, &cp)
	return nil
}

func (f *fakeContactRepo) Get(ctx context.Context, id string) (*Contact, error) {
	for _, c := range f.contacts {
		if c.ID.Hex() == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeContactRepo) List(ctx context.Context, limit, offset int64) ([]Contact, error) {
	var out []Contact
	for _, c := range f.contacts {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeContactRepo) Update(ctx context.Context, c *Contact) error {
	c.UpdatedAt = time.Now()
	return f.Replace(ctx, c)
}

func (f *fakeContactRepo) Replace(ctx context.Context, c *Contact) error {
	for i, existing := range f.contacts {
		if existing.ID == c.ID {
			cp := *c
			f.contacts[i] = &cp
			return nil
		}
	}
	return nil
}

func (f *fakeContactRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeContactRepo) Archive(ctx context.Context, id primitive.ObjectID) error {
	for _, c := range f.contacts {
		if c.ID == id {
			c.Active = false
		}
	}
	return nil
}

func (f *fakeContactRepo) FindByBrevoID(ctx context.Context, brevoID string) (*Contact, error) {
	for _, c := range f.contacts {
		if c.BrevoID == brevoID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeContactRepo) FindByEmail(ctx context.Context, email string) (*Contact, error) {
	var best *Contact
	for _, c := range f.contacts {
		if c.Email != email {
			continue
		}
		if best == nil || c.ID.Hex() < best.ID.Hex() {
			best = c
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (f *fakeContactRepo) ListSyncCandidates(ctx context.Context, limit int64) ([]Contact, error) {
	return f.List(ctx, limit, 0)
}

func (f *fakeContactRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeMappingSource struct {
	mappings []mapping.FieldMapping
}

func (f *fakeMappingSource) ListActive(ctx context.Context) ([]mapping.FieldMapping, error) {
	return f.mappings, nil
}

type fakeLogService struct {
	entries []synclog.SyncLog
}

func (f *fakeLogService) add(status models.LogStatus, op models.Operation, msg string, refs synclog.Refs) {
	f.entries = append(f.entries, synclog.SyncLog{
		Operation:    op,
		Status:       status,
		Message:      msg,
		BrevoID:      refs.BrevoID,
		BrevoEmail:   refs.BrevoEmail,
		ErrorMessage: refs.Err,
	})
}

func (f *fakeLogService) Success(ctx context.Context, op models.Operation, dir models.Direction, msg string, refs synclog.Refs) {
	f.add(models.LogStatusSuccess, op, msg, refs)
}

func (f *fakeLogService) Error(ctx context.Context, op models.Operation, dir models.Direction, msg string, refs synclog.Refs) {
	f.add(models.LogStatusError, op, msg, refs)
}

func (f *fakeLogService) Warning(ctx context.Context, op models.Operation, dir models.Direction, msg string, refs synclog.Refs) {
	f.add(models.LogStatusWarning, op, msg, refs)
}

func (f *fakeLogService) Info(ctx context.Context, op models.Operation, dir models.Direction, msg string, refs synclog.Refs) {
	f.add(models.LogStatusInfo, op, msg, refs)
}

func (f *fakeLogService) List(ctx context.Context, filter synclog.Filter) ([]synclog.SyncLog, error) {
	return f.entries, nil
}

func (f *fakeLogService) Cleanup(ctx context.Context) (int64, error) { return 0, nil }

func newTestReconciler(repo *fakeContactRepo, mappings []mapping.FieldMapping) (*Reconciler, *fakeLogService) {
	logs := &fakeLogService{}
	r := NewReconciler(
		repo,
		&fakeMappingSource{mappings: mappings},
		mapping.NewMapper(zap.NewNop()),
		nil,
		logs,
		zap.NewNop(),
	)
	return r, logs
}

func defaultMappings() []mapping.FieldMapping {
	return []mapping.FieldMapping{
		{BrevoAttribute: "CITY", LocalField: "city", FieldType: models.FieldTypeText, Direction: models.DirectionBoth, Active: true},
		{BrevoAttribute: "AGE", LocalField: "age", FieldType: models.FieldTypeInteger, Direction: models.DirectionBoth, Active: true},
	}
}

func TestResolveAndApplyCreatesContact(t *testing.T) {
	repo := &fakeContactRepo{}
	r, _ := newTestReconciler(repo, defaultMappings())

	bag := brevo.Contact{
		ID:    77,
		Email: "Jane.Doe@Example.com",
		Attributes: map[string]interface{}{
			"FNAME": "Jane",
			"LNAME": "Doe",
			"CITY":  "Berlin",
		},
		CreatedAt:  "2024-01-10T09:00:00Z",
		ModifiedAt: "2024-02-01T10:00:00Z",
	}

	c, outcome := r.ResolveAndApply(context.Background(), bag)
	if outcome.Kind != OutcomeCreated {
		t.Fatalf("outcome = %v, want created (%s)", outcome.Kind, outcome.Reason)
	}
	if c.Email != "jane.doe@example.com" {
		t.Errorf("email not normalized: %s", c.Email)
	}
	if c.Name != "Jane Doe" {
		t.Errorf("name = %q, want Jane Doe", c.Name)
	}
	if c.City != "Berlin" {
		t.Errorf("city = %q", c.City)
	}
	if c.BrevoID != "77" {
		t.Errorf("brevo id = %q, want 77", c.BrevoID)
	}
	if c.SyncStatus != models.SyncStatusSynced {
		t.Errorf("status = %s, want synced", c.SyncStatus)
	}
	if c.LastSync.IsZero() {
		t.Error("last sync not stamped")
	}
}

func TestResolveAndApplyRemoteIDWinsOverEmail(t *testing.T) {
	repo := &fakeContactRepo{}
	byID := &Contact{ID: primitive.NewObjectID(), Name: "Linked", Email: "linked@example.com", BrevoID: "10", Active: true}
	byEmail := &Contact{ID: primitive.NewObjectID(), Name: "Other", Email: "shared@example.com", Active: true}
	repo.contacts = append(repo.contacts, byID, byEmail)

	r, _ := newTestReconciler(repo, defaultMappings())

	// The bag carries the email of one record and the remote id of the
	// other: the remote id link must win.
	bag := brevo.Contact{ID: 10, Email: "shared@example.com", Attributes: map[string]interface{}{"CITY": "Hamburg"}}

	c, outcome := r.ResolveAndApply(context.Background(), bag)
	if outcome.Kind != OutcomeUpdated {
		t.Fatalf("outcome = %v, want updated", outcome.Kind)
	}
	if c.ID != byID.ID {
		t.Error("matched by email even though a remote id link existed")
	}
}

func TestResolveAndApplyEmailFallbackLinksRemoteID(t *testing.T) {
	repo := &fakeContactRepo{}
	existing := &Contact{ID: primitive.NewObjectID(), Name: "Jane", Email: "jane@example.com", Active: true}
	repo.contacts = append(repo.contacts, existing)

	r, _ := newTestReconciler(repo, defaultMappings())

	bag := brevo.Contact{ID: 55, Email: "jane@example.com", Attributes: map[string]interface{}{"CITY": "Berlin"}}

	c, outcome := r.ResolveAndApply(context.Background(), bag)
	if outcome.Kind != OutcomeUpdated {
		t.Fatalf("outcome = %v, want updated", outcome.Kind)
	}
	if c.BrevoID != "55" {
		t.Errorf("remote id not linked, got %q", c.BrevoID)
	}
}

func TestResolveAndApplyRemoteIDNeverOverwritten(t *testing.T) {
	repo := &fakeContactRepo{}
	existing := &Contact{ID: primitive.NewObjectID(), Name: "Jane", Email: "jane@example.com", BrevoID: "55", Active: true}
	repo.contacts = append(repo.contacts, existing)

	r, _ := newTestReconciler(repo, defaultMappings())

	// Same address arrives under a different remote id; the stored link
	// must survive.
	bag := brevo.Contact{ID: 99, Email: "jane@example.com", Attributes: map[string]interface{}{}}

	c, outcome := r.ResolveAndApply(context.Background(), bag)
	if outcome.Kind != OutcomeUpdated {
		t.Fatalf("outcome = %v, want updated", outcome.Kind)
	}
	if c.BrevoID != "55" {
		t.Errorf("remote id overwritten: %q", c.BrevoID)
	}
}

func TestResolveAndApplyMissingEmailFails(t *testing.T) {
	repo := &fakeContactRepo{}
	r, logs := newTestReconciler(repo, defaultMappings())

	bag := brevo.Contact{Attributes: map[string]interface{}{"CITY": "Berlin"}}

	_, outcome := r.ResolveAndApply(context.Background(), bag)
	if outcome.Kind != OutcomeFailed {
		t.Fatalf("outcome = %v, want failed", outcome.Kind)
	}
	if outcome.Reason == "" {
		t.Error("failed outcome must carry a reason")
	}
	if len(repo.contacts) != 0 {
		t.Error("no contact should have been written")
	}
	if len(logs.entries) == 0 || logs.entries[0].Status != models.LogStatusError {
		t.Error("failure must be logged")
	}
}

func TestResolveAndApplyNameSynthesisBypassesChangeGate(t *testing.T) {
	repo := &fakeContactRepo{}
	existing := &Contact{ID: primitive.NewObjectID(), Name: "Doe Jane", Email: "jane@example.com", Active: true}
	repo.contacts = append(repo.contacts, existing)

	r, _ := newTestReconciler(repo, defaultMappings())

	// Swapped halves: no single field changes in isolation but the
	// composite differs.
	bag := brevo.Contact{
		Email:      "jane@example.com",
		Attributes: map[string]interface{}{"FNAME": "Jane", "LNAME": "Doe"},
	}

	c, outcome := r.ResolveAndApply(context.Background(), bag)
	if outcome.Kind != OutcomeUpdated {
		t.Fatalf("outcome = %v, want updated", outcome.Kind)
	}
	if c.Name != "Jane Doe" {
		t.Errorf("name = %q, want Jane Doe", c.Name)
	}
}

func TestResolveAndApplyPartialNamePairKeepsName(t *testing.T) {
	repo := &fakeContactRepo{}
	existing := &Contact{ID: primitive.NewObjectID(), Name: "Jane Doe", Email: "jane@example.com", Active: true}
	repo.contacts = append(repo.contacts, existing)

	r, _ := newTestReconciler(repo, defaultMappings())

	// One half alone must not rewrite a full name.
	bag := brevo.Contact{
		Email:      "jane@example.com",
		Attributes: map[string]interface{}{"FNAME": "Janet"},
	}

	c, outcome := r.ResolveAndApply(context.Background(), bag)
	if outcome.Kind != OutcomeUpdated {
		t.Fatalf("outcome = %v, want updated", outcome.Kind)
	}
	if c.Name != "Jane Doe" {
		t.Errorf("name = %q, want Jane Doe", c.Name)
	}

	// Same for a lone last name.
	bag.Attributes = map[string]interface{}{"LNAME": "Smith"}
	c, outcome = r.ResolveAndApply(context.Background(), bag)
	if outcome.Kind != OutcomeUpdated {
		t.Fatalf("outcome = %v, want updated", outcome.Kind)
	}
	if c.Name != "Jane Doe" {
		t.Errorf("name = %q, want Jane Doe", c.Name)
	}
}

func TestResolveAndApplyPartialNameFillsOnCreate(t *testing.T) {
	repo := &fakeContactRepo{}
	r, _ := newTestReconciler(repo, defaultMappings())

	bag := brevo.Contact{
		Email:      "new@example.com",
		Attributes: map[string]interface{}{"FNAME": "Janet"},
	}

	c, outcome := r.ResolveAndApply(context.Background(), bag)
	if outcome.Kind != OutcomeCreated {
		t.Fatalf("outcome = %v, want created", outcome.Kind)
	}
	if c.Name != "Janet" {
		t.Errorf("name = %q, want Janet", c.Name)
	}
}

func TestResolveAndApplyCoercionFailureDoesNotFailRecord(t *testing.T) {
	repo := &fakeContactRepo{}
	existing := &Contact{ID: primitive.NewObjectID(), Name: "Jane", Email: "jane@example.com", Active: true}
	repo.contacts = append(repo.contacts, existing)

	r, logs := newTestReconciler(repo, defaultMappings())

	bag := brevo.Contact{
		Email: "jane@example.com",
		Attributes: map[string]interface{}{
			"CITY": "Berlin",
			"AGE":  "not-a-number",
		},
	}

	c, outcome := r.ResolveAndApply(context.Background(), bag)
	if outcome.Kind != OutcomeUpdated {
		t.Fatalf("outcome = %v, want updated", outcome.Kind)
	}
	if c.City != "Berlin" {
		t.Error("good field should still apply")
	}

	warned := false
	for _, e := range logs.entries {
		if e.Status == models.LogStatusWarning {
			warned = true
		}
	}
	if !warned {
		t.Error("coercion failure should leave a warning entry")
	}
}

func TestShouldSync(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		contact Contact
		want    bool
	}{
		{
			name:    "no email never syncs",
			contact: Contact{SyncStatus: models.SyncStatusNever},
			want:    false,
		},
		{
			name:    "never synced",
			contact: Contact{Email: "a@b.c", SyncStatus: models.SyncStatusNever},
			want:    true,
		},
		{
			name:    "errored retries",
			contact: Contact{Email: "a@b.c", SyncStatus: models.SyncStatusError, LastSync: now},
			want:    true,
		},
		{
			name:    "pending syncs",
			contact: Contact{Email: "a@b.c", SyncStatus: models.SyncStatusPending, LastSync: now},
			want:    true,
		},
		{
			name: "synced and untouched stays put",
			contact: Contact{
				Email:      "a@b.c",
				SyncStatus: models.SyncStatusSynced,
				LastSync:   now,
				UpdatedAt:  now.Add(-time.Minute),
			},
			want: false,
		},
		{
			name: "edited after last sync goes again",
			contact: Contact{
				Email:      "a@b.c",
				SyncStatus: models.SyncStatusSynced,
				LastSync:   now.Add(-time.Minute),
				UpdatedAt:  now,
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldSync(&tt.contact); got != tt.want {
				t.Errorf("ShouldSync() = %v, want %v", got, tt.want)
			}
		})
	}
}
