package sync

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"brevo-connector/internal/brevo"
	"brevo-connector/internal/common/models"
	"brevo-connector/internal/features/contact"
	"brevo-connector/internal/features/list"
	"brevo-connector/internal/features/mapping"
	"brevo-connector/internal/features/settings"
	"brevo-connector/internal/features/synclog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeBrevoAPI struct {
	pages      [][]brevo.Contact
	fetchCalls int

	pushed  []string
	pushErr map[string]error
	nextID  int64
}

func (f *fakeBrevoAPI) FetchContacts(ctx context.Context, limit, offset int, modifiedSince time.Time) ([]brevo.Contact, error) {
	f.fetchCalls++
	page := offset / limit
	if page >= len(f.pages) {
		return nil, nil
	}
	return f.pages[page], nil
}

func (f *fakeBrevoAPI) PushContact(ctx context.Context, email string, attributes map[string]interface{}, listIDs []int64, remoteID string) (string, error) {
	if err := f.pushErr[email]; err != nil {
		return "", err
	}
	f.pushed = append(f.pushed, email)
	if remoteID != "" {
		return remoteID, nil
	}
	f.nextID++
	return strconv.FormatInt(9000+f.nextID, 10), nil
}

func (f *fakeBrevoAPI) FetchLists(ctx context.Context, limit, offset int) ([]brevo.List, error) {
	return nil, nil
}

type fakeContactRepo struct {
	contacts []*contact.Contact
}

func (f *fakeContactRepo) Create(ctx context.Context, c *contact.Contact) error {
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

func (f *fakeContactRepo) Get(ctx context.Context, id string) (*contact.Contact, error) {
	for _, c := range f.contacts {
		if c.ID.Hex() == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeContactRepo) List(ctx context.Context, limit, offset int64) ([]contact.Contact, error) {
	var out []contact.Contact
	for _, c := range f.contacts {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeContactRepo) Update(ctx context.Context, c *contact.Contact) error {
	c.UpdatedAt = time.Now()
	return f.Replace(ctx, c)
}

func (f *fakeContactRepo) Replace(ctx context.Context, c *contact.Contact) error {
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

func (f *fakeContactRepo) Archive(ctx context.Context, id primitive.ObjectID) error { return nil }

func (f *fakeContactRepo) FindByBrevoID(ctx context.Context, brevoID string) (*contact.Contact, error) {
	for _, c := range f.contacts {
		if c.BrevoID == brevoID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeContactRepo) FindByEmail(ctx context.Context, email string) (*contact.Contact, error) {
	for _, c := range f.contacts {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeContactRepo) ListSyncCandidates(ctx context.Context, limit int64) ([]contact.Contact, error) {
	return f.List(ctx, limit, 0)
}

func (f *fakeContactRepo) EnsureIndexes(ctx context.Context) error { return nil }

type fakeMappingSource struct {
	mappings []mapping.FieldMapping
}

func (f *fakeMappingSource) ListActive(ctx context.Context) ([]mapping.FieldMapping, error) {
	return f.mappings, nil
}

type fakeSettingsRepo struct {
	settings settings.Settings
	updates  int
}

func (f *fakeSettingsRepo) GetActive(ctx context.Context) (*settings.Settings, error) {
	cp := f.settings
	return &cp, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, s *settings.Settings) error {
	f.settings = *s
	f.updates++
	return nil
}

func (f *fakeSettingsRepo) EnsureDefaults(ctx context.Context) (*settings.Settings, error) {
	cp := f.settings
	return &cp, nil
}

type fakeListService struct{}

func (f *fakeListService) GetList(ctx context.Context, id string) (*list.ContactList, error) {
	return nil, nil
}

func (f *fakeListService) ListLists(ctx context.Context) ([]list.ContactList, error) {
	return nil, nil
}

func (f *fakeListService) SyncFromRemote(ctx context.Context, remote brevo.List) (*list.ContactList, bool, error) {
	return &list.ContactList{Name: remote.Name, BrevoID: remote.ID}, true, nil
}

func (f *fakeListService) ArchiveByRemoteID(ctx context.Context, brevoID int64) (*list.ContactList, error) {
	return nil, nil
}

func (f *fakeListService) ResolveRemoteIDs(ctx context.Context, remoteIDs []int64) ([]primitive.ObjectID, error) {
	return nil, nil
}

func (f *fakeListService) ResolveNames(ctx context.Context, names []string) ([]primitive.ObjectID, error) {
	return nil, nil
}

func (f *fakeListService) RemoteIDsFor(ctx context.Context, localIDs []primitive.ObjectID) ([]int64, error) {
	return nil, nil
}

type nopLogService struct{}

func (nopLogService) Success(ctx context.Context, op models.Operation, dir models.Direction, msg string, refs synclog.Refs) {
}
func (nopLogService) Error(ctx context.Context, op models.Operation, dir models.Direction, msg string, refs synclog.Refs) {
}
func (nopLogService) Warning(ctx context.Context, op models.Operation, dir models.Direction, msg string, refs synclog.Refs) {
}
func (nopLogService) Info(ctx context.Context, op models.Operation, dir models.Direction, msg string, refs synclog.Refs) {
}
func (nopLogService) List(ctx context.Context, filter synclog.Filter) ([]synclog.SyncLog, error) {
	return nil, nil
}
func (nopLogService) Cleanup(ctx context.Context) (int64, error) { return 0, nil }

func newTestService(api *fakeBrevoAPI, repo *fakeContactRepo, mappings []mapping.FieldMapping, batch int64) (*SyncServiceImpl, *fakeSettingsRepo) {
	logs := nopLogService{}
	mapper := mapping.NewMapper(zap.NewNop())
	source := &fakeMappingSource{mappings: mappings}
	reconciler := contact.NewReconciler(repo, source, mapper, nil, logs, zap.NewNop())
	settingsRepo := &fakeSettingsRepo{
		settings: settings.Settings{BatchSize: batch, SyncInterval: 30, Active: true},
	}

	svc := &SyncServiceImpl{
		API:        api,
		Contacts:   repo,
		Reconciler: reconciler,
		Mapper:     mapper,
		Mappings:   source,
		Lists:      &fakeListService{},
		Settings:   settingsRepo,
		Logs:       logs,
		Logger:     zap.NewNop(),
	}
	return svc, settingsRepo
}

func TestSyncContactsStopsOnShortPage(t *testing.T) {
	api := &fakeBrevoAPI{
		pages: [][]brevo.Contact{
			{
				{ID: 1, Email: "a@example.com"},
				{ID: 2, Email: "b@example.com"},
			},
			{
				{ID: 3, Email: "c@example.com"},
			},
		},
	}
	repo := &fakeContactRepo{}
	svc, settingsRepo := newTestService(api, repo, nil, 2)

	result, err := svc.SyncContacts(context.Background())
	if err != nil {
		t.Fatalf("SyncContacts: %v", err)
	}
	if result.Synced != 3 {
		t.Errorf("synced = %d, want 3", result.Synced)
	}
	// A full first page forces a second fetch; the short second page
	// must end the loop without a third.
	if api.fetchCalls != 2 {
		t.Errorf("fetch calls = %d, want 2", api.fetchCalls)
	}
	if len(repo.contacts) != 3 {
		t.Errorf("stored contacts = %d, want 3", len(repo.contacts))
	}
	if settingsRepo.settings.LastContactSync.IsZero() {
		t.Error("last contact sync not stamped")
	}
}

func TestSyncContactsBadRecordDoesNotStopPass(t *testing.T) {
	api := &fakeBrevoAPI{
		pages: [][]brevo.Contact{
			{
				{ID: 1, Email: "a@example.com"},
				{}, // no email, no id: unresolvable
				{ID: 3, Email: "c@example.com"},
			},
		},
	}
	repo := &fakeContactRepo{}
	svc, _ := newTestService(api, repo, nil, 10)

	result, err := svc.SyncContacts(context.Background())
	if err != nil {
		t.Fatalf("SyncContacts: %v", err)
	}
	if result.Synced != 2 {
		t.Errorf("synced = %d, want 2", result.Synced)
	}
	if result.Errors != 1 {
		t.Errorf("errors = %d, want 1", result.Errors)
	}
}

func TestSyncPendingPushFailureIsolated(t *testing.T) {
	repo := &fakeContactRepo{}
	good := &contact.Contact{ID: primitive.NewObjectID(), Name: "Good One", Email: "good@example.com", Active: true, SyncStatus: models.SyncStatusNever}
	bad := &contact.Contact{ID: primitive.NewObjectID(), Name: "Bad One", Email: "bad@example.com", Active: true, SyncStatus: models.SyncStatusNever}
	repo.contacts = append(repo.contacts, good, bad)

	api := &fakeBrevoAPI{
		pushErr: map[string]error{
			"bad@example.com": errors.New("boom"),
		},
	}
	svc, _ := newTestService(api, repo, nil, 10)

	result, err := svc.SyncPending(context.Background())
	if err != nil {
		t.Fatalf("SyncPending: %v", err)
	}
	if result.Synced != 1 || result.Errors != 1 {
		t.Errorf("synced = %d, errors = %d, want 1/1", result.Synced, result.Errors)
	}

	stored, _ := repo.FindByEmail(context.Background(), "bad@example.com")
	if stored.SyncStatus != models.SyncStatusError {
		t.Errorf("failed push status = %s, want error", stored.SyncStatus)
	}
	if stored.SyncError == "" {
		t.Error("failed push must record the error")
	}

	stored, _ = repo.FindByEmail(context.Background(), "good@example.com")
	if stored.SyncStatus != models.SyncStatusSynced {
		t.Errorf("pushed status = %s, want synced", stored.SyncStatus)
	}
	if stored.BrevoID == "" {
		t.Error("pushed contact must carry its remote id")
	}
}

func TestSyncPendingSerializesMappedFields(t *testing.T) {
	repo := &fakeContactRepo{}
	c := &contact.Contact{
		ID:         primitive.NewObjectID(),
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		City:       "Berlin",
		Active:     true,
		SyncStatus: models.SyncStatusNever,
	}
	repo.contacts = append(repo.contacts, c)

	var captured map[string]interface{}
	api := &capturingAPI{onPush: func(attrs map[string]interface{}) { captured = attrs }}

	mappings := []mapping.FieldMapping{
		{BrevoAttribute: "CITY", LocalField: "city", FieldType: models.FieldTypeText, Direction: models.DirectionBoth, Active: true},
	}
	svc, _ := newTestService(&fakeBrevoAPI{}, repo, mappings, 10)
	svc.API = api

	if _, err := svc.SyncPending(context.Background()); err != nil {
		t.Fatalf("SyncPending: %v", err)
	}

	if captured["CITY"] != "Berlin" {
		t.Errorf("CITY = %v, want Berlin", captured["CITY"])
	}
	if captured["FNAME"] != "Jane" || captured["LNAME"] != "Doe" {
		t.Errorf("name halves = %v / %v, want Jane / Doe", captured["FNAME"], captured["LNAME"])
	}
}

type capturingAPI struct {
	onPush func(attrs map[string]interface{})
}

func (c *capturingAPI) FetchContacts(ctx context.Context, limit, offset int, modifiedSince time.Time) ([]brevo.Contact, error) {
	return nil, nil
}

func (c *capturingAPI) PushContact(ctx context.Context, email string, attributes map[string]interface{}, listIDs []int64, remoteID string) (string, error) {
	c.onPush(attributes)
	return "42", nil
}

func (c *capturingAPI) FetchLists(ctx context.Context, limit, offset int) ([]brevo.List, error) {
	return nil, nil
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
	}{
		{"Jane Doe", "Jane", "Doe"},
		{"Jane", "Jane", ""},
		{"Jane van der Berg", "Jane", "van der Berg"},
		{"", "", ""},
		{"  Jane  Doe  ", "Jane", "Doe"},
	}

	for _, tt := range tests {
		first, last := splitName(tt.name)
		if first != tt.first || last != tt.last {
			t.Errorf("splitName(%q) = %q/%q, want %q/%q", tt.name, first, last, tt.first, tt.last)
		}
	}
}
