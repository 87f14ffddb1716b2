package contact

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"brevo-connector/internal/brevo"
	"brevo-connector/internal/common/models"
	"brevo-connector/internal/features/mapping"
	"brevo-connector/internal/features/synclog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type OutcomeKind string

const (
	OutcomeCreated OutcomeKind = "created"
	OutcomeUpdated OutcomeKind = "updated"
	OutcomeFailed  OutcomeKind = "failed"
)

// Outcome is the per-record result of applying one remote bag. Failures
// carry a reason and never propagate as errors, so one bad record can
// not take down a batch.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
}

// MappingSource lists the active field mappings. Satisfied by the
// mapping repository.
type MappingSource interface {
	ListActive(ctx context.Context) ([]mapping.FieldMapping, error)
}

// ListResolver resolves remote list ids and display names to local list
// references. Satisfied by the list service.
type ListResolver interface {
	ResolveRemoteIDs(ctx context.Context, remoteIDs []int64) ([]primitive.ObjectID, error)
	ResolveNames(ctx context.Context, names []string) ([]primitive.ObjectID, error)
}

// Reconciler applies inbound remote contact bags to local records:
// identity resolution, field merging through the mapper, and the sync
// bookkeeping writes.
type Reconciler struct {
	Contacts ContactRepository
	Mappings MappingSource
	Mapper   *mapping.Mapper
	Lists    ListResolver
	Logs     synclog.SyncLogService
	Logger   *zap.Logger
}

func NewReconciler(
	contacts ContactRepository,
	mappings MappingSource,
	mapper *mapping.Mapper,
	lists ListResolver,
	logs synclog.SyncLogService,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		Contacts: contacts,
		Mappings: mappings,
		Mapper:   mapper,
		Lists:    lists,
		Logs:     logs,
		Logger:   logger,
	}
}

// ResolveAndApply links a remote bag to a local contact and applies it.
// Identity is resolved by remote id first, then by email; a bag that
// matches nothing creates a new contact. All failures are converted to
// a Failed outcome with a logged reason.
func (r *Reconciler) ResolveAndApply(ctx context.Context, bag brevo.Contact) (*Contact, Outcome) {
	email := strings.ToLower(strings.TrimSpace(bag.Email))
	remoteID := ""
	if bag.ID != 0 {
		remoteID = strconv.FormatInt(bag.ID, 10)
	}

	var existing *Contact
	var err error

	if remoteID != "" {
		existing, err = r.Contacts.FindByBrevoID(ctx, remoteID)
		if err != nil {
			return nil, r.fail(ctx, models.OpContactUpdate, remoteID, email, fmt.Sprintf("remote id lookup failed: %v", err))
		}
	}
	if existing == nil && email != "" {
		existing, err = r.Contacts.FindByEmail(ctx, email)
		if err != nil {
			return nil, r.fail(ctx, models.OpContactUpdate, remoteID, email, fmt.Sprintf("email lookup failed: %v", err))
		}
	}

	if existing == nil && email == "" {
		return nil, r.fail(ctx, models.OpContactCreate, remoteID, "", "contact has no email address")
	}

	mappings, err := r.Mappings.ListActive(ctx)
	if err != nil {
		return nil, r.fail(ctx, models.OpContactUpdate, remoteID, email, fmt.Sprintf("loading field mappings failed: %v", err))
	}

	if existing != nil {
		return r.applyUpdate(ctx, existing, bag, mappings, remoteID, email)
	}
	return r.applyCreate(ctx, bag, mappings, remoteID, email)
}

func (r *Reconciler) applyUpdate(ctx context.Context, c *Contact, bag brevo.Contact, mappings []mapping.FieldMapping, remoteID, email string) (*Contact, Outcome) {
	snapshot := c.Snapshot(localFields(mappings))
	updates, warnings := r.Mapper.FromRemote(bag.Attributes, mappings, snapshot)
	r.reportWarnings(ctx, models.OpContactUpdate, remoteID, email, warnings)

	for field, value := range updates {
		c.SetFieldValue(field, value)
	}

	// FNAME+LNAME synthesize the display name as a unit, bypassing the
	// per-field change gate: a swapped name pair must still apply. Only
	// the complete pair qualifies; a bag carrying one half leaves the
	// stored name alone.
	if full, both := compositeName(bag.Attributes); both && full != c.Name {
		c.Name = full
	}

	r.applyReferences(ctx, c, bag, mappings)
	r.bookkeeping(c, bag, remoteID, email)

	if err := r.Contacts.Replace(ctx, c); err != nil {
		return nil, r.fail(ctx, models.OpContactUpdate, remoteID, email, fmt.Sprintf("persisting contact failed: %v", err))
	}

	r.Logs.Success(ctx, models.OpContactUpdate, models.DirectionPull,
		fmt.Sprintf("Contact updated from Brevo: %s", c.Email),
		synclog.Refs{ContactID: &c.ID, BrevoID: c.BrevoID, BrevoEmail: email})

	return c, Outcome{Kind: OutcomeUpdated}
}

func (r *Reconciler) applyCreate(ctx context.Context, bag brevo.Contact, mappings []mapping.FieldMapping, remoteID, email string) (*Contact, Outcome) {
	c := &Contact{
		Email:  email,
		Active: true,
	}

	updates, warnings := r.Mapper.FromRemote(bag.Attributes, mappings, nil)
	r.reportWarnings(ctx, models.OpContactCreate, remoteID, email, warnings)

	for field, value := range updates {
		c.SetFieldValue(field, value)
	}

	// On create even a lone name half beats an empty name.
	if full, _ := compositeName(bag.Attributes); full != "" {
		c.Name = full
	}
	if c.Name == "" {
		c.Name = email
	}

	r.applyReferences(ctx, c, bag, mappings)
	r.bookkeeping(c, bag, remoteID, email)
	if t, err := mapping.ParseRemoteTime(bag.CreatedAt); err == nil {
		c.BrevoCreated = t
	}

	if err := r.Contacts.Create(ctx, c); err != nil {
		return nil, r.fail(ctx, models.OpContactCreate, remoteID, email, fmt.Sprintf("persisting contact failed: %v", err))
	}

	r.Logs.Success(ctx, models.OpContactCreate, models.DirectionPull,
		fmt.Sprintf("Contact created from Brevo: %s", c.Email),
		synclog.Refs{ContactID: &c.ID, BrevoID: c.BrevoID, BrevoEmail: email})

	return c, Outcome{Kind: OutcomeCreated}
}

// bookkeeping stamps the sync state on a successfully applied record.
// The remote id is written once and never overwritten.
func (r *Reconciler) bookkeeping(c *Contact, bag brevo.Contact, remoteID, email string) {
	if email != "" {
		c.Email = email
	}
	if c.BrevoID == "" && remoteID != "" {
		c.BrevoID = remoteID
	}
	c.SyncStatus = models.SyncStatusSynced
	c.SyncError = ""
	// One instant for both stamps: an applied bag must not register as
	// a local edit newer than the sync itself.
	now := time.Now()
	c.LastSync = now
	c.UpdatedAt = now
	if t, err := mapping.ParseRemoteTime(bag.ModifiedAt); err == nil {
		c.BrevoModified = t
	}
}

// applyReferences resolves reference-typed attributes, which the mapper
// deliberately leaves alone. List membership is the only reference
// target here: remote list ids win, display names (TAGS style
// attributes) fill in when the bag carries no ids. Names that match
// nothing are dropped.
func (r *Reconciler) applyReferences(ctx context.Context, c *Contact, bag brevo.Contact, mappings []mapping.FieldMapping) {
	if r.Lists == nil {
		return
	}

	if len(bag.ListIDs) > 0 {
		if ids, err := r.Lists.ResolveRemoteIDs(ctx, bag.ListIDs); err == nil {
			c.ListIDs = ids
		} else {
			r.Logger.Warn("resolving remote list ids failed", zap.Error(err))
		}
		return
	}

	for i := range mappings {
		mp := &mappings[i]
		if !mp.PullEnabled() {
			continue
		}
		if mp.FieldType != models.FieldTypeReference && mp.FieldType != models.FieldTypeMultiRef {
			continue
		}

		raw, ok := bag.Attributes[mp.BrevoAttribute].(string)
		if !ok || raw == "" {
			continue
		}

		var names []string
		if mp.FieldType == models.FieldTypeMultiRef {
			for _, n := range strings.Split(raw, ",") {
				if n = strings.TrimSpace(n); n != "" {
					names = append(names, n)
				}
			}
		} else {
			names = []string{strings.TrimSpace(raw)}
		}

		ids, err := r.Lists.ResolveNames(ctx, names)
		if err != nil {
			r.Logger.Warn("resolving list names failed",
				zap.String("attribute", mp.BrevoAttribute), zap.Error(err))
			continue
		}
		if len(ids) > 0 {
			c.ListIDs = ids
		}
	}
}

func (r *Reconciler) reportWarnings(ctx context.Context, op models.Operation, remoteID, email string, warnings []mapping.Warning) {
	for _, w := range warnings {
		r.Logs.Warning(ctx, op, models.DirectionPull,
			fmt.Sprintf("Attribute %s skipped for field %s: %s", w.Attribute, w.Field, w.Message),
			synclog.Refs{BrevoID: remoteID, BrevoEmail: email})
	}
}

func (r *Reconciler) fail(ctx context.Context, op models.Operation, remoteID, email, reason string) Outcome {
	r.Logger.Warn("contact reconciliation failed",
		zap.String("brevo_id", remoteID),
		zap.String("email", email),
		zap.String("reason", reason))
	r.Logs.Error(ctx, op, models.DirectionPull, "Contact reconciliation failed",
		synclog.Refs{BrevoID: remoteID, BrevoEmail: email, Err: reason})
	return Outcome{Kind: OutcomeFailed, Reason: reason}
}

// compositeName joins the FNAME and LNAME attributes into a display
// name and reports whether both halves carried a value. Updates only
// accept the complete pair; a lone half would overwrite a full name
// with a fragment.
func compositeName(attrs map[string]interface{}) (string, bool) {
	first, _ := attrs["FNAME"].(string)
	last, _ := attrs["LNAME"].(string)
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	return strings.TrimSpace(first + " " + last), first != "" && last != ""
}

// localFields lists the distinct local field names the mappings address.
func localFields(mappings []mapping.FieldMapping) []string {
	seen := make(map[string]bool, len(mappings))
	var fields []string
	for i := range mappings {
		f := mappings[i].LocalField
		if f != "" && !seen[f] {
			seen[f] = true
			fields = append(fields, f)
		}
	}
	return fields
}

// ShouldSync decides whether a contact is admitted to an outbound sync
// pass: it must carry an email address and either sit in a retryable
// status or have been written since its last successful sync.
func ShouldSync(c *Contact) bool {
	if strings.TrimSpace(c.Email) == "" {
		return false
	}
	switch c.SyncStatus {
	case models.SyncStatusNever, models.SyncStatusError, models.SyncStatusPending:
		return true
	}
	if c.LastSync.IsZero() {
		return true
	}
	return c.UpdatedAt.After(c.LastSync)
}
