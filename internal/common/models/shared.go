package models

import (
	"time"
)

// FieldType describes how a mapped attribute value is coerced before it
// is written to a contact field.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeLongText  FieldType = "longtext"
	FieldTypeInteger   FieldType = "integer"
	FieldTypeFloat     FieldType = "float"
	FieldTypeBoolean   FieldType = "boolean"
	FieldTypeDate      FieldType = "date"
	FieldTypeDateTime  FieldType = "datetime"
	FieldTypeSelection FieldType = "selection"
	FieldTypeReference FieldType = "reference"
	FieldTypeMultiRef  FieldType = "multireference"
)

// SyncStatus tracks where a record stands in the sync cycle.
// never -> pending -> synced, with error reachable from any state and
// recoverable on the next successful pass.
type SyncStatus string

const (
	SyncStatusNever   SyncStatus = "never"
	SyncStatusPending SyncStatus = "pending"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusError   SyncStatus = "error"
)

type Direction string

const (
	DirectionPush Direction = "local_to_brevo"
	DirectionPull Direction = "brevo_to_local"
	DirectionBoth Direction = "bidirectional"
)

type LogStatus string

const (
	LogStatusSuccess LogStatus = "success"
	LogStatusError   LogStatus = "error"
	LogStatusWarning LogStatus = "warning"
	LogStatusInfo    LogStatus = "info"
)

type Operation string

const (
	OpContactCreate  Operation = "contact_create"
	OpContactUpdate  Operation = "contact_update"
	OpContactDelete  Operation = "contact_delete"
	OpListCreate     Operation = "list_create"
	OpListUpdate     Operation = "list_update"
	OpListDelete     Operation = "list_delete"
	OpLeadCreate     Operation = "lead_create"
	OpLeadUpdate     Operation = "lead_update"
	OpSyncAll        Operation = "sync_all"
	OpWebhook        Operation = "webhook"
	OpConnectionTest Operation = "connection_test"
)

// Log is the application log record written by the zap tee core.
type Log struct {
	Message      string    `bson:"message" json:"message"`
	Caller       string    `bson:"caller" json:"caller"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
