package mapping

import (
	"strings"

	"brevo-connector/internal/common/models"
)

type predefinedMapping struct {
	LocalField string
	FieldType  models.FieldType
}

// predefinedMappings pairs well-known Brevo attributes with the local
// contact fields they usually belong to. Attributes without a typed
// schema column land in the contact's extra field table.
var predefinedMappings = map[string]predefinedMapping{
	"FNAME":         {LocalField: "first_name", FieldType: models.FieldTypeText},
	"LNAME":         {LocalField: "last_name", FieldType: models.FieldTypeText},
	"FIRSTNAME":     {LocalField: "first_name", FieldType: models.FieldTypeText},
	"LASTNAME":      {LocalField: "last_name", FieldType: models.FieldTypeText},
	"BIRTHDAY":      {LocalField: "birthday", FieldType: models.FieldTypeDate},
	"AGE":           {LocalField: "age", FieldType: models.FieldTypeInteger},
	"GENDER":        {LocalField: "gender", FieldType: models.FieldTypeSelection},
	"SMS":           {LocalField: "mobile", FieldType: models.FieldTypeText},
	"PHONE":         {LocalField: "phone", FieldType: models.FieldTypeText},
	"MOBILE":        {LocalField: "mobile", FieldType: models.FieldTypeText},
	"WEBSITE":       {LocalField: "website", FieldType: models.FieldTypeText},
	"ADDRESS":       {LocalField: "street", FieldType: models.FieldTypeText},
	"STREET":        {LocalField: "street", FieldType: models.FieldTypeText},
	"STREET2":       {LocalField: "street2", FieldType: models.FieldTypeText},
	"CITY":          {LocalField: "city", FieldType: models.FieldTypeText},
	"ZIP":           {LocalField: "zip", FieldType: models.FieldTypeText},
	"POSTAL_CODE":   {LocalField: "zip", FieldType: models.FieldTypeText},
	"COUNTRY":       {LocalField: "country", FieldType: models.FieldTypeText},
	"STATE":         {LocalField: "state", FieldType: models.FieldTypeText},
	"PROVINCE":      {LocalField: "state", FieldType: models.FieldTypeText},
	"TIMEZONE":      {LocalField: "timezone", FieldType: models.FieldTypeText},
	"LATITUDE":      {LocalField: "latitude", FieldType: models.FieldTypeFloat},
	"LONGITUDE":     {LocalField: "longitude", FieldType: models.FieldTypeFloat},
	"COMPANY":       {LocalField: "company_name", FieldType: models.FieldTypeText},
	"COMPANY_NAME":  {LocalField: "company_name", FieldType: models.FieldTypeText},
	"JOB_TITLE":     {LocalField: "job_position", FieldType: models.FieldTypeText},
	"POSITION":      {LocalField: "job_position", FieldType: models.FieldTypeText},
	"TAGS":          {LocalField: "lists", FieldType: models.FieldTypeMultiRef},
	"SOURCE":        {LocalField: "source", FieldType: models.FieldTypeText},
	"OPT_IN":        {LocalField: "opt_in", FieldType: models.FieldTypeBoolean},
	"DOUBLE_OPT_IN": {LocalField: "double_opt_in", FieldType: models.FieldTypeBoolean},
	"EMAIL_CONSENT": {LocalField: "email_consent", FieldType: models.FieldTypeBoolean},
}

// fieldTypeForRemote maps a Brevo attribute type to a coercion type for
// attributes discovery has no predefined pairing for.
func fieldTypeForRemote(remoteType string) models.FieldType {
	switch strings.ToLower(remoteType) {
	case "number", "float":
		return models.FieldTypeFloat
	case "boolean":
		return models.FieldTypeBoolean
	case "date":
		return models.FieldTypeDate
	default:
		return models.FieldTypeText
	}
}

// localFieldName derives a default local field name from an attribute
// name, e.g. LOYALTY_POINTS -> loyalty_points.
func localFieldName(attribute string) string {
	return strings.ToLower(strings.TrimSpace(attribute))
}
