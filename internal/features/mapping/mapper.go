package mapping

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"brevo-connector/internal/common/models"

	"go.uber.org/zap"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Mapper translates attribute bags between the Brevo representation and
// local contact field values. It is pure: it never writes storage and
// never emits audit entries, it only returns updates and warnings.
type Mapper struct {
	log *zap.Logger
}

func NewMapper(log *zap.Logger) *Mapper {
	return &Mapper{log: log}
}

// FromRemote coerces the attributes of a remote bag into local field
// updates. When existing field values are given, values that would not
// change anything are omitted, so callers can treat a non-empty result
// as "something to write". Reference-typed mappings are not resolved
// here; callers own the lookup against their own tables.
//
// A value that cannot be coerced produces a warning and skips that one
// field. Absent, null and empty-string attributes are the same no-value
// case and never produce an update.
func (m *Mapper) FromRemote(attrs map[string]interface{}, mappings []FieldMapping, existing map[string]interface{}) (map[string]interface{}, []Warning) {
	updates := make(map[string]interface{})
	var warnings []Warning

	for i := range mappings {
		mp := &mappings[i]
		if !mp.PullEnabled() {
			continue
		}
		if mp.FieldType == models.FieldTypeReference || mp.FieldType == models.FieldTypeMultiRef {
			continue
		}

		raw, present := attrs[mp.BrevoAttribute]
		if !present || raw == nil || raw == "" {
			continue
		}

		coerced, err := coerceValue(raw, mp.FieldType)
		if err != nil {
			warnings = append(warnings, Warning{
				Attribute: mp.BrevoAttribute,
				Field:     mp.LocalField,
				Message:   err.Error(),
			})
			if m.log != nil {
				m.log.Warn("skipping attribute with uncoercible value",
					zap.String("attribute", mp.BrevoAttribute),
					zap.String("field", mp.LocalField),
					zap.Error(err))
			}
			continue
		}

		if existing != nil {
			if current, has := existing[mp.LocalField]; has {
				if normalizeForCompare(current) == normalizeForCompare(coerced) {
					continue
				}
			}
		}

		updates[mp.LocalField] = coerced
	}

	return updates, warnings
}

// ToRemote serializes local field values into a Brevo attribute bag.
// Reference values are expected to already be display names; multi
// reference values are joined with a comma.
func (m *Mapper) ToRemote(values map[string]interface{}, mappings []FieldMapping) map[string]interface{} {
	attrs := make(map[string]interface{})

	for i := range mappings {
		mp := &mappings[i]
		if !mp.PushEnabled() {
			continue
		}

		v, ok := values[mp.LocalField]
		if !ok || v == nil || v == "" {
			continue
		}

		switch mp.FieldType {
		case models.FieldTypeDate:
			if t, ok := v.(time.Time); ok {
				if t.IsZero() {
					continue
				}
				attrs[mp.BrevoAttribute] = t.Format(dateLayout)
			} else {
				attrs[mp.BrevoAttribute] = stringify(v)
			}
		case models.FieldTypeDateTime:
			if t, ok := v.(time.Time); ok {
				if t.IsZero() {
					continue
				}
				attrs[mp.BrevoAttribute] = t.Format(dateTimeLayout)
			} else {
				attrs[mp.BrevoAttribute] = stringify(v)
			}
		case models.FieldTypeMultiRef:
			switch names := v.(type) {
			case []string:
				if len(names) == 0 {
					continue
				}
				attrs[mp.BrevoAttribute] = strings.Join(names, ", ")
			case string:
				attrs[mp.BrevoAttribute] = names
			}
		case models.FieldTypeReference:
			attrs[mp.BrevoAttribute] = stringify(v)
		case models.FieldTypeInteger, models.FieldTypeFloat, models.FieldTypeBoolean:
			attrs[mp.BrevoAttribute] = v
		default:
			attrs[mp.BrevoAttribute] = stringify(v)
		}
	}

	return attrs
}

func coerceValue(raw interface{}, fieldType models.FieldType) (interface{}, error) {
	switch fieldType {
	case models.FieldTypeText, models.FieldTypeLongText, models.FieldTypeSelection:
		// Selection values pass through unvalidated; mismatches stay
		// visible to operators on the mapping's option list.
		return stringify(raw), nil

	case models.FieldTypeInteger:
		switch v := raw.(type) {
		case float64:
			return int64(v), nil
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case bool:
			if v {
				return int64(1), nil
			}
			return int64(0), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot convert %q to integer", v)
			}
			return n, nil
		}
		return nil, fmt.Errorf("cannot convert %T to integer", raw)

	case models.FieldTypeFloat:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("cannot convert %q to float", v)
			}
			return f, nil
		}
		return nil, fmt.Errorf("cannot convert %T to float", raw)

	case models.FieldTypeBoolean:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case float64:
			return v != 0, nil
		case int:
			return v != 0, nil
		case int64:
			return v != 0, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "1", "true", "yes", "y":
				return true, nil
			}
			return false, nil
		}
		return nil, fmt.Errorf("cannot convert %T to boolean", raw)

	case models.FieldTypeDate:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("cannot convert %T to date", raw)
		}
		if t, err := ParseRemoteTime(s); err == nil {
			return t.Truncate(24 * time.Hour), nil
		}
		// Fall back to the leading date portion of a longer string.
		if len(s) >= len(dateLayout) {
			if t, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("cannot parse %q as date", s)

	case models.FieldTypeDateTime:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("cannot convert %T to datetime", raw)
		}
		t, err := ParseRemoteTime(s)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as datetime", s)
		}
		return t, nil
	}

	return nil, fmt.Errorf("unknown field type %q", fieldType)
}

// ParseRemoteTime parses Brevo timestamps. Remote values are UTC; the
// offset marker is stripped and the wall-clock value kept, so stored
// values are timezone-naive and render the remote UTC clock as-is.
func ParseRemoteTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "T") {
		return time.Parse(dateLayout, s)
	}

	if i := strings.IndexAny(s, "+Z"); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return time.Parse(dateTimeLayout, s)
}

// normalizeForCompare renders a value as a canonical string so that the
// same logical value survives a round trip through different Go types
// (JSON float64 vs stored int64, time.Time vs formatted string).
func normalizeForCompare(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(dateTimeLayout)
	case []string:
		return strings.Join(t, ", ")
	}
	return fmt.Sprintf("%v", v)
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case time.Time:
		return t.Format(dateTimeLayout)
	}
	return fmt.Sprintf("%v", v)
}
