package mapping

import (
	"testing"
	"time"

	common_models "brevo-connector/internal/common/models"

	"go.uber.org/zap"
)

func pullMapping(attr, field string, ft common_models.FieldType) FieldMapping {
	return FieldMapping{
		BrevoAttribute: attr,
		LocalField:     field,
		FieldType:      ft,
		Direction:      common_models.DirectionBoth,
		Active:         true,
	}
}

func TestFromRemoteCoercion(t *testing.T) {
	mapper := NewMapper(zap.NewNop())

	tests := []struct {
		name     string
		mapping  FieldMapping
		attrs    map[string]interface{}
		want     interface{}
		wantSkip bool
		wantWarn bool
	}{
		{
			name:    "text passes through",
			mapping: pullMapping("CITY", "city", common_models.FieldTypeText),
			attrs:   map[string]interface{}{"CITY": "Berlin"},
			want:    "Berlin",
		},
		{
			name:    "numeric text is stringified",
			mapping: pullMapping("ZIP", "zip", common_models.FieldTypeText),
			attrs:   map[string]interface{}{"ZIP": float64(10115)},
			want:    "10115",
		},
		{
			name:    "integer from json number",
			mapping: pullMapping("AGE", "age", common_models.FieldTypeInteger),
			attrs:   map[string]interface{}{"AGE": float64(42)},
			want:    int64(42),
		},
		{
			name:    "integer from string",
			mapping: pullMapping("AGE", "age", common_models.FieldTypeInteger),
			attrs:   map[string]interface{}{"AGE": " 42 "},
			want:    int64(42),
		},
		{
			name:     "unparseable integer is skipped with warning",
			mapping:  pullMapping("AGE", "age", common_models.FieldTypeInteger),
			attrs:    map[string]interface{}{"AGE": "forty-two"},
			wantSkip: true,
			wantWarn: true,
		},
		{
			name:    "float from string",
			mapping: pullMapping("LATITUDE", "latitude", common_models.FieldTypeFloat),
			attrs:   map[string]interface{}{"LATITUDE": "52.52"},
			want:    52.52,
		},
		{
			name:    "boolean true from yes",
			mapping: pullMapping("OPT_IN", "opt_in", common_models.FieldTypeBoolean),
			attrs:   map[string]interface{}{"OPT_IN": "Yes"},
			want:    true,
		},
		{
			name:    "boolean false from arbitrary string",
			mapping: pullMapping("OPT_IN", "opt_in", common_models.FieldTypeBoolean),
			attrs:   map[string]interface{}{"OPT_IN": "nope"},
			want:    false,
		},
		{
			name:    "boolean from nonzero number",
			mapping: pullMapping("OPT_IN", "opt_in", common_models.FieldTypeBoolean),
			attrs:   map[string]interface{}{"OPT_IN": float64(2)},
			want:    true,
		},
		{
			name:    "date from plain date string",
			mapping: pullMapping("BIRTHDAY", "birthday", common_models.FieldTypeDate),
			attrs:   map[string]interface{}{"BIRTHDAY": "1990-06-15"},
			want:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "date falls back to leading date portion",
			mapping: pullMapping("BIRTHDAY", "birthday", common_models.FieldTypeDate),
			attrs:   map[string]interface{}{"BIRTHDAY": "1990-06-15 around noon"},
			want:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "datetime strips utc marker keeps wall clock",
			mapping: pullMapping("LAST_SEEN", "last_seen", common_models.FieldTypeDateTime),
			attrs:   map[string]interface{}{"LAST_SEEN": "2024-03-01T08:30:00Z"},
			want:    time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			name:    "datetime strips offset keeps wall clock",
			mapping: pullMapping("LAST_SEEN", "last_seen", common_models.FieldTypeDateTime),
			attrs:   map[string]interface{}{"LAST_SEEN": "2024-03-01T08:30:00+02:00"},
			want:    time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			name:    "selection passes through unvalidated",
			mapping: pullMapping("GENDER", "gender", common_models.FieldTypeSelection),
			attrs:   map[string]interface{}{"GENDER": "unlisted-option"},
			want:    "unlisted-option",
		},
		{
			name:     "absent attribute never writes",
			mapping:  pullMapping("CITY", "city", common_models.FieldTypeText),
			attrs:    map[string]interface{}{},
			wantSkip: true,
		},
		{
			name:     "null attribute never writes",
			mapping:  pullMapping("CITY", "city", common_models.FieldTypeText),
			attrs:    map[string]interface{}{"CITY": nil},
			wantSkip: true,
		},
		{
			name:     "empty string never writes",
			mapping:  pullMapping("CITY", "city", common_models.FieldTypeText),
			attrs:    map[string]interface{}{"CITY": ""},
			wantSkip: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates, warnings := mapper.FromRemote(tt.attrs, []FieldMapping{tt.mapping}, nil)

			got, ok := updates[tt.mapping.LocalField]
			if tt.wantSkip {
				if ok {
					t.Errorf("expected no update, got %v", got)
				}
			} else {
				if !ok {
					t.Fatalf("expected update for %s, got none", tt.mapping.LocalField)
				}
				if wantTime, isTime := tt.want.(time.Time); isTime {
					gotTime, isGotTime := got.(time.Time)
					if !isGotTime || !gotTime.Equal(wantTime) {
						t.Errorf("got %v, want %v", got, wantTime)
					}
				} else if got != tt.want {
					t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
				}
			}

			if tt.wantWarn && len(warnings) == 0 {
				t.Error("expected a warning, got none")
			}
			if !tt.wantWarn && len(warnings) > 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}
		})
	}
}

func TestFromRemoteChangeGate(t *testing.T) {
	mapper := NewMapper(zap.NewNop())
	mappings := []FieldMapping{
		pullMapping("CITY", "city", common_models.FieldTypeText),
		pullMapping("AGE", "age", common_models.FieldTypeInteger),
	}

	attrs := map[string]interface{}{
		"CITY": "Berlin",
		"AGE":  float64(42),
	}
	existing := map[string]interface{}{
		"city": "Berlin",
		"age":  int64(41),
	}

	updates, warnings := mapper.FromRemote(attrs, mappings, existing)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if _, ok := updates["city"]; ok {
		t.Error("unchanged city should be omitted")
	}
	if got, ok := updates["age"]; !ok || got != int64(42) {
		t.Errorf("changed age should be written, got %v", got)
	}

	// Applying the same bag again against the updated state must be a no-op.
	existing["age"] = int64(42)
	again, _ := mapper.FromRemote(attrs, mappings, existing)
	if len(again) != 0 {
		t.Errorf("second application should produce no updates, got %v", again)
	}
}

func TestFromRemoteIgnoresUnmappedAndDisabled(t *testing.T) {
	mapper := NewMapper(zap.NewNop())

	inactive := pullMapping("CITY", "city", common_models.FieldTypeText)
	inactive.Active = false
	pushOnly := pullMapping("ZIP", "zip", common_models.FieldTypeText)
	pushOnly.Direction = common_models.DirectionPush

	attrs := map[string]interface{}{
		"CITY":    "Berlin",
		"ZIP":     "10115",
		"UNKNOWN": "ignored",
	}

	updates, _ := mapper.FromRemote(attrs, []FieldMapping{inactive, pushOnly}, nil)
	if len(updates) != 0 {
		t.Errorf("expected no updates, got %v", updates)
	}
}

func TestToRemoteSerialization(t *testing.T) {
	mapper := NewMapper(zap.NewNop())

	mappings := []FieldMapping{
		pullMapping("CITY", "city", common_models.FieldTypeText),
		pullMapping("BIRTHDAY", "birthday", common_models.FieldTypeDate),
		pullMapping("LAST_SEEN", "last_seen", common_models.FieldTypeDateTime),
		pullMapping("TAGS", "lists", common_models.FieldTypeMultiRef),
		pullMapping("COUNTRY", "country", common_models.FieldTypeReference),
		pullMapping("AGE", "age", common_models.FieldTypeInteger),
		pullMapping("EMPTY", "empty_field", common_models.FieldTypeText),
	}

	values := map[string]interface{}{
		"city":        "Berlin",
		"birthday":    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		"last_seen":   time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC),
		"lists":       []string{"Newsletter", "Customers"},
		"country":     "Germany",
		"age":         int64(42),
		"empty_field": "",
	}

	attrs := mapper.ToRemote(values, mappings)

	want := map[string]interface{}{
		"CITY":      "Berlin",
		"BIRTHDAY":  "1990-06-15",
		"LAST_SEEN": "2024-03-01T08:30:00",
		"TAGS":      "Newsletter, Customers",
		"COUNTRY":   "Germany",
		"AGE":       int64(42),
	}

	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("attr %s: got %v, want %v", k, attrs[k], v)
		}
	}
	if _, ok := attrs["EMPTY"]; ok {
		t.Error("empty values must not be sent")
	}
}

func TestScalarRoundTrip(t *testing.T) {
	mapper := NewMapper(zap.NewNop())
	mappings := []FieldMapping{
		pullMapping("CITY", "city", common_models.FieldTypeText),
		pullMapping("AGE", "age", common_models.FieldTypeInteger),
		pullMapping("OPT_IN", "opt_in", common_models.FieldTypeBoolean),
	}

	attrs := map[string]interface{}{
		"CITY":   "Berlin",
		"AGE":    float64(42),
		"OPT_IN": true,
	}

	updates, _ := mapper.FromRemote(attrs, mappings, nil)
	back := mapper.ToRemote(updates, mappings)

	if back["CITY"] != "Berlin" || back["AGE"] != int64(42) || back["OPT_IN"] != true {
		t.Errorf("round trip drifted: %v", back)
	}
}

func TestParseRemoteTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-03-01T08:30:00Z", want: time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)},
		{in: "2024-03-01T08:30:00+02:00", want: time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)},
		{in: "2024-03-01T08:30:00.123456Z", want: time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)},
		{in: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "not a time", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseRemoteTime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRemoteTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(tt.want) {
			t.Errorf("ParseRemoteTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
