package contact

import (
	"fmt"
	"strconv"
	"time"
)

// The typed schema columns a mapping may address by name. Every other
// local field name resolves to the Extra side table. The registry is an
// explicit switch on purpose: field access stays greppable and no
// reflection is involved.

// FieldValue returns the current value of a local field and whether it
// carries a value at all. Empty strings count as no value, matching the
// no-value rule of the attribute mapper.
func (c *Contact) FieldValue(name string) (interface{}, bool) {
	switch name {
	case "name":
		return c.Name, c.Name != ""
	case "email":
		return c.Email, c.Email != ""
	case "phone":
		return c.Phone, c.Phone != ""
	case "mobile":
		return c.Mobile, c.Mobile != ""
	case "street":
		return c.Street, c.Street != ""
	case "street2":
		return c.Street2, c.Street2 != ""
	case "city":
		return c.City, c.City != ""
	case "zip":
		return c.Zip, c.Zip != ""
	case "state":
		return c.State, c.State != ""
	case "country":
		return c.Country, c.Country != ""
	case "website":
		return c.Website, c.Website != ""
	case "company_name":
		return c.CompanyName, c.CompanyName != ""
	case "job_position":
		return c.JobPosition, c.JobPosition != ""
	case "comment":
		return c.Comment, c.Comment != ""
	}

	v, ok := c.Extra[name]
	if !ok || v == nil || v == "" {
		return nil, false
	}
	return v, true
}

// SetFieldValue writes a coerced value into a local field. Values for
// schema columns are rendered as strings; everything else keeps its
// coerced type in the Extra side table.
func (c *Contact) SetFieldValue(name string, value interface{}) {
	switch name {
	case "name":
		c.Name = asString(value)
	case "email":
		c.Email = asString(value)
	case "phone":
		c.Phone = asString(value)
	case "mobile":
		c.Mobile = asString(value)
	case "street":
		c.Street = asString(value)
	case "street2":
		c.Street2 = asString(value)
	case "city":
		c.City = asString(value)
	case "zip":
		c.Zip = asString(value)
	case "state":
		c.State = asString(value)
	case "country":
		c.Country = asString(value)
	case "website":
		c.Website = asString(value)
	case "company_name":
		c.CompanyName = asString(value)
	case "job_position":
		c.JobPosition = asString(value)
	case "comment":
		c.Comment = asString(value)
	default:
		if c.Extra == nil {
			c.Extra = make(map[string]interface{})
		}
		c.Extra[name] = value
	}
}

// Snapshot collects the current values of the given local fields, for
// feeding the mapper's change gate and the outbound serializer.
func (c *Contact) Snapshot(fields []string) map[string]interface{} {
	values := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		if v, ok := c.FieldValue(f); ok {
			values[f] = v
		}
	}
	return values
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("%v", v)
}
