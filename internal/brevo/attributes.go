package brevo

// KnownAttributes is the catalog of standard contact attributes every
// Brevo account ships with. FetchAttributes adds account-specific
// custom attributes on top of these.
func KnownAttributes() []Attribute {
	return []Attribute{
		// Personal information
		{Name: "FNAME", Type: "text", Category: "personal"},
		{Name: "LNAME", Type: "text", Category: "personal"},
		{Name: "BIRTHDAY", Type: "date", Category: "personal"},
		{Name: "AGE", Type: "number", Category: "personal"},
		{Name: "GENDER", Type: "text", Category: "personal"},
		{Name: "TITLE", Type: "text", Category: "personal"},
		{Name: "FIRSTNAME", Type: "text", Category: "personal"},
		{Name: "LASTNAME", Type: "text", Category: "personal"},
		{Name: "MIDDLENAME", Type: "text", Category: "personal"},
		{Name: "NICKNAME", Type: "text", Category: "personal"},

		// Contact information
		{Name: "EMAIL", Type: "text", Category: "contact"},
		{Name: "SMS", Type: "text", Category: "contact"},
		{Name: "PHONE", Type: "text", Category: "contact"},
		{Name: "MOBILE", Type: "text", Category: "contact"},
		{Name: "FAX", Type: "text", Category: "contact"},
		{Name: "WEBSITE", Type: "text", Category: "contact"},
		{Name: "SKYPE", Type: "text", Category: "contact"},
		{Name: "LINKEDIN", Type: "text", Category: "contact"},
		{Name: "TWITTER", Type: "text", Category: "contact"},
		{Name: "FACEBOOK", Type: "text", Category: "contact"},
		{Name: "INSTAGRAM", Type: "text", Category: "contact"},
		{Name: "YOUTUBE", Type: "text", Category: "contact"},
		{Name: "TIKTOK", Type: "text", Category: "contact"},

		// Address information
		{Name: "ADDRESS", Type: "text", Category: "address"},
		{Name: "STREET", Type: "text", Category: "address"},
		{Name: "STREET2", Type: "text", Category: "address"},
		{Name: "CITY", Type: "text", Category: "address"},
		{Name: "ZIP", Type: "text", Category: "address"},
		{Name: "POSTAL_CODE", Type: "text", Category: "address"},
		{Name: "COUNTRY", Type: "text", Category: "address"},
		{Name: "STATE", Type: "text", Category: "address"},
		{Name: "PROVINCE", Type: "text", Category: "address"},
		{Name: "REGION", Type: "text", Category: "address"},
		{Name: "TIMEZONE", Type: "text", Category: "address"},
		{Name: "LATITUDE", Type: "number", Category: "address"},
		{Name: "LONGITUDE", Type: "number", Category: "address"},

		// Professional information
		{Name: "COMPANY", Type: "text", Category: "professional"},
		{Name: "COMPANY_NAME", Type: "text", Category: "professional"},
		{Name: "JOB_TITLE", Type: "text", Category: "professional"},
		{Name: "POSITION", Type: "text", Category: "professional"},
		{Name: "DEPARTMENT", Type: "text", Category: "professional"},
		{Name: "INDUSTRY", Type: "text", Category: "professional"},

		// Marketing
		{Name: "TAGS", Type: "text", Category: "marketing"},
		{Name: "CATEGORY", Type: "text", Category: "marketing"},
		{Name: "SOURCE", Type: "text", Category: "marketing"},
		{Name: "OPT_IN", Type: "boolean", Category: "marketing"},
		{Name: "DOUBLE_OPT_IN", Type: "boolean", Category: "marketing"},
		{Name: "EMAIL_CONSENT", Type: "boolean", Category: "marketing"},
	}
}
