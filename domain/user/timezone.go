package user

import "strings"

// prefixZones maps country calling prefixes to a representative IANA zone.
// This is a best-effort heuristic: several prefixes span many zones ("+1"
// covers the whole North American Numbering Plan), so the result only seeds
// the default and users correct it with the timezone command.
var prefixZones = []struct {
	prefix string
	zone   string
}{
	{"+972", "Asia/Jerusalem"},
	{"+1", "America/New_York"},
	{"+44", "Europe/London"},
	{"+49", "Europe/Berlin"},
	{"+33", "Europe/Paris"},
	{"+39", "Europe/Rome"},
	{"+91", "Asia/Kolkata"},
}

// GuessTimezone derives a default IANA zone from a phone-like identifier.
// Provider channel prefixes such as "whatsapp:" are stripped first. Unknown
// prefixes fall back to UTC.
func GuessTimezone(phone string) string {
	phone = strings.TrimSpace(phone)
	if i := strings.IndexByte(phone, ':'); i >= 0 {
		phone = phone[i+1:]
	}
	for _, entry := range prefixZones {
		if strings.HasPrefix(phone, entry.prefix) {
			return entry.zone
		}
	}
	return "UTC"
}
