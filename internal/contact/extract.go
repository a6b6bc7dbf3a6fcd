// Package contact detects contact information mentioned in chat text.
package contact

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?1?[\s.\-]?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Info holds contact details detected in text. Empty fields mean nothing
// was found.
type Info struct {
	Email string
	Phone string
}

// Empty reports whether no contact info was detected.
func (i Info) Empty() bool {
	return i.Email == "" && i.Phone == ""
}

// Extract scans text for the first email and phone number mentioned. The
// phone match is normalized to +1XXXXXXXXXX when it carries a North American
// digit count; otherwise the raw match is returned unchanged. Normalization
// is best effort, not validation. Pure function, no I/O.
func Extract(text string) Info {
	info := Info{}

	if m := emailPattern.FindString(text); m != "" {
		info.Email = m
	}
	if m := phonePattern.FindString(text); m != "" {
		info.Phone = normalizePhone(m)
	}

	return info
}

func normalizePhone(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	switch {
	case len(digits) == 10:
		return "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	default:
		return raw
	}
}
