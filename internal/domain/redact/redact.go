// Package redact keeps account identifiers out of log files.
package redact

import "strings"

const (
	visiblePrefix = 2
	marker        = "***"
)

// MaskEmail redacts the local part of email down to its first two runes
// plus "***", leaving the domain intact: "jo@example.com" becomes
// "jo***@example.com". Input without an "@" or with an empty local part
// is returned unchanged; callers must not treat the result as proof the
// input was well-formed.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return email
	}
	prefix := []rune(email[:at])
	if len(prefix) > visiblePrefix {
		prefix = prefix[:visiblePrefix]
	}
	return string(prefix) + marker + email[at:]
}
