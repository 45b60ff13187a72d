package services

import "regexp"

var (
	ipPattern       = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	passwordPattern = regexp.MustCompile(`password\s*=\s*\S+`)
	pwdPattern      = regexp.MustCompile(`pwd\s*=\s*\S+`)
)

// SanitizeLog redacts PII-shaped substrings from a raw log: dotted-quad IPs,
// email addresses, and password/pwd key=value pairs. Pattern-based only;
// false negatives are accepted. The redaction tokens don't themselves match
// any of the patterns, so sanitizing twice is a no-op.
func SanitizeLog(raw string) string {
	out := ipPattern.ReplaceAllString(raw, "[IP]")
	out = emailPattern.ReplaceAllString(out, "[EMAIL]")
	out = passwordPattern.ReplaceAllString(out, "password=[HIDDEN]")
	out = pwdPattern.ReplaceAllString(out, "pwd=[HIDDEN]")
	return out
}
