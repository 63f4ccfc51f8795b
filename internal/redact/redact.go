// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. This prevents the accidental leakage of
// credentials, connection strings, and tokens that might be included in
// error messages.
package redact

import "regexp"

// Placeholder inserted in place of redacted content.
const RedactionPlaceholder = "[REDACTED]"

// Precompiled redaction patterns.
var (
	// Database connection strings with embedded credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`)

	// password=..., pwd: ... style fragments
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?|['"]?[=:])[^'"&\s]{3,}`)

	// JWT tokens (three base64url segments starting with eyJ)
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	patterns = []*regexp.Regexp{dbConnRegex, passwordRegex, jwtTokenRegex}
)

// String redacts sensitive fragments in s.
func String(s string) string {
	for _, re := range patterns {
		s = re.ReplaceAllString(s, RedactionPlaceholder)
	}
	return s
}

// Error redacts sensitive fragments in an error's message.
// Returns an empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
