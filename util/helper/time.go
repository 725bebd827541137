package helper_util

import (
	"time"
)

// expiryLayout is RFC 3339 with a numeric UTC offset. The policy store's
// condition evaluator is fed the exact string, so the "+00:00" suffix form
// is part of the wire contract and must not collapse to "Z".
const expiryLayout = "2006-01-02T15:04:05-07:00"

// FormatExpiry renders an absolute instant in UTC for embedding in a
// condition expression.
func FormatExpiry(t time.Time) string {
	return t.UTC().Format(expiryLayout)
}

// ParseTime parses an RFC 3339 timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err
}
