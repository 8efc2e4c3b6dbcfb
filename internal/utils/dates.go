package utils

import (
	"strings"
	"time"
)

// dateLayouts are the input formats accepted by NormalizeDate, tried in
// order.  Clients send either a plain date from an <input type="date">
// field or a full RFC 3339 timestamp from a date picker.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeDate converts a client-supplied date string to the plain
// YYYY-MM-DD form stored in DATE columns.  Time of day and timezone are
// discarded.  An empty input yields an empty string (stored as NULL);
// an unparseable input reports ok=false so handlers can reject it.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
