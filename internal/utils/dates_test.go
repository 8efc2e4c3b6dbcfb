package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain date", "2025-01-15", "2025-01-15", true},
		{"rfc3339", "2025-01-15T10:30:00Z", "2025-01-15", true},
		{"rfc3339 with offset", "2025-01-15T23:30:00+02:00", "2025-01-15", true},
		{"datetime no zone", "2025-01-15T10:30:00", "2025-01-15", true},
		{"mysql datetime", "2025-01-15 10:30:00", "2025-01-15", true},
		{"padded", "  2025-01-15  ", "2025-01-15", true},
		{"empty maps to null", "", "", true},
		{"blank maps to null", "   ", "", true},
		{"garbage", "not-a-date", "", false},
		{"us format rejected", "01/15/2025", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeDate(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
