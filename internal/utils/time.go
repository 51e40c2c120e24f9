package utils

import (
	"time"

	"guestlist/internal/domain"
)

var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseEventTime accepts the event time formats clients send: RFC 3339 or the
// plain "2006-01-02 15:04:05" layout.
func ParseEventTime(raw string) (time.Time, error) {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.Validationf("unrecognized time format %q", raw)
}
