package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

// dateLayouts are tried in order; DateLayout goes first so that Date is
// idempotent on its own output.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"2006/1/2",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

var reTime = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// Date normalizes a date string to YYYY-MM-DD.
func Date(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		return t.UTC().Format(DateLayout), nil
	}

	return "", fmt.Errorf("%w: %q, expected a valid date string", ErrInvalidDate, s)
}

// Time normalizes a 24h clock time to HH:MM. The hour may be given with one
// digit, the minute must have two.
func Time(s string) (string, error) {
	s = strings.TrimSpace(s)

	m := reTime.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q, expected HH:MM format", ErrInvalidTime, s)
	}

	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}

	return hour + ":" + m[2], nil
}
