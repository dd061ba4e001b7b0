// Package clock converts between wall-clock times of day and minute offsets.
//
// All payroll arithmetic works on minutes since midnight. Timestamps never
// cross midnight within a single work period.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const MinutesPerDay = 24 * 60

var ErrInvalidClock = errors.New("invalid HH:MM value")

var sixty = decimal.NewFromInt(60)

// Minutes returns the minute of day for t, in [0, 1439].
func Minutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// MinutesPtr is Minutes for an optional time.
func MinutesPtr(t *time.Time) *int {
	if t == nil {
		return nil
	}
	m := Minutes(*t)
	return &m
}

// Format renders a minute of day as "HH:MM". A nil input yields nil so an
// absent timestamp is never confused with midnight.
func Format(m *int) *string {
	if m == nil {
		return nil
	}
	s := fmt.Sprintf("%02d:%02d", *m/60, *m%60)
	return &s
}

// Duration returns out - in, or zero when the interval is inverted.
func Duration(in, out int) int {
	if out < in {
		return 0
	}
	return out - in
}

// Hours converts minutes to fractional hours without rounding.
func Hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty)
}

// ParseHHMM parses "HH:MM" (or "HH:MM:SS") into a minute of day.
func ParseHHMM(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

// MinutesOrZero is ParseHHMM that treats malformed input as zero.
func MinutesOrZero(s string) int {
	m, err := ParseHHMM(s)
	if err != nil {
		return 0
	}
	return m
}

// At builds a time on the given date at minute-of-day m.
func At(date time.Time, m int) time.Time {
	y, mo, d := date.Date()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, date.Location())
}
