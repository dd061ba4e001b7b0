package payroll

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/clock"
)

const dateLayout = "2006-01-02"

// WorkPeriod is one check-in/check-out pair in minutes of day.
type WorkPeriod struct {
	Start   int
	End     int
	Minutes int
}

// WorkDay is the reconstructed attendance of one calendar date.
type WorkDay struct {
	Date          time.Time
	Periods       []WorkPeriod
	WorkedMinutes int
	BreakMinutes  int
	FirstCheckIn  *int
	LastCheckOut  *int
}

// HasWork reports whether the day has at least one valid work period.
func (d WorkDay) HasWork() bool {
	return len(d.Periods) > 0
}

// BuildTimesheet groups raw attendance rows into days ordered by date. Rows
// inside a day are ordered by check-in; breaks are the positive gaps between
// one row's check-out and the next row's check-in.
func BuildTimesheet(records []payroll.AttendanceRecord) []WorkDay {
	byDate := make(map[string][]payroll.AttendanceRecord)
	var keys []string
	for _, r := range records {
		key := r.Date.Format(dateLayout)
		if _, ok := byDate[key]; !ok {
			keys = append(keys, key)
		}
		byDate[key] = append(byDate[key], r)
	}
	sort.Strings(keys)

	days := make([]WorkDay, 0, len(keys))
	for _, key := range keys {
		days = append(days, buildWorkDay(byDate[key]))
	}
	return days
}

func buildWorkDay(rows []payroll.AttendanceRecord) WorkDay {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].CheckIn, rows[j].CheckIn
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return clock.Minutes(*a) < clock.Minutes(*b)
	})

	day := WorkDay{Date: truncateDate(rows[0].Date)}
	for i, row := range rows {
		in := clock.MinutesPtr(row.CheckIn)
		out := clock.MinutesPtr(row.CheckOut)

		if in != nil && (day.FirstCheckIn == nil || *in < *day.FirstCheckIn) {
			day.FirstCheckIn = in
		}
		if out != nil && (day.LastCheckOut == nil || *out > *day.LastCheckOut) {
			day.LastCheckOut = out
		}

		if in != nil && out != nil && *out >= *in {
			p := WorkPeriod{Start: *in, End: *out, Minutes: clock.Duration(*in, *out)}
			day.Periods = append(day.Periods, p)
			day.WorkedMinutes += p.Minutes
		}

		if i+1 < len(rows) && out != nil && rows[i+1].CheckIn != nil {
			if gap := clock.Minutes(*rows[i+1].CheckIn) - *out; gap > 0 {
				day.BreakMinutes += gap
			}
		}
	}
	return day
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
