package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

type HourlyDay struct {
	Date          time.Time
	Periods       []WorkPeriod
	Hours         decimal.Decimal
	AmountByHours decimal.Decimal
	AmountByDay   decimal.Decimal
}

// HourlyBreakdown is the hourly regime result. The employee is paid the
// larger of the by-hours and by-days totals.
type HourlyBreakdown struct {
	Days               []HourlyDay
	TotalDays          int
	TotalHours         decimal.Decimal
	HourlyRate         decimal.Decimal
	DailyRate          decimal.Decimal
	TotalAmountByHours decimal.Decimal
	TotalAmountByDays  decimal.Decimal
}

func (b HourlyBreakdown) Additions() decimal.Decimal {
	return decimal.Max(b.TotalAmountByHours, b.TotalAmountByDays)
}

func emptyHourlyBreakdown() HourlyBreakdown {
	return HourlyBreakdown{
		Days:               []HourlyDay{},
		TotalHours:         decimal.Zero,
		HourlyRate:         decimal.Zero,
		DailyRate:          decimal.Zero,
		TotalAmountByHours: decimal.Zero,
		TotalAmountByDays:  decimal.Zero,
	}
}

// calculateHourly prices every worked day both by the hour and as a flat
// day. Every date with at least one row counts as a worked day.
func calculateHourly(profession *payroll.Profession, records []payroll.AttendanceRecord) (HourlyBreakdown, string) {
	b := emptyHourlyBreakdown()
	if profession == nil {
		return b, "hourly: no profession configured"
	}
	b.HourlyRate = profession.HourlyRate
	b.DailyRate = profession.DailyRate

	for _, wd := range BuildTimesheet(records) {
		day := HourlyDay{Date: wd.Date, Periods: wd.Periods, Hours: decimal.Zero, AmountByDay: profession.DailyRate}
		for _, p := range wd.Periods {
			day.Hours = day.Hours.Add(clock.Hours(p.Minutes))
		}
		day.AmountByHours = day.Hours.Mul(profession.HourlyRate)

		b.TotalDays++
		b.TotalHours = b.TotalHours.Add(day.Hours)
		b.TotalAmountByHours = b.TotalAmountByHours.Add(day.AmountByHours)
		b.Days = append(b.Days, day)
	}
	b.TotalAmountByDays = profession.DailyRate.Mul(decimal.NewFromInt(int64(b.TotalDays)))

	return b, fmt.Sprintf("hourly: %d days, %s hours, by hours %s, by days %s",
		b.TotalDays, FormatAmount(b.TotalHours.Round(2)), FormatAmount(b.TotalAmountByHours), FormatAmount(b.TotalAmountByDays))
}
