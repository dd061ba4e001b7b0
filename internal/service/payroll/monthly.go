package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// monthDays is the fixed divisor for the daily rate, regardless of the
// calendar length of the month.
const monthDays = 30

var two = decimal.NewFromInt(2)

// MonthlyBreakdown is the monthly regime result. UnexcusedAbsences includes
// MissingDays.
type MonthlyBreakdown struct {
	FullDays          int
	HalfDays          int
	OnlineDays        int
	ExcusedAbsences   int
	UnexcusedAbsences int
	MissingDays       int
	DailyRate         decimal.Decimal
	TotalAmount       decimal.Decimal
	TotalDeductions   decimal.Decimal
}

func (b MonthlyBreakdown) NetAmount() decimal.Decimal {
	return b.TotalAmount.Sub(b.TotalDeductions)
}

// calculateMonthly pays salary/30 per full day, half of it for half and
// online days, and deducts one daily rate per excused absence and two per
// unexcused or missing day.
func calculateMonthly(salary decimal.Decimal, records []payroll.MonthlyAttendanceRecord) (MonthlyBreakdown, error) {
	b := MonthlyBreakdown{
		DailyRate:       salary.Div(decimal.NewFromInt(monthDays)),
		TotalAmount:     decimal.Zero,
		TotalDeductions: decimal.Zero,
	}
	halfRate := b.DailyRate.Div(two)
	penalty := b.DailyRate.Mul(two)

	for _, r := range records {
		switch r.Type {
		case payroll.AttendanceFullDay:
			b.FullDays++
			b.TotalAmount = b.TotalAmount.Add(b.DailyRate)
		case payroll.AttendanceHalfDay:
			b.HalfDays++
			b.TotalAmount = b.TotalAmount.Add(halfRate)
		case payroll.AttendanceOnlineDay:
			b.OnlineDays++
			b.TotalAmount = b.TotalAmount.Add(halfRate)
		case payroll.AttendanceAbsent:
			if r.IsExcused {
				b.ExcusedAbsences++
				b.TotalDeductions = b.TotalDeductions.Add(b.DailyRate)
			} else {
				b.UnexcusedAbsences++
				b.TotalDeductions = b.TotalDeductions.Add(penalty)
			}
		default:
			return MonthlyBreakdown{}, fmt.Errorf("%w: %q on %s", payroll.ErrUnknownAttendance, r.Type, r.Date.Format(dateLayout))
		}
	}

	if missing := monthDays - len(records); missing > 0 {
		b.MissingDays = missing
		b.UnexcusedAbsences += missing
		b.TotalDeductions = b.TotalDeductions.Add(penalty.Mul(decimal.NewFromInt(int64(missing))))
	}

	return b, nil
}

func (b MonthlyBreakdown) note() string {
	return fmt.Sprintf("monthly: full %d, half %d, online %d, excused %d, unexcused %d (missing %d)",
		b.FullDays, b.HalfDays, b.OnlineDays, b.ExcusedAbsences, b.UnexcusedAbsences, b.MissingDays)
}
