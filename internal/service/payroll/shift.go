package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

// ShiftDay is one reconstructed day measured against the shift window.
type ShiftDay struct {
	WorkDay
	OvertimeMinutes    int
	LateMinutes        int
	EarlyExitMinutes   int
	ExcessBreakMinutes int
}

// DelayMinutes is the billed delay: late arrival plus early exit.
func (d ShiftDay) DelayMinutes() int {
	return d.LateMinutes + d.EarlyExitMinutes
}

// ShiftBreakdown is the shift regime result.
type ShiftBreakdown struct {
	Days                    []ShiftDay
	TotalDays               int
	TotalWorkingMinutes     int
	TotalOvertimeMinutes    int
	TotalDelayMinutes       int
	TotalBreakMinutes       int
	TotalExcessBreakMinutes int
	AllowedBreakMinutes     int
	OvertimeValue           decimal.Decimal
	DelayDeduction          decimal.Decimal
	BreakDeduction          decimal.Decimal
	Shift                   *payroll.Shift
}

func (b ShiftBreakdown) Additions() decimal.Decimal {
	return b.OvertimeValue
}

func (b ShiftBreakdown) Deductions() decimal.Decimal {
	return b.DelayDeduction.Add(b.BreakDeduction)
}

func emptyShiftBreakdown() ShiftBreakdown {
	return ShiftBreakdown{
		Days:           []ShiftDay{},
		OvertimeValue:  decimal.Zero,
		DelayDeduction: decimal.Zero,
		BreakDeduction: decimal.Zero,
	}
}

// calculateShift measures every attended day against the shift window. The
// delay minute rate prices both delay and excess break minutes. A missing
// shift or job title yields a zero result and an explanatory note.
func calculateShift(jobTitle *payroll.JobTitle, shift *payroll.Shift, records []payroll.AttendanceRecord) (ShiftBreakdown, string) {
	b := emptyShiftBreakdown()
	if jobTitle == nil {
		return b, "shift: no job title configured"
	}
	if shift == nil {
		return b, "shift: no shift assigned"
	}
	b.Shift = shift
	b.AllowedBreakMinutes = jobTitle.AllowedBreakMinutes()
	if len(records) == 0 {
		return b, "shift: no attendance records for the period"
	}

	start := clock.Minutes(shift.StartTime)
	end := clock.Minutes(shift.EndTime)
	shiftMinutes := clock.Duration(start, end)

	for _, wd := range BuildTimesheet(records) {
		day := ShiftDay{WorkDay: wd}
		b.TotalDays++
		if wd.HasWork() {
			if wd.FirstCheckIn != nil {
				day.LateMinutes = max(0, *wd.FirstCheckIn-start-shift.AllowedDelayMinutes)
			}
			if wd.LastCheckOut != nil {
				day.EarlyExitMinutes = max(0, end-*wd.LastCheckOut-shift.AllowedExitMinutes)
			}
			day.OvertimeMinutes = max(0, wd.WorkedMinutes-shiftMinutes)
			day.ExcessBreakMinutes = max(0, wd.BreakMinutes-b.AllowedBreakMinutes)

			b.TotalWorkingMinutes += wd.WorkedMinutes
			b.TotalOvertimeMinutes += day.OvertimeMinutes
			b.TotalDelayMinutes += day.DelayMinutes()
			b.TotalBreakMinutes += wd.BreakMinutes
			b.TotalExcessBreakMinutes += day.ExcessBreakMinutes
		}
		b.Days = append(b.Days, day)
	}

	b.OvertimeValue = decimal.NewFromInt(int64(b.TotalOvertimeMinutes)).Mul(jobTitle.OvertimeHourRate).Div(sixty)
	b.DelayDeduction = decimal.NewFromInt(int64(b.TotalDelayMinutes)).Mul(jobTitle.DelayMinuteRate)
	b.BreakDeduction = decimal.NewFromInt(int64(b.TotalExcessBreakMinutes)).Mul(jobTitle.DelayMinuteRate)

	return b, fmt.Sprintf("shift: %d days, %d working minutes, %d overtime minutes, %d delay minutes, %d excess break minutes",
		b.TotalDays, b.TotalWorkingMinutes, b.TotalOvertimeMinutes, b.TotalDelayMinutes, b.TotalExcessBreakMinutes)
}
