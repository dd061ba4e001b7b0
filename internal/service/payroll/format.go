package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

const timestampLayout = time.RFC3339

// FormatAmount renders a decimal in canonical form. decimal.NewFromString on
// the output yields a value equal to d.
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatClock(m int) string {
	return *clock.Format(&m)
}

func toEmployeeResponse(r EmployeeResult, calculatedAt time.Time) payroll.EmployeePayrollResponse {
	resp := payroll.EmployeePayrollResponse{
		EmployeeID:       r.Employee.ID,
		EmployeeName:     r.Employee.Name,
		FingerprintID:    r.Employee.FingerprintID,
		Position:         r.Employee.PositionName(),
		SystemType:       r.Regime,
		BasicSalary:      FormatAmount(r.Employee.BasicSalary),
		Allowances:       FormatAmount(r.Employee.Allowances),
		Additions:        FormatAmount(r.Additions),
		RegimeDeductions: FormatAmount(r.RegimeDeductions),
		Insurance:        FormatAmount(r.Employee.Insurance),
		AdvancesTotal:    FormatAmount(r.Advances.Total),
		Deductions:       FormatAmount(r.TotalDeductions()),
		NetSalary:        FormatAmount(r.NetSalary()),
		Notes:            r.NotesText(),
		CalculationDate:  calculatedAt.Format(timestampLayout),
	}
	if r.Err != nil {
		msg := r.Err.Error()
		resp.Error = &msg
	}

	switch {
	case r.Monthly != nil:
		resp.SystemDetails = toMonthlyDetails(*r.Monthly)
	case r.Shift != nil:
		resp.SystemDetails = toShiftDetails(*r.Shift)
	case r.Production != nil:
		resp.SystemDetails = toProductionDetails(*r.Production)
	case r.Hourly != nil:
		resp.SystemDetails = toHourlyDetails(*r.Hourly)
	}

	if len(r.Advances.Lines) > 0 {
		resp.Advances = toAdvanceLines(r.Advances.Lines)
	}
	return resp
}

func toMonthlyDetails(b MonthlyBreakdown) payroll.MonthlyDetailsResponse {
	return payroll.MonthlyDetailsResponse{
		FullDays:          b.FullDays,
		HalfDays:          b.HalfDays,
		OnlineDays:        b.OnlineDays,
		ExcusedAbsences:   b.ExcusedAbsences,
		UnexcusedAbsences: b.UnexcusedAbsences,
		MissingDays:       b.MissingDays,
		DailyRate:         FormatAmount(b.DailyRate),
		TotalAmount:       FormatAmount(b.TotalAmount),
		TotalDeductions:   FormatAmount(b.TotalDeductions),
		NetAmount:         FormatAmount(b.NetAmount()),
	}
}

func toPeriods(periods []WorkPeriod) []payroll.PeriodResponse {
	out := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		out = append(out, payroll.PeriodResponse{
			Start:   formatClock(p.Start),
			End:     formatClock(p.End),
			Minutes: p.Minutes,
			Hours:   FormatAmount(clock.Hours(p.Minutes)),
		})
	}
	return out
}

func toShiftDetails(b ShiftBreakdown) payroll.ShiftDetailsResponse {
	resp := payroll.ShiftDetailsResponse{
		TotalDays:               b.TotalDays,
		TotalWorkingMinutes:     b.TotalWorkingMinutes,
		TotalOvertimeMinutes:    b.TotalOvertimeMinutes,
		TotalDelayMinutes:       b.TotalDelayMinutes,
		TotalExcessBreakMinutes: b.TotalExcessBreakMinutes,
		OvertimeValue:           FormatAmount(b.OvertimeValue),
		DelayDeductions:         FormatAmount(b.DelayDeduction),
		BreakDeductions:         FormatAmount(b.BreakDeduction),
		DailyRecords:            make([]payroll.ShiftDayResponse, 0, len(b.Days)),
	}
	for _, d := range b.Days {
		resp.DailyRecords = append(resp.DailyRecords, payroll.ShiftDayResponse{
			Date:               formatDate(d.Date),
			WorkingMinutes:     d.WorkedMinutes,
			OvertimeMinutes:    d.OvertimeMinutes,
			DelayMinutes:       d.DelayMinutes(),
			LateMinutes:        d.LateMinutes,
			EarlyExitMinutes:   d.EarlyExitMinutes,
			BreakMinutes:       d.BreakMinutes,
			ExcessBreakMinutes: d.ExcessBreakMinutes,
			FirstCheckIn:       clock.Format(d.FirstCheckIn),
			LastCheckOut:       clock.Format(d.LastCheckOut),
			Periods:            toPeriods(d.Periods),
		})
	}
	if s := b.Shift; s != nil {
		resp.ShiftInfo = &payroll.ShiftInfoResponse{
			Name:                s.Name,
			StartTime:           formatClock(clock.Minutes(s.StartTime)),
			EndTime:             formatClock(clock.Minutes(s.EndTime)),
			AllowedDelayMinutes: s.AllowedDelayMinutes,
			AllowedExitMinutes:  s.AllowedExitMinutes,
			AllowedBreakMinutes: b.AllowedBreakMinutes,
		}
	}
	return resp
}

func toGradeTotals(grades map[payroll.QualityGrade]GradeTotal) map[payroll.QualityGrade]payroll.GradeTotalResponse {
	out := make(map[payroll.QualityGrade]payroll.GradeTotalResponse, len(grades))
	for grade, total := range grades {
		out[grade] = payroll.GradeTotalResponse{Count: total.Count, Value: FormatAmount(total.Value)}
	}
	return out
}

func toProductionDetails(b ProductionBreakdown) payroll.ProductionDetailsResponse {
	resp := payroll.ProductionDetailsResponse{
		Pieces:          make([]payroll.ProductionLineResponse, 0, len(b.Lines)),
		QualitySummary:  toGradeTotals(b.Grades),
		TotalPieces:     b.TotalPieces,
		TotalValue:      FormatAmount(b.TotalValue),
		EfficiencyScore: FormatAmount(b.EfficiencyScore()),
		DailyProduction: make([]payroll.DailyProductionResponse, 0, len(b.Days)),
	}
	for _, l := range b.Lines {
		resp.Pieces = append(resp.Pieces, payroll.ProductionLineResponse{
			PieceID:      l.Piece.ID,
			PieceNumber:  l.Piece.PieceNumber,
			PieceName:    l.Piece.Name,
			Date:         formatDate(l.Record.Date),
			Quantity:     l.Record.Quantity,
			QualityGrade: l.Record.Grade,
			Price:        FormatAmount(l.UnitPrice),
			TotalValue:   FormatAmount(l.Value),
			Notes:        l.Record.Notes,
		})
	}
	for _, d := range b.Days {
		resp.DailyProduction = append(resp.DailyProduction, payroll.DailyProductionResponse{
			Date:        formatDate(d.Date),
			Lines:       d.Lines,
			TotalPieces: d.Pieces,
			TotalValue:  FormatAmount(d.Value),
		})
	}
	return resp
}

func toHourlyDetails(b HourlyBreakdown) payroll.HourlyDetailsResponse {
	resp := payroll.HourlyDetailsResponse{
		TotalDays:          b.TotalDays,
		TotalHours:         FormatAmount(b.TotalHours),
		HourlyRate:         FormatAmount(b.HourlyRate),
		DailyRate:          FormatAmount(b.DailyRate),
		TotalAmountByHours: FormatAmount(b.TotalAmountByHours),
		TotalAmountByDays:  FormatAmount(b.TotalAmountByDays),
		DailyRecords:       make([]payroll.HourlyDayResponse, 0, len(b.Days)),
	}
	for _, d := range b.Days {
		resp.DailyRecords = append(resp.DailyRecords, payroll.HourlyDayResponse{
			Date:          formatDate(d.Date),
			TotalHours:    FormatAmount(d.Hours),
			AmountByHours: FormatAmount(d.AmountByHours),
			AmountByDay:   FormatAmount(d.AmountByDay),
			Periods:       toPeriods(d.Periods),
		})
	}
	return resp
}

func toAdvanceLines(lines []payroll.AdvanceRecord) []payroll.AdvanceLineResponse {
	out := make([]payroll.AdvanceLineResponse, 0, len(lines))
	for _, a := range lines {
		out = append(out, payroll.AdvanceLineResponse{
			Date:           formatDate(a.Date),
			Amount:         FormatAmount(a.Amount),
			DocumentNumber: a.DocumentNumber,
			Notes:          a.Notes,
		})
	}
	return out
}

func toEmployeeResponses(results []EmployeeResult, calculatedAt time.Time) []payroll.EmployeePayrollResponse {
	out := make([]payroll.EmployeePayrollResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toEmployeeResponse(r, calculatedAt))
	}
	return out
}

func toRunResponse(runID string, s RunSummary, calculatedAt time.Time) payroll.PayrollRunResponse {
	return payroll.PayrollRunResponse{
		RunID: runID,
		GeneralStatistics: payroll.GeneralStatisticsResponse{
			TotalEmployees:     len(s.Results),
			TotalPayroll:       FormatAmount(s.TotalPayroll),
			TotalBasicSalaries: FormatAmount(s.TotalBasicSalaries),
			TotalAllowances:    FormatAmount(s.TotalAllowances),
			TotalAdditions:     FormatAmount(s.TotalAdditions),
			TotalDeductions:    FormatAmount(s.TotalDeductions),
			DegradedEmployees:  s.Degraded,
			CalculationDate:    calculatedAt.Format(timestampLayout),
			Month:              s.Period.Month,
			Year:               s.Period.Year,
		},
		SystemsStatistics: payroll.SystemsStatisticsResponse{
			MonthlySystem: payroll.MonthlyStatisticsResponse{
				EmployeeCount:   s.Monthly.EmployeeCount,
				TotalSalaries:   FormatAmount(s.Monthly.TotalSalaries),
				TotalAdditions:  FormatAmount(s.Monthly.TotalAdditions),
				TotalDeductions: FormatAmount(s.Monthly.TotalDeductions),
				AttendanceSummary: payroll.AttendanceSummaryResponse{
					FullDays:          s.Monthly.FullDays,
					HalfDays:          s.Monthly.HalfDays,
					OnlineDays:        s.Monthly.OnlineDays,
					ExcusedAbsences:   s.Monthly.ExcusedAbsences,
					UnexcusedAbsences: s.Monthly.UnexcusedAbsences,
				},
			},
			ProductionSystem: payroll.ProductionStatisticsResponse{
				EmployeeCount:        s.Production.EmployeeCount,
				TotalSalaries:        FormatAmount(s.Production.TotalSalaries),
				TotalProductionValue: FormatAmount(s.Production.TotalValue),
				TotalPieces:          s.Production.TotalPieces,
				QualitySummary:       toGradeTotals(s.Production.Grades),
			},
			ShiftSystem: payroll.ShiftStatisticsResponse{
				EmployeeCount:      s.Shift.EmployeeCount,
				TotalSalaries:      FormatAmount(s.Shift.TotalSalaries),
				TotalWorkingHours:  s.Shift.TotalWorkingHours,
				TotalOvertimeHours: s.Shift.TotalOvertimeHours,
				TotalDelayMinutes:  s.Shift.TotalDelayMinutes,
				TotalBreakMinutes:  s.Shift.TotalBreakMinutes,
			},
			HourlySystem: payroll.HourlyStatisticsResponse{
				EmployeeCount: s.Hourly.EmployeeCount,
				TotalSalaries: FormatAmount(s.Hourly.TotalSalaries),
				TotalHours:    FormatAmount(s.Hourly.TotalHours),
			},
		},
		EmployeesBySystem: payroll.EmployeesBySystemResponse{
			MonthlySystem:    toEmployeeResponses(s.MonthlyResults, calculatedAt),
			ProductionSystem: toEmployeeResponses(s.ProductionResults, calculatedAt),
			ShiftSystem:      toEmployeeResponses(s.ShiftResults, calculatedAt),
			HourlyEmployees:  toEmployeeResponses(s.HourlyResults, calculatedAt),
		},
	}
}
