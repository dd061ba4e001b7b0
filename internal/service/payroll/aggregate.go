package payroll

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type MonthlyStats struct {
	EmployeeCount     int
	TotalSalaries     decimal.Decimal
	TotalAdditions    decimal.Decimal
	TotalDeductions   decimal.Decimal
	FullDays          int
	HalfDays          int
	OnlineDays        int
	ExcusedAbsences   int
	UnexcusedAbsences int
}

type ProductionStats struct {
	EmployeeCount int
	TotalSalaries decimal.Decimal
	TotalValue    decimal.Decimal
	TotalPieces   int
	Grades        map[payroll.QualityGrade]GradeTotal
}

type ShiftStats struct {
	EmployeeCount      int
	TotalSalaries      decimal.Decimal
	TotalWorkingHours  int
	TotalOvertimeHours int
	TotalDelayMinutes  int
	TotalBreakMinutes  int
}

type HourlyStats struct {
	EmployeeCount int
	TotalSalaries decimal.Decimal
	TotalHours    decimal.Decimal
}

// RunSummary is the folded result of one payroll run. Results keeps the
// input order; the buckets hold the same results grouped by regime, with
// neutral results reported alongside hourly ones.
type RunSummary struct {
	Period             payroll.Period
	Results            []EmployeeResult
	TotalPayroll       decimal.Decimal
	TotalBasicSalaries decimal.Decimal
	TotalAllowances    decimal.Decimal
	TotalAdditions     decimal.Decimal
	TotalDeductions    decimal.Decimal
	Degraded           int

	Monthly    MonthlyStats
	Production ProductionStats
	Shift      ShiftStats
	Hourly     HourlyStats

	MonthlyResults    []EmployeeResult
	ProductionResults []EmployeeResult
	ShiftResults      []EmployeeResult
	HourlyResults     []EmployeeResult
}

func newRunSummary(period payroll.Period) RunSummary {
	return RunSummary{
		Period:             period,
		TotalPayroll:       decimal.Zero,
		TotalBasicSalaries: decimal.Zero,
		TotalAllowances:    decimal.Zero,
		TotalAdditions:     decimal.Zero,
		TotalDeductions:    decimal.Zero,
		Monthly: MonthlyStats{
			TotalSalaries:   decimal.Zero,
			TotalAdditions:  decimal.Zero,
			TotalDeductions: decimal.Zero,
		},
		Production: ProductionStats{
			TotalSalaries: decimal.Zero,
			TotalValue:    decimal.Zero,
			Grades:        newGradeTotals(),
		},
		Shift:  ShiftStats{TotalSalaries: decimal.Zero},
		Hourly: HourlyStats{TotalSalaries: decimal.Zero, TotalHours: decimal.Zero},
	}
}

// reduceRun folds per-employee results into run totals. It runs on a single
// goroutine after every employee has been computed.
func reduceRun(period payroll.Period, results []EmployeeResult) RunSummary {
	s := newRunSummary(period)
	s.Results = results

	for _, r := range results {
		net := r.NetSalary()
		s.TotalPayroll = s.TotalPayroll.Add(net)
		s.TotalBasicSalaries = s.TotalBasicSalaries.Add(r.Employee.BasicSalary)
		s.TotalAllowances = s.TotalAllowances.Add(r.Employee.Allowances)
		s.TotalAdditions = s.TotalAdditions.Add(r.Additions)
		s.TotalDeductions = s.TotalDeductions.Add(r.TotalDeductions())
		if r.Err != nil {
			s.Degraded++
		}

		switch r.Regime {
		case payroll.RegimeMonthly:
			s.MonthlyResults = append(s.MonthlyResults, r)
			s.Monthly.EmployeeCount++
			s.Monthly.TotalSalaries = s.Monthly.TotalSalaries.Add(net)
			s.Monthly.TotalAdditions = s.Monthly.TotalAdditions.Add(r.Additions)
			s.Monthly.TotalDeductions = s.Monthly.TotalDeductions.Add(r.TotalDeductions())
			if b := r.Monthly; b != nil {
				s.Monthly.FullDays += b.FullDays
				s.Monthly.HalfDays += b.HalfDays
				s.Monthly.OnlineDays += b.OnlineDays
				s.Monthly.ExcusedAbsences += b.ExcusedAbsences
				s.Monthly.UnexcusedAbsences += b.UnexcusedAbsences
			}

		case payroll.RegimeProduction:
			s.ProductionResults = append(s.ProductionResults, r)
			s.Production.EmployeeCount++
			s.Production.TotalSalaries = s.Production.TotalSalaries.Add(net)
			if b := r.Production; b != nil {
				s.Production.TotalValue = s.Production.TotalValue.Add(b.TotalValue)
				s.Production.TotalPieces += b.TotalPieces
				for grade, total := range b.Grades {
					g := s.Production.Grades[grade]
					g.Count += total.Count
					g.Value = g.Value.Add(total.Value)
					s.Production.Grades[grade] = g
				}
			}

		case payroll.RegimeShift:
			s.ShiftResults = append(s.ShiftResults, r)
			s.Shift.EmployeeCount++
			s.Shift.TotalSalaries = s.Shift.TotalSalaries.Add(net)
			if b := r.Shift; b != nil {
				s.Shift.TotalWorkingHours += b.TotalWorkingMinutes / 60
				s.Shift.TotalOvertimeHours += b.TotalOvertimeMinutes / 60
				s.Shift.TotalDelayMinutes += b.TotalDelayMinutes
				s.Shift.TotalBreakMinutes += b.TotalExcessBreakMinutes
			}

		default:
			s.HourlyResults = append(s.HourlyResults, r)
			s.Hourly.EmployeeCount++
			s.Hourly.TotalSalaries = s.Hourly.TotalSalaries.Add(net)
			if b := r.Hourly; b != nil {
				s.Hourly.TotalHours = s.Hourly.TotalHours.Add(b.TotalHours)
			}
		}
	}

	return s
}
