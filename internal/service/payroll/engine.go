package payroll

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

const noteSeparator = " | "

// EmployeeResult is the computed payroll of one employee. Exactly one of the
// regime breakdowns is set, or none for the neutral and degraded results.
type EmployeeResult struct {
	Employee         payroll.Employee
	Regime           payroll.Regime
	Additions        decimal.Decimal
	RegimeDeductions decimal.Decimal
	Advances         AdvancesSummary
	Notes            []string
	Err              error

	Monthly    *MonthlyBreakdown
	Shift      *ShiftBreakdown
	Production *ProductionBreakdown
	Hourly     *HourlyBreakdown
}

// TotalDeductions is regime deductions plus insurance plus advances.
func (r EmployeeResult) TotalDeductions() decimal.Decimal {
	return r.RegimeDeductions.Add(r.Employee.Insurance).Add(r.Advances.Total)
}

func (r EmployeeResult) NetSalary() decimal.Decimal {
	return r.Employee.BasicSalary.
		Add(r.Employee.Allowances).
		Add(r.Additions).
		Sub(r.TotalDeductions())
}

func (r EmployeeResult) NotesText() string {
	return strings.Join(r.Notes, noteSeparator)
}

// computeEmployee runs the regime calculator selected for the employee. It
// never fails: calculator errors and panics produce a degraded result that
// keeps basic salary, allowances and insurance only.
func computeEmployee(in payroll.EmployeeInputs, catalog map[string]payroll.PieceCatalogEntry, period payroll.Period) (res EmployeeResult) {
	assignment := payroll.ResolveAssignment(in.Employee)
	res = EmployeeResult{
		Employee:         in.Employee,
		Regime:           assignment.Regime,
		Additions:        decimal.Zero,
		RegimeDeductions: decimal.Zero,
		Advances:         AdvancesSummary{Total: decimal.Zero},
	}

	defer func() {
		if p := recover(); p != nil {
			res = degradedResult(in.Employee, assignment.Regime, fmt.Errorf("calculation panicked: %v", p))
		}
	}()

	if err := applyRegime(&res, assignment, in, catalog); err != nil {
		return degradedResult(in.Employee, assignment.Regime, err)
	}

	res.Advances = resolveAdvances(in.Advances, period)
	if len(res.Advances.Lines) > 0 {
		res.Notes = append(res.Notes, res.Advances.note())
	}
	return res
}

func applyRegime(res *EmployeeResult, a payroll.Assignment, in payroll.EmployeeInputs, catalog map[string]payroll.PieceCatalogEntry) error {
	switch a.Regime {
	case payroll.RegimeMonthly:
		b, err := calculateMonthly(in.Employee.BasicSalary, in.MonthlyAttendance)
		if err != nil {
			return err
		}
		res.Monthly = &b
		res.Additions = b.TotalAmount
		res.RegimeDeductions = b.TotalDeductions
		res.Notes = append(res.Notes, b.note())

	case payroll.RegimeShift:
		b, note := calculateShift(a.JobTitle, a.Shift, in.Attendances)
		res.Shift = &b
		res.Additions = b.Additions()
		res.RegimeDeductions = b.Deductions()
		res.Notes = append(res.Notes, note)

	case payroll.RegimeProduction:
		b, err := calculateProduction(in.Production, catalog)
		if err != nil {
			return err
		}
		res.Production = &b
		res.Additions = b.TotalValue
		res.Notes = append(res.Notes, b.note())

	case payroll.RegimeHourly:
		b, note := calculateHourly(a.Profession, in.Attendances)
		res.Hourly = &b
		res.Additions = b.Additions()
		res.Notes = append(res.Notes, note)

	default:
		if a.JobTitle == nil {
			res.Notes = append(res.Notes, "no job title or profession configured")
		} else {
			res.Notes = append(res.Notes, "job title has no payroll system enabled")
		}
	}
	return nil
}

func degradedResult(e payroll.Employee, regime payroll.Regime, err error) EmployeeResult {
	return EmployeeResult{
		Employee:         e,
		Regime:           regime,
		Additions:        decimal.Zero,
		RegimeDeductions: decimal.Zero,
		Advances:         AdvancesSummary{Total: decimal.Zero},
		Notes:            []string{"calculation error: " + err.Error()},
		Err:              err,
	}
}
