package payroll

import (
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary    = "Summary"
	sheetMonthly    = "Monthly"
	sheetProduction = "Production"
	sheetShift      = "Shift"
	sheetHourly     = "Hourly"
)

var employeeHeader = []interface{}{
	"Employee ID", "Name", "Position", "System", "Basic Salary", "Allowances",
	"Additions", "Regime Deductions", "Insurance", "Advances", "Net Salary", "Notes",
}

// writeWorkbook renders a run as an XLSX workbook: one summary sheet and one
// sheet per regime bucket.
func writeWorkbook(s RunSummary, calculatedAt time.Time, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, s, calculatedAt); err != nil {
		return err
	}

	buckets := []struct {
		name    string
		results []EmployeeResult
	}{
		{sheetMonthly, s.MonthlyResults},
		{sheetProduction, s.ProductionResults},
		{sheetShift, s.ShiftResults},
		{sheetHourly, s.HourlyResults},
	}
	for _, b := range buckets {
		if _, err := f.NewSheet(b.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", b.name, err)
		}
		if err := writeEmployeeSheet(f, b.name, b.results); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s RunSummary, calculatedAt time.Time) error {
	rows := [][]interface{}{
		{"Period", fmt.Sprintf("%04d-%02d", s.Period.Year, s.Period.Month)},
		{"Calculated At", calculatedAt.Format(timestampLayout)},
		{"Total Employees", len(s.Results)},
		{"Degraded Employees", s.Degraded},
		{"Total Payroll", FormatAmount(s.TotalPayroll)},
		{"Total Basic Salaries", FormatAmount(s.TotalBasicSalaries)},
		{"Total Allowances", FormatAmount(s.TotalAllowances)},
		{"Total Additions", FormatAmount(s.TotalAdditions)},
		{"Total Deductions", FormatAmount(s.TotalDeductions)},
		{},
		{"System", "Employees", "Total Salaries"},
		{"monthly", s.Monthly.EmployeeCount, FormatAmount(s.Monthly.TotalSalaries)},
		{"production", s.Production.EmployeeCount, FormatAmount(s.Production.TotalSalaries)},
		{"shift", s.Shift.EmployeeCount, FormatAmount(s.Shift.TotalSalaries)},
		{"hourly", s.Hourly.EmployeeCount, FormatAmount(s.Hourly.TotalSalaries)},
		{},
		{"Grade", "Pieces", "Value"},
	}
	for _, g := range payroll.QualityGrades {
		total := s.Production.Grades[g]
		rows = append(rows, []interface{}{string(g), total.Count, FormatAmount(total.Value)})
	}
	return writeRows(f, sheetSummary, rows)
}

func writeEmployeeSheet(f *excelize.File, sheet string, results []EmployeeResult) error {
	rows := make([][]interface{}, 0, len(results)+1)
	rows = append(rows, employeeHeader)
	for _, r := range results {
		rows = append(rows, []interface{}{
			r.Employee.ID,
			r.Employee.Name,
			r.Employee.PositionName(),
			string(r.Regime),
			FormatAmount(r.Employee.BasicSalary),
			FormatAmount(r.Employee.Allowances),
			FormatAmount(r.Additions),
			FormatAmount(r.RegimeDeductions),
			FormatAmount(r.Employee.Insurance),
			FormatAmount(r.Advances.Total),
			FormatAmount(r.NetSalary()),
			r.NotesText(),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
