package payroll

import (
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
)

// writePayslip renders a one-page A4 payslip for a single employee result.
func writePayslip(r EmployeeResult, period payroll.Period, calculatedAt time.Time, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", r.Employee.Name, r.Employee.ID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", r.Employee.PositionName()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("System: %s", r.Regime))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %04d-%02d", period.Year, period.Month))
	pdf.Ln(10)

	lines := []struct {
		label  string
		amount string
	}{
		{"Basic Salary", FormatAmount(r.Employee.BasicSalary)},
		{"Allowances", FormatAmount(r.Employee.Allowances)},
		{"Additions", FormatAmount(r.Additions)},
		{"Regime Deductions", FormatAmount(r.RegimeDeductions)},
		{"Insurance", FormatAmount(r.Employee.Insurance)},
		{"Advances", FormatAmount(r.Advances.Total)},
	}
	for _, l := range lines {
		pdf.CellFormat(70, 8, l.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, l.amount, "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(70, 10, "Net Salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 10, FormatAmount(r.NetSalary()), "T", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	if notes := r.NotesText(); notes != "" {
		pdf.MultiCell(0, 5, notes, "", "L", false)
	}
	pdf.Cell(0, 5, fmt.Sprintf("Calculated at %s", calculatedAt.Format(timestampLayout)))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render payslip: %w", err)
	}
	return nil
}
