package payroll

import (
	"context"
	"io"
)

type PayrollService interface {
	CalculateMonthlyPayroll(ctx context.Context, req CalculatePayrollRequest) (PayrollRunResponse, error)
	CalculateEmployeePayroll(ctx context.Context, employeeID string, period Period) (EmployeePayrollResponse, error)
	GetAdvancesTotal(ctx context.Context, employeeID string, period Period) (AdvancesResponse, error)

	ExportWorkbook(ctx context.Context, period Period, w io.Writer) error
	GeneratePayslipPDF(ctx context.Context, employeeID string, period Period, w io.Writer) error
}
