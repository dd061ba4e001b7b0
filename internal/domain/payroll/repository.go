package payroll

import "context"

// PayrollRepository is the read-only source of payroll inputs for a period.
type PayrollRepository interface {
	// Snapshot runs fn so that every read made with the ctx it receives sees
	// the same consistent state.
	Snapshot(ctx context.Context, fn func(ctx context.Context) error) error

	ListEmployees(ctx context.Context, employeeIDs []string) ([]Employee, error)
	GetEmployeeByID(ctx context.Context, id string) (Employee, error)

	ListAttendances(ctx context.Context, period Period, employeeIDs []string) ([]AttendanceRecord, error)
	ListMonthlyAttendances(ctx context.Context, period Period, employeeIDs []string) ([]MonthlyAttendanceRecord, error)
	ListProductionRecords(ctx context.Context, period Period, employeeIDs []string) ([]ProductionRecord, error)
	ListAdvances(ctx context.Context, period Period, employeeIDs []string) ([]AdvanceRecord, error)

	ListPieceCatalog(ctx context.Context) ([]PieceCatalogEntry, error)
}
