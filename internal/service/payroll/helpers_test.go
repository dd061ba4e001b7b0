package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func hhmm(t *testing.T, date time.Time, s string) *time.Time {
	t.Helper()
	m, err := clock.ParseHHMM(s)
	require.NoError(t, err)
	at := clock.At(date, m)
	return &at
}

// punch builds an attendance row; an empty string leaves the side absent.
func punch(t *testing.T, employeeID string, d int, in, out string) payroll.AttendanceRecord {
	t.Helper()
	r := payroll.AttendanceRecord{EmployeeID: employeeID, Date: day(d)}
	if in != "" {
		r.CheckIn = hhmm(t, day(d), in)
	}
	if out != "" {
		r.CheckOut = hhmm(t, day(d), out)
	}
	return r
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

// memoryRepository serves fixed records and applies the same filters as the
// PostgreSQL repository.
type memoryRepository struct {
	employees   []payroll.Employee
	attendances []payroll.AttendanceRecord
	monthly     []payroll.MonthlyAttendanceRecord
	production  []payroll.ProductionRecord
	advances    []payroll.AdvanceRecord
	pieces      []payroll.PieceCatalogEntry

	snapshots int
	calls     int
	listErr   error
}

func wanted(ids []string, id string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (m *memoryRepository) Snapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	m.snapshots++
	return fn(ctx)
}

func (m *memoryRepository) ListEmployees(ctx context.Context, ids []string) ([]payroll.Employee, error) {
	m.calls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []payroll.Employee
	for _, e := range m.employees {
		if wanted(ids, e.ID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryRepository) GetEmployeeByID(ctx context.Context, id string) (payroll.Employee, error) {
	m.calls++
	for _, e := range m.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return payroll.Employee{}, payroll.ErrEmployeeNotFound
}

func (m *memoryRepository) ListAttendances(ctx context.Context, p payroll.Period, ids []string) ([]payroll.AttendanceRecord, error) {
	m.calls++
	var out []payroll.AttendanceRecord
	for _, r := range m.attendances {
		if p.Contains(r.Date) && wanted(ids, r.EmployeeID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepository) ListMonthlyAttendances(ctx context.Context, p payroll.Period, ids []string) ([]payroll.MonthlyAttendanceRecord, error) {
	m.calls++
	var out []payroll.MonthlyAttendanceRecord
	for _, r := range m.monthly {
		if p.Contains(r.Date) && wanted(ids, r.EmployeeID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepository) ListProductionRecords(ctx context.Context, p payroll.Period, ids []string) ([]payroll.ProductionRecord, error) {
	m.calls++
	var out []payroll.ProductionRecord
	for _, r := range m.production {
		if p.Contains(r.Date) && wanted(ids, r.EmployeeID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepository) ListAdvances(ctx context.Context, p payroll.Period, ids []string) ([]payroll.AdvanceRecord, error) {
	m.calls++
	var out []payroll.AdvanceRecord
	for _, r := range m.advances {
		if p.Contains(r.Date) && wanted(ids, r.EmployeeID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRepository) ListPieceCatalog(ctx context.Context) ([]payroll.PieceCatalogEntry, error) {
	m.calls++
	return m.pieces, nil
}
