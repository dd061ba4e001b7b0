package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/clock"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) Snapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithSnapshot(ctx, r.db, fn)
}

// ========== EMPLOYEES ==========

const employeeSelect = `
	SELECT e.id, e.name, e.fingerprint_id, e.basic_salary, e.allowances, e.insurance,
		   jt.id, jt.name, jt.month_system, jt.production_system, jt.shift_system,
		   jt.overtime_hour_rate, jt.delay_minute_rate, jt.allowed_break_time,
		   p.id, p.name, p.hourly_rate, p.daily_rate,
		   s.id, s.name, to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
		   s.allowed_delay_minutes, s.allowed_exit_minutes
	FROM employees e
	LEFT JOIN job_titles jt ON jt.id = e.job_title_id
	LEFT JOIN professions p ON p.id = e.profession_id
	LEFT JOIN shifts s ON s.id = e.shift_id
`

func scanEmployee(row pgx.Row) (payroll.Employee, error) {
	var (
		e payroll.Employee

		jtID, jtName, jtBreak          *string
		jtMonth, jtProduction, jtShift *bool
		jtOvertimeRate, jtDelayRate    decimal.NullDecimal
		pID, pName                     *string
		pHourly, pDaily                decimal.NullDecimal
		sID, sName, sStart, sEnd       *string
		sAllowedDelay, sAllowedExit    *int
	)
	err := row.Scan(
		&e.ID, &e.Name, &e.FingerprintID, &e.BasicSalary, &e.Allowances, &e.Insurance,
		&jtID, &jtName, &jtMonth, &jtProduction, &jtShift,
		&jtOvertimeRate, &jtDelayRate, &jtBreak,
		&pID, &pName, &pHourly, &pDaily,
		&sID, &sName, &sStart, &sEnd,
		&sAllowedDelay, &sAllowedExit,
	)
	if err != nil {
		return payroll.Employee{}, err
	}

	if jtID != nil {
		e.JobTitle = &payroll.JobTitle{
			ID:               *jtID,
			Name:             deref(jtName),
			MonthSystem:      derefBool(jtMonth),
			ProductionSystem: derefBool(jtProduction),
			ShiftSystem:      derefBool(jtShift),
			OvertimeHourRate: nullToZero(jtOvertimeRate),
			DelayMinuteRate:  nullToZero(jtDelayRate),
			AllowedBreakTime: deref(jtBreak),
		}
	}
	if pID != nil {
		e.Profession = &payroll.Profession{
			ID:         *pID,
			Name:       deref(pName),
			HourlyRate: nullToZero(pHourly),
			DailyRate:  nullToZero(pDaily),
		}
	}
	if sID != nil {
		start, err := parseClock(sStart)
		if err != nil {
			return payroll.Employee{}, fmt.Errorf("shift %s start time: %w", *sID, err)
		}
		end, err := parseClock(sEnd)
		if err != nil {
			return payroll.Employee{}, fmt.Errorf("shift %s end time: %w", *sID, err)
		}
		e.Shift = &payroll.Shift{
			ID:                  *sID,
			Name:                deref(sName),
			StartTime:           clock.At(time.Time{}, start),
			EndTime:             clock.At(time.Time{}, end),
			AllowedDelayMinutes: derefInt(sAllowedDelay),
			AllowedExitMinutes:  derefInt(sAllowedExit),
		}
	}
	return e, nil
}

func (r *payrollRepository) ListEmployees(ctx context.Context, employeeIDs []string) ([]payroll.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect
	args := []interface{}{}
	if len(employeeIDs) > 0 {
		query += ` WHERE e.id = ANY($1)`
		args = append(args, employeeIDs)
	}
	query += ` ORDER BY e.name, e.id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []payroll.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

func (r *payrollRepository) GetEmployeeByID(ctx context.Context, id string) (payroll.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Employee{}, payroll.ErrEmployeeNotFound
		}
		return payroll.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// ========== PERIOD RECORDS ==========

// periodFilter appends the month/year condition and the optional employee
// filter. Date columns are compared by month and year.
func periodFilter(period payroll.Period, employeeIDs []string) (string, []interface{}) {
	where := ` WHERE EXTRACT(MONTH FROM date) = $1 AND EXTRACT(YEAR FROM date) = $2`
	args := []interface{}{period.Month, period.Year}
	if len(employeeIDs) > 0 {
		where += ` AND employee_id = ANY($3)`
		args = append(args, employeeIDs)
	}
	return where, args
}

func (r *payrollRepository) ListAttendances(ctx context.Context, period payroll.Period, employeeIDs []string) ([]payroll.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	where, args := periodFilter(period, employeeIDs)
	query := `
		SELECT id, employee_id, date,
			   to_char(check_in, 'HH24:MI'), to_char(check_out, 'HH24:MI')
		FROM attendances` + where + `
		ORDER BY employee_id, date, check_in NULLS LAST`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []payroll.AttendanceRecord
	for rows.Next() {
		var (
			a            payroll.AttendanceRecord
			checkIn, out *string
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &checkIn, &out); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		if a.CheckIn, err = parseClockOnDate(a.Date, checkIn); err != nil {
			return nil, fmt.Errorf("attendance %s check-in: %w", a.ID, err)
		}
		if a.CheckOut, err = parseClockOnDate(a.Date, out); err != nil {
			return nil, fmt.Errorf("attendance %s check-out: %w", a.ID, err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

func (r *payrollRepository) ListMonthlyAttendances(ctx context.Context, period payroll.Period, employeeIDs []string) ([]payroll.MonthlyAttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	where, args := periodFilter(period, employeeIDs)
	query := `
		SELECT id, employee_id, date, attendance_type, is_excused, notes
		FROM monthly_attendances` + where + `
		ORDER BY employee_id, date`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendances: %w", err)
	}
	defer rows.Close()

	var records []payroll.MonthlyAttendanceRecord
	for rows.Next() {
		var m payroll.MonthlyAttendanceRecord
		if err := rows.Scan(&m.ID, &m.EmployeeID, &m.Date, &m.Type, &m.IsExcused, &m.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan monthly attendance: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly attendances: %w", err)
	}

	return records, nil
}

func (r *payrollRepository) ListProductionRecords(ctx context.Context, period payroll.Period, employeeIDs []string) ([]payroll.ProductionRecord, error) {
	q := GetQuerier(ctx, r.db)

	where, args := periodFilter(period, employeeIDs)
	query := `
		SELECT id, employee_id, piece_id, date, quantity, quality_grade, notes
		FROM production_records` + where + `
		ORDER BY employee_id, date, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list production records: %w", err)
	}
	defer rows.Close()

	var records []payroll.ProductionRecord
	for rows.Next() {
		var p payroll.ProductionRecord
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.PieceID, &p.Date, &p.Quantity, &p.Grade, &p.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan production record: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate production records: %w", err)
	}

	return records, nil
}

func (r *payrollRepository) ListAdvances(ctx context.Context, period payroll.Period, employeeIDs []string) ([]payroll.AdvanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	where, args := periodFilter(period, employeeIDs)
	query := `
		SELECT id, employee_id, date, amount, document_number, notes
		FROM advances` + where + `
		ORDER BY employee_id, date, id`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var records []payroll.AdvanceRecord
	for rows.Next() {
		var a payroll.AdvanceRecord
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.Amount, &a.DocumentNumber, &a.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate advances: %w", err)
	}

	return records, nil
}

// ========== CATALOG ==========

func (r *payrollRepository) ListPieceCatalog(ctx context.Context) ([]payroll.PieceCatalogEntry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, piece_number, name, price_levels
		FROM production_pieces
		ORDER BY piece_number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list piece catalog: %w", err)
	}
	defer rows.Close()

	var pieces []payroll.PieceCatalogEntry
	for rows.Next() {
		var (
			p   payroll.PieceCatalogEntry
			raw []byte
		)
		if err := rows.Scan(&p.ID, &p.PieceNumber, &p.Name, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan piece: %w", err)
		}
		if p.PriceLevels, err = decodePriceLevels(raw); err != nil {
			return nil, fmt.Errorf("piece %s price levels: %w", p.ID, err)
		}
		pieces = append(pieces, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate piece catalog: %w", err)
	}

	return pieces, nil
}

// decodePriceLevels reads a JSON object of grade to price. Prices may be
// JSON numbers or strings.
func decodePriceLevels(raw []byte) (map[payroll.QualityGrade]decimal.Decimal, error) {
	levels := make(map[payroll.QualityGrade]decimal.Decimal)
	if len(raw) == 0 {
		return levels, nil
	}
	var decoded map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	for grade, price := range decoded {
		levels[payroll.QualityGrade(grade)] = price
	}
	return levels, nil
}

// ========== HELPERS ==========

func parseClock(s *string) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("missing time")
	}
	return clock.ParseHHMM(*s)
}

func parseClockOnDate(date time.Time, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	m, err := clock.ParseHHMM(*s)
	if err != nil {
		return nil, err
	}
	t := clock.At(date, m)
	return &t, nil
}

func nullToZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefBool(b *bool) bool {
	return b != nil && *b
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
