package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const payrollSchema = `
CREATE TABLE IF NOT EXISTS job_titles (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	month_system BOOLEAN NOT NULL DEFAULT FALSE,
	production_system BOOLEAN NOT NULL DEFAULT FALSE,
	shift_system BOOLEAN NOT NULL DEFAULT FALSE,
	overtime_hour_rate NUMERIC(12,2),
	delay_minute_rate NUMERIC(12,2),
	allowed_break_time TEXT
);
CREATE TABLE IF NOT EXISTS professions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	hourly_rate NUMERIC(12,2),
	daily_rate NUMERIC(12,2)
);
CREATE TABLE IF NOT EXISTS shifts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	start_time TIME NOT NULL,
	end_time TIME NOT NULL,
	allowed_delay_minutes INTEGER NOT NULL DEFAULT 0,
	allowed_exit_minutes INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	fingerprint_id TEXT,
	basic_salary NUMERIC(12,2) NOT NULL DEFAULT 0,
	allowances NUMERIC(12,2) NOT NULL DEFAULT 0,
	insurance NUMERIC(12,2) NOT NULL DEFAULT 0,
	job_title_id TEXT REFERENCES job_titles(id),
	profession_id TEXT REFERENCES professions(id),
	shift_id TEXT REFERENCES shifts(id)
);
CREATE TABLE IF NOT EXISTS attendances (
	id TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL REFERENCES employees(id),
	date DATE NOT NULL,
	check_in TIME,
	check_out TIME
);
CREATE TABLE IF NOT EXISTS monthly_attendances (
	id TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL REFERENCES employees(id),
	date DATE NOT NULL,
	attendance_type TEXT NOT NULL,
	is_excused BOOLEAN NOT NULL DEFAULT FALSE,
	notes TEXT
);
CREATE TABLE IF NOT EXISTS production_pieces (
	id TEXT PRIMARY KEY,
	piece_number TEXT NOT NULL,
	name TEXT NOT NULL,
	price_levels JSONB NOT NULL DEFAULT '{}'
);
CREATE TABLE IF NOT EXISTS production_records (
	id TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL REFERENCES employees(id),
	piece_id TEXT NOT NULL REFERENCES production_pieces(id),
	date DATE NOT NULL,
	quantity INTEGER NOT NULL,
	quality_grade TEXT NOT NULL,
	notes TEXT
);
CREATE TABLE IF NOT EXISTS advances (
	id TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL REFERENCES employees(id),
	date DATE NOT NULL,
	amount NUMERIC(12,2) NOT NULL,
	document_number TEXT,
	notes TEXT
);
`

// TestDatabaseSetup holds the connection to the payroll test database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it
// is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolConfig{MaxConns: 4})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to create payroll schema: %v", err)
	}
	if err := setup.TruncateAllTables(context.Background()); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return setup
}

func (s *TestDatabaseSetup) Migrate(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, payrollSchema)
	return err
}

// TruncateAllTables removes every row from the payroll tables
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"advances",
		"production_records",
		"production_pieces",
		"monthly_attendances",
		"attendances",
		"employees",
		"shifts",
		"professions",
		"job_titles",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}
