package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

// Period identifies a payroll month.
type Period struct {
	Month int
	Year  int
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return int(t.Month()) == p.Month && t.Year() == p.Year
}

// ReportPath is the storage key of the period's archived workbook.
func (p Period) ReportPath() string {
	return fmt.Sprintf("payroll/%04d-%02d.xlsx", p.Year, p.Month)
}

// Employee - payroll subject with optional regime configuration
type Employee struct {
	ID            string
	Name          string
	FingerprintID *string
	BasicSalary   decimal.Decimal
	Allowances    decimal.Decimal
	Insurance     decimal.Decimal

	JobTitle   *JobTitle
	Profession *Profession
	Shift      *Shift
}

// JobTitle - regime flags and shift rates
type JobTitle struct {
	ID               string
	Name             string
	MonthSystem      bool
	ProductionSystem bool
	ShiftSystem      bool
	OvertimeHourRate decimal.Decimal
	DelayMinuteRate  decimal.Decimal
	// AllowedBreakTime is stored as "HH:MM".
	AllowedBreakTime string
}

// AllowedBreakMinutes returns the daily break allowance, zero when malformed.
func (j JobTitle) AllowedBreakMinutes() int {
	return clock.MinutesOrZero(j.AllowedBreakTime)
}

// Profession - hourly regime rates
type Profession struct {
	ID         string
	Name       string
	HourlyRate decimal.Decimal
	DailyRate  decimal.Decimal
}

// Shift - working window and tolerances in minutes
type Shift struct {
	ID                  string
	Name                string
	StartTime           time.Time
	EndTime             time.Time
	AllowedDelayMinutes int
	AllowedExitMinutes  int
}

// AttendanceRecord - one fingerprint check-in/check-out pair
type AttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
}

// AttendanceType enum
type AttendanceType string

const (
	AttendanceFullDay   AttendanceType = "full_day"
	AttendanceHalfDay   AttendanceType = "half_day"
	AttendanceOnlineDay AttendanceType = "online_day"
	AttendanceAbsent    AttendanceType = "absent"
)

// MonthlyAttendanceRecord - one classified day for the monthly regime
type MonthlyAttendanceRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Type       AttendanceType
	IsExcused  bool
	Notes      *string
}

// QualityGrade enum
type QualityGrade string

const (
	GradeA QualityGrade = "A"
	GradeB QualityGrade = "B"
	GradeC QualityGrade = "C"
	GradeD QualityGrade = "D"
	GradeE QualityGrade = "E"
)

// QualityGrades lists the grades in reporting order.
var QualityGrades = []QualityGrade{GradeA, GradeB, GradeC, GradeD, GradeE}

// PieceCatalogEntry - a producible piece and its price per grade
type PieceCatalogEntry struct {
	ID          string
	PieceNumber string
	Name        string
	PriceLevels map[QualityGrade]decimal.Decimal
}

// PriceFor returns the unit price for grade, zero when the grade has no price.
func (p PieceCatalogEntry) PriceFor(grade QualityGrade) decimal.Decimal {
	if price, ok := p.PriceLevels[grade]; ok {
		return price
	}
	return decimal.Zero
}

// ProductionRecord - pieces produced on a day at a quality grade
type ProductionRecord struct {
	ID         string
	EmployeeID string
	PieceID    string
	Date       time.Time
	Quantity   int
	Grade      QualityGrade
	Notes      *string
}

// AdvanceRecord - salary advance paid out before payroll
type AdvanceRecord struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	Amount         decimal.Decimal
	DocumentNumber *string
	Notes          *string
}

// EmployeeInputs groups the period records owned by one employee.
type EmployeeInputs struct {
	Employee          Employee
	Attendances       []AttendanceRecord
	MonthlyAttendance []MonthlyAttendanceRecord
	Production        []ProductionRecord
	Advances          []AdvanceRecord
}

// Regime enum
type Regime string

const (
	RegimeMonthly    Regime = "monthly"
	RegimeShift      Regime = "shift"
	RegimeProduction Regime = "production"
	RegimeHourly     Regime = "hourly"
	RegimeNone       Regime = "none"
)

// Assignment is the resolved regime together with its configuration.
type Assignment struct {
	Regime     Regime
	JobTitle   *JobTitle
	Profession *Profession
	Shift      *Shift
}

// ResolveAssignment picks the regime for an employee. A profession without a
// job title is hourly; otherwise the job title flags are checked in order
// monthly, production, shift.
func ResolveAssignment(e Employee) Assignment {
	a := Assignment{JobTitle: e.JobTitle, Profession: e.Profession, Shift: e.Shift}
	switch {
	case e.JobTitle == nil && e.Profession != nil:
		a.Regime = RegimeHourly
	case e.JobTitle == nil:
		a.Regime = RegimeNone
	case e.JobTitle.MonthSystem:
		a.Regime = RegimeMonthly
	case e.JobTitle.ProductionSystem:
		a.Regime = RegimeProduction
	case e.JobTitle.ShiftSystem:
		a.Regime = RegimeShift
	default:
		a.Regime = RegimeNone
	}
	return a
}

// PositionName returns the job title name, then the profession name.
func (e Employee) PositionName() string {
	if e.JobTitle != nil && e.JobTitle.Name != "" {
		return e.JobTitle.Name
	}
	if e.Profession != nil && e.Profession.Name != "" {
		return e.Profession.Name
	}
	return "unspecified"
}
