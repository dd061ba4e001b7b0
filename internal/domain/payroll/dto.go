package payroll

import (
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
)

// ========== REQUEST DTOs ==========

type CalculatePayrollRequest struct {
	Month       int      `json:"month"`
	Year        int      `json:"year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *CalculatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 1 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a positive year"})
	}
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{Field: "employee_ids", Message: "must not contain empty values"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CalculatePayrollRequest) Period() Period {
	return Period{Month: r.Month, Year: r.Year}
}

// ========== EMPLOYEE RESULT DTOs ==========

// Money fields are canonical decimal strings.
type EmployeePayrollResponse struct {
	EmployeeID       string                `json:"employee_id"`
	EmployeeName     string                `json:"employee_name"`
	FingerprintID    *string               `json:"fingerprint_id"`
	Position         string                `json:"position"`
	SystemType       Regime                `json:"system_type"`
	BasicSalary      string                `json:"basic_salary"`
	Allowances       string                `json:"allowances"`
	Additions        string                `json:"additions"`
	RegimeDeductions string                `json:"regime_deductions"`
	Insurance        string                `json:"insurance"`
	AdvancesTotal    string                `json:"advances_total"`
	Deductions       string                `json:"deductions"`
	NetSalary        string                `json:"net_salary"`
	Notes            string                `json:"notes"`
	CalculationDate  string                `json:"calculation_date"`
	Error            *string               `json:"error,omitempty"`
	SystemDetails    interface{}           `json:"system_details,omitempty"`
	Advances         []AdvanceLineResponse `json:"advances,omitempty"`
}

type MonthlyDetailsResponse struct {
	FullDays          int    `json:"full_days"`
	HalfDays          int    `json:"half_days"`
	OnlineDays        int    `json:"online_days"`
	ExcusedAbsences   int    `json:"excused_absences"`
	UnexcusedAbsences int    `json:"unexcused_absences"`
	MissingDays       int    `json:"missing_days"`
	DailyRate         string `json:"daily_rate"`
	TotalAmount       string `json:"total_amount"`
	TotalDeductions   string `json:"total_deductions"`
	NetAmount         string `json:"net_amount"`
}

type ShiftDetailsResponse struct {
	TotalDays               int                `json:"total_days"`
	TotalWorkingMinutes     int                `json:"total_working_minutes"`
	TotalOvertimeMinutes    int                `json:"total_overtime_minutes"`
	TotalDelayMinutes       int                `json:"total_delay_minutes"`
	TotalExcessBreakMinutes int                `json:"total_excess_break_minutes"`
	OvertimeValue           string             `json:"overtime_value"`
	DelayDeductions         string             `json:"delay_deductions"`
	BreakDeductions         string             `json:"break_deductions"`
	DailyRecords            []ShiftDayResponse `json:"daily_records"`
	ShiftInfo               *ShiftInfoResponse `json:"shift_info,omitempty"`
}

type ShiftDayResponse struct {
	Date               string           `json:"date"`
	WorkingMinutes     int              `json:"working_minutes"`
	OvertimeMinutes    int              `json:"overtime_minutes"`
	DelayMinutes       int              `json:"delay_minutes"`
	LateMinutes        int              `json:"late_minutes"`
	EarlyExitMinutes   int              `json:"early_exit_minutes"`
	BreakMinutes       int              `json:"break_minutes"`
	ExcessBreakMinutes int              `json:"excess_break_minutes"`
	FirstCheckIn       *string          `json:"first_check_in"`
	LastCheckOut       *string          `json:"last_check_out"`
	Periods            []PeriodResponse `json:"periods"`
}

type PeriodResponse struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
	Hours   string `json:"hours"`
}

type ShiftInfoResponse struct {
	Name                string `json:"name"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	AllowedDelayMinutes int    `json:"allowed_delay_minutes"`
	AllowedExitMinutes  int    `json:"allowed_exit_minutes"`
	AllowedBreakMinutes int    `json:"allowed_break_minutes"`
}

type ProductionDetailsResponse struct {
	Pieces          []ProductionLineResponse            `json:"pieces"`
	QualitySummary  map[QualityGrade]GradeTotalResponse `json:"quality_summary"`
	TotalPieces     int                                 `json:"total_pieces"`
	TotalValue      string                              `json:"total_value"`
	EfficiencyScore string                              `json:"efficiency_score"`
	DailyProduction []DailyProductionResponse           `json:"daily_production"`
}

type ProductionLineResponse struct {
	PieceID      string       `json:"piece_id"`
	PieceNumber  string       `json:"piece_number"`
	PieceName    string       `json:"piece_name"`
	Date         string       `json:"date"`
	Quantity     int          `json:"quantity"`
	QualityGrade QualityGrade `json:"quality_grade"`
	Price        string       `json:"price"`
	TotalValue   string       `json:"total_value"`
	Notes        *string      `json:"notes"`
}

type GradeTotalResponse struct {
	Count int    `json:"count"`
	Value string `json:"value"`
}

type DailyProductionResponse struct {
	Date        string `json:"date"`
	Lines       int    `json:"lines"`
	TotalPieces int    `json:"total_pieces"`
	TotalValue  string `json:"total_value"`
}

type HourlyDetailsResponse struct {
	TotalDays          int                 `json:"total_days"`
	TotalHours         string              `json:"total_hours"`
	HourlyRate         string              `json:"hourly_rate"`
	DailyRate          string              `json:"daily_rate"`
	TotalAmountByHours string              `json:"total_amount_by_hours"`
	TotalAmountByDays  string              `json:"total_amount_by_days"`
	DailyRecords       []HourlyDayResponse `json:"daily_records"`
}

type HourlyDayResponse struct {
	Date          string           `json:"date"`
	TotalHours    string           `json:"total_hours"`
	AmountByHours string           `json:"amount_by_hours"`
	AmountByDay   string           `json:"amount_by_day"`
	Periods       []PeriodResponse `json:"periods"`
}

type AdvanceLineResponse struct {
	Date           string  `json:"date"`
	Amount         string  `json:"amount"`
	DocumentNumber *string `json:"document_number"`
	Notes          *string `json:"notes"`
}

type AdvancesResponse struct {
	EmployeeID string                `json:"employee_id"`
	Month      int                   `json:"month"`
	Year       int                   `json:"year"`
	Total      string                `json:"total"`
	Details    []AdvanceLineResponse `json:"details"`
}

// ========== RUN DTOs ==========

type PayrollRunResponse struct {
	RunID             string                    `json:"run_id"`
	GeneralStatistics GeneralStatisticsResponse `json:"general_statistics"`
	SystemsStatistics SystemsStatisticsResponse `json:"systems_statistics"`
	EmployeesBySystem EmployeesBySystemResponse `json:"employees_by_system"`
}

type GeneralStatisticsResponse struct {
	TotalEmployees     int    `json:"total_employees"`
	TotalPayroll       string `json:"total_payroll"`
	TotalBasicSalaries string `json:"total_basic_salaries"`
	TotalAllowances    string `json:"total_allowances"`
	TotalAdditions     string `json:"total_additions"`
	TotalDeductions    string `json:"total_deductions"`
	DegradedEmployees  int    `json:"degraded_employees"`
	CalculationDate    string `json:"calculation_date"`
	Month              int    `json:"month"`
	Year               int    `json:"year"`
}

type SystemsStatisticsResponse struct {
	MonthlySystem    MonthlyStatisticsResponse    `json:"monthly_system"`
	ProductionSystem ProductionStatisticsResponse `json:"production_system"`
	ShiftSystem      ShiftStatisticsResponse      `json:"shift_system"`
	HourlySystem     HourlyStatisticsResponse     `json:"hourly_system"`
}

type MonthlyStatisticsResponse struct {
	EmployeeCount     int                       `json:"employee_count"`
	TotalSalaries     string                    `json:"total_salaries"`
	TotalAdditions    string                    `json:"total_additions"`
	TotalDeductions   string                    `json:"total_deductions"`
	AttendanceSummary AttendanceSummaryResponse `json:"attendance_summary"`
}

type AttendanceSummaryResponse struct {
	FullDays          int `json:"full_days"`
	HalfDays          int `json:"half_days"`
	OnlineDays        int `json:"online_days"`
	ExcusedAbsences   int `json:"excused_absences"`
	UnexcusedAbsences int `json:"unexcused_absences"`
}

type ProductionStatisticsResponse struct {
	EmployeeCount        int                                 `json:"employee_count"`
	TotalSalaries        string                              `json:"total_salaries"`
	TotalProductionValue string                              `json:"total_production_value"`
	TotalPieces          int                                 `json:"total_pieces"`
	QualitySummary       map[QualityGrade]GradeTotalResponse `json:"quality_summary"`
}

type ShiftStatisticsResponse struct {
	EmployeeCount      int    `json:"employee_count"`
	TotalSalaries      string `json:"total_salaries"`
	TotalWorkingHours  int    `json:"total_working_hours"`
	TotalOvertimeHours int    `json:"total_overtime_hours"`
	TotalDelayMinutes  int    `json:"total_delay_minutes"`
	TotalBreakMinutes  int    `json:"total_break_minutes"`
}

type HourlyStatisticsResponse struct {
	EmployeeCount int    `json:"employee_count"`
	TotalSalaries string `json:"total_salaries"`
	TotalHours    string `json:"total_hours"`
}

type EmployeesBySystemResponse struct {
	MonthlySystem    []EmployeePayrollResponse `json:"monthly_system"`
	ProductionSystem []EmployeePayrollResponse `json:"production_system"`
	ShiftSystem      []EmployeePayrollResponse `json:"shift_system"`
	HourlyEmployees  []EmployeePayrollResponse `json:"hourly_employees"`
}
