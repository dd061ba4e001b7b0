package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 8

type PayrollServiceImpl struct {
	payrollRepo payroll.PayrollRepository
	workers     int
	now         func() time.Time
}

func NewPayrollService(payrollRepo payroll.PayrollRepository, workers int) payroll.PayrollService {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &PayrollServiceImpl{
		payrollRepo: payrollRepo,
		workers:     workers,
		now:         time.Now,
	}
}

// ========== RUNS ==========

func (s *PayrollServiceImpl) CalculateMonthlyPayroll(ctx context.Context, req payroll.CalculatePayrollRequest) (payroll.PayrollRunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	runID, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRunResponse{}, fmt.Errorf("failed to generate run id: %w", err)
	}

	period := req.Period()
	slog.Info("Payroll run started", "run_id", runID.String(), "month", period.Month, "year", period.Year)

	summary, err := s.runPeriod(ctx, period, req.EmployeeIDs)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	calculatedAt := s.now()

	slog.Info("Payroll run completed",
		"run_id", runID.String(),
		"employees", len(summary.Results),
		"degraded", summary.Degraded,
		"total_payroll", FormatAmount(summary.TotalPayroll),
	)

	return toRunResponse(runID.String(), summary, calculatedAt), nil
}

func (s *PayrollServiceImpl) CalculateEmployeePayroll(ctx context.Context, employeeID string, period payroll.Period) (payroll.EmployeePayrollResponse, error) {
	result, err := s.employeeResult(ctx, employeeID, period)
	if err != nil {
		return payroll.EmployeePayrollResponse{}, err
	}
	return toEmployeeResponse(result, s.now()), nil
}

func (s *PayrollServiceImpl) GetAdvancesTotal(ctx context.Context, employeeID string, period payroll.Period) (payroll.AdvancesResponse, error) {
	if err := validatePeriod(period); err != nil {
		return payroll.AdvancesResponse{}, err
	}
	if _, err := s.payrollRepo.GetEmployeeByID(ctx, employeeID); err != nil {
		return payroll.AdvancesResponse{}, err
	}

	records, err := s.payrollRepo.ListAdvances(ctx, period, []string{employeeID})
	if err != nil {
		return payroll.AdvancesResponse{}, fmt.Errorf("failed to list advances: %w", err)
	}
	summary := resolveAdvances(records, period)

	return payroll.AdvancesResponse{
		EmployeeID: employeeID,
		Month:      period.Month,
		Year:       period.Year,
		Total:      FormatAmount(summary.Total),
		Details:    toAdvanceLines(summary.Lines),
	}, nil
}

// ========== EXPORTS ==========

func (s *PayrollServiceImpl) ExportWorkbook(ctx context.Context, period payroll.Period, w io.Writer) error {
	if err := validatePeriod(period); err != nil {
		return err
	}
	summary, err := s.runPeriod(ctx, period, nil)
	if err != nil {
		return err
	}
	return writeWorkbook(summary, s.now(), w)
}

func (s *PayrollServiceImpl) GeneratePayslipPDF(ctx context.Context, employeeID string, period payroll.Period, w io.Writer) error {
	result, err := s.employeeResult(ctx, employeeID, period)
	if err != nil {
		return err
	}
	return writePayslip(result, period, s.now(), w)
}

// ========== HELPERS ==========

func validatePeriod(period payroll.Period) error {
	req := payroll.CalculatePayrollRequest{Month: period.Month, Year: period.Year}
	return req.Validate()
}

func (s *PayrollServiceImpl) employeeResult(ctx context.Context, employeeID string, period payroll.Period) (EmployeeResult, error) {
	if err := validatePeriod(period); err != nil {
		return EmployeeResult{}, err
	}
	if _, err := s.payrollRepo.GetEmployeeByID(ctx, employeeID); err != nil {
		return EmployeeResult{}, err
	}

	summary, err := s.runPeriod(ctx, period, []string{employeeID})
	if err != nil {
		return EmployeeResult{}, err
	}
	if len(summary.Results) == 0 {
		return EmployeeResult{}, payroll.ErrEmployeeNotFound
	}
	return summary.Results[0], nil
}

func (s *PayrollServiceImpl) runPeriod(ctx context.Context, period payroll.Period, employeeIDs []string) (RunSummary, error) {
	inputs, catalog, err := s.loadInputs(ctx, period, employeeIDs)
	if err != nil {
		return RunSummary{}, err
	}

	results, err := computeMonthlyPayroll(ctx, period, inputs, catalog, s.workers)
	if err != nil {
		return RunSummary{}, err
	}
	return reduceRun(period, results), nil
}

// loadInputs reads every table the run needs from one repository snapshot
// and attaches the records to their employees.
func (s *PayrollServiceImpl) loadInputs(ctx context.Context, period payroll.Period, employeeIDs []string) ([]payroll.EmployeeInputs, map[string]payroll.PieceCatalogEntry, error) {
	var (
		employees   []payroll.Employee
		attendances []payroll.AttendanceRecord
		monthly     []payroll.MonthlyAttendanceRecord
		production  []payroll.ProductionRecord
		advances    []payroll.AdvanceRecord
		pieces      []payroll.PieceCatalogEntry
	)

	err := s.payrollRepo.Snapshot(ctx, func(ctx context.Context) (err error) {
		if employees, err = s.payrollRepo.ListEmployees(ctx, employeeIDs); err != nil {
			return wrapLoad("employees", err)
		}
		if len(employees) == 0 {
			return nil
		}
		if attendances, err = s.payrollRepo.ListAttendances(ctx, period, employeeIDs); err != nil {
			return wrapLoad("attendances", err)
		}
		if monthly, err = s.payrollRepo.ListMonthlyAttendances(ctx, period, employeeIDs); err != nil {
			return wrapLoad("monthly attendances", err)
		}
		if production, err = s.payrollRepo.ListProductionRecords(ctx, period, employeeIDs); err != nil {
			return wrapLoad("production records", err)
		}
		if advances, err = s.payrollRepo.ListAdvances(ctx, period, employeeIDs); err != nil {
			return wrapLoad("advances", err)
		}
		if pieces, err = s.payrollRepo.ListPieceCatalog(ctx); err != nil {
			return wrapLoad("piece catalog", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	catalog := make(map[string]payroll.PieceCatalogEntry, len(pieces))
	for _, p := range pieces {
		catalog[p.ID] = p
	}

	return groupInputs(employees, attendances, monthly, production, advances), catalog, nil
}

func wrapLoad(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

// groupInputs attaches records to employees, keeping the employee order.
// Records of employees outside the list are ignored.
func groupInputs(
	employees []payroll.Employee,
	attendances []payroll.AttendanceRecord,
	monthly []payroll.MonthlyAttendanceRecord,
	production []payroll.ProductionRecord,
	advances []payroll.AdvanceRecord,
) []payroll.EmployeeInputs {
	inputs := make([]payroll.EmployeeInputs, len(employees))
	index := make(map[string]int, len(employees))
	for i, e := range employees {
		inputs[i].Employee = e
		index[e.ID] = i
	}

	for _, r := range attendances {
		if i, ok := index[r.EmployeeID]; ok {
			inputs[i].Attendances = append(inputs[i].Attendances, r)
		}
	}
	for _, r := range monthly {
		if i, ok := index[r.EmployeeID]; ok {
			inputs[i].MonthlyAttendance = append(inputs[i].MonthlyAttendance, r)
		}
	}
	for _, r := range production {
		if i, ok := index[r.EmployeeID]; ok {
			inputs[i].Production = append(inputs[i].Production, r)
		}
	}
	for _, r := range advances {
		if i, ok := index[r.EmployeeID]; ok {
			inputs[i].Advances = append(inputs[i].Advances, r)
		}
	}
	return inputs
}

// computeMonthlyPayroll computes every employee on a bounded worker pool.
// Each worker writes only its own slot of the result slice.
func computeMonthlyPayroll(
	ctx context.Context,
	period payroll.Period,
	inputs []payroll.EmployeeInputs,
	catalog map[string]payroll.PieceCatalogEntry,
	workers int,
) ([]EmployeeResult, error) {
	if period.Month < 1 || period.Month > 12 {
		return nil, fmt.Errorf("%w: month %d", payroll.ErrInvalidPeriod, period.Month)
	}

	results := make([]EmployeeResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = computeEmployee(in, catalog, period)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("payroll run cancelled: %w", err)
		}
		return nil, err
	}

	for _, r := range results {
		if r.Err != nil {
			slog.Warn("Employee payroll degraded", "employee_id", r.Employee.ID, "error", r.Err)
		}
	}
	return results, nil
}
