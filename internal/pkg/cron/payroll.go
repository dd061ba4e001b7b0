package cron

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/storage"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollJobs struct {
	payrollService payroll.PayrollService
	files          storage.FileStorage
	now            func() time.Time
}

func NewPayrollJobs(payrollService payroll.PayrollService, files storage.FileStorage) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		files:          files,
		now:            time.Now,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("payroll_month_close", interval, 10*time.Minute, j.MonthClose)
}

// PreviousPeriod returns the month before t.
func PreviousPeriod(t time.Time) payroll.Period {
	prev := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, -1, 0)
	return payroll.Period{Month: int(prev.Month()), Year: prev.Year()}
}

// MonthClose calculates the previous month, logs its totals and stores the
// workbook. Every tick retries until the workbook exists, then runs are no-ops.
func (j *PayrollJobs) MonthClose(ctx context.Context) error {
	period := PreviousPeriod(j.now())
	path := period.ReportPath()

	exists, err := j.files.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to check stored workbook: %w", err)
	}
	if exists {
		slog.Debug("Cron: payroll workbook already stored", "path", path)
		return nil
	}

	slog.Info("Cron: Starting payroll month close", "month", period.Month, "year", period.Year)

	run, err := j.payrollService.CalculateMonthlyPayroll(ctx, payroll.CalculatePayrollRequest{Month: period.Month, Year: period.Year})
	if err != nil {
		return fmt.Errorf("failed to calculate payroll: %w", err)
	}
	stats := run.GeneralStatistics
	slog.Info("Cron: payroll month calculated",
		"run_id", run.RunID,
		"employees", stats.TotalEmployees,
		"degraded", stats.DegradedEmployees,
		"total_payroll", stats.TotalPayroll,
	)

	var buf bytes.Buffer
	if err := j.payrollService.ExportWorkbook(ctx, period, &buf); err != nil {
		return fmt.Errorf("failed to export workbook: %w", err)
	}
	if _, err := j.files.Upload(ctx, &buf, path, workbookContentType); err != nil {
		return fmt.Errorf("failed to store workbook: %w", err)
	}

	url, err := j.files.GetURL(ctx, path, 0)
	if err != nil {
		return fmt.Errorf("failed to resolve workbook url: %w", err)
	}
	slog.Info("Cron: payroll workbook stored", "path", path, "url", url)
	return nil
}
