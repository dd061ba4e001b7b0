package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	payroll.PayrollService
	calculated []payroll.CalculatePayrollRequest
	calcErr    error
	exported   []payroll.Period
	exportErr  error
}

func (f *fakePayrollService) CalculateMonthlyPayroll(ctx context.Context, req payroll.CalculatePayrollRequest) (payroll.PayrollRunResponse, error) {
	if f.calcErr != nil {
		return payroll.PayrollRunResponse{}, f.calcErr
	}
	f.calculated = append(f.calculated, req)
	return payroll.PayrollRunResponse{
		RunID: "run-1",
		GeneralStatistics: payroll.GeneralStatisticsResponse{
			TotalEmployees: 4,
			TotalPayroll:   "15445",
			Month:          req.Month,
			Year:           req.Year,
		},
	}, nil
}

func (f *fakePayrollService) ExportWorkbook(ctx context.Context, period payroll.Period, w io.Writer) error {
	if f.exportErr != nil {
		return f.exportErr
	}
	f.exported = append(f.exported, period)
	_, err := w.Write([]byte("workbook"))
	return err
}

func newTestJobs(t *testing.T, svc payroll.PayrollService, now time.Time) (*PayrollJobs, *storage.LocalStorage) {
	files, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/reports")
	require.NoError(t, err)
	jobs := NewPayrollJobs(svc, files)
	jobs.now = func() time.Time { return now }
	return jobs, files
}

func TestPreviousPeriod(t *testing.T) {
	assert.Equal(t, payroll.Period{Month: 12, Year: 2023}, PreviousPeriod(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, payroll.Period{Month: 2, Year: 2024}, PreviousPeriod(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestReportPath(t *testing.T) {
	assert.Equal(t, "payroll/2024-03.xlsx", payroll.Period{Month: 3, Year: 2024}.ReportPath())
}

func TestPayrollJobs_MonthClose(t *testing.T) {
	ctx := context.Background()
	svc := &fakePayrollService{}
	jobs, files := newTestJobs(t, svc, time.Date(2024, 4, 1, 2, 0, 0, 0, time.UTC))

	// Act
	require.NoError(t, jobs.MonthClose(ctx))
	require.NoError(t, jobs.MonthClose(ctx))

	// Assert
	assert.Equal(t, []payroll.CalculatePayrollRequest{{Month: 3, Year: 2024}}, svc.calculated)
	assert.Equal(t, []payroll.Period{{Month: 3, Year: 2024}}, svc.exported)
	exists, err := files.Exists(ctx, "payroll/2024-03.xlsx")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPayrollJobs_MonthClose_ExportFails(t *testing.T) {
	ctx := context.Background()
	svc := &fakePayrollService{exportErr: errors.New("database down")}
	jobs, files := newTestJobs(t, svc, time.Date(2024, 4, 1, 2, 0, 0, 0, time.UTC))

	err := jobs.MonthClose(ctx)

	require.Error(t, err)
	exists, err := files.Exists(ctx, "payroll/2024-03.xlsx")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPayrollJobs_MonthClose_CalculationFails(t *testing.T) {
	ctx := context.Background()
	svc := &fakePayrollService{calcErr: errors.New("database down")}
	jobs, files := newTestJobs(t, svc, time.Date(2024, 4, 1, 2, 0, 0, 0, time.UTC))

	err := jobs.MonthClose(ctx)

	assert.ErrorContains(t, err, "failed to calculate payroll")
	assert.Empty(t, svc.exported)
	exists, err := files.Exists(ctx, "payroll/2024-03.xlsx")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPayrollJobs_RegisterJobs(t *testing.T) {
	svc := &fakePayrollService{}
	jobs, _ := newTestJobs(t, svc, time.Date(2024, 4, 1, 2, 0, 0, 0, time.UTC))
	s := NewScheduler()

	jobs.RegisterJobs(s, time.Hour)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Len(t, svc.exported, 1)
}
