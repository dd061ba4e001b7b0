package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type PayrollHandler interface {
	// Runs
	Calculate(w http.ResponseWriter, r *http.Request)
	GetEmployeePayroll(w http.ResponseWriter, r *http.Request)
	GetAdvancesTotal(w http.ResponseWriter, r *http.Request)

	// Documents
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
	ExportWorkbook(w http.ResponseWriter, r *http.Request)
	DownloadReport(w http.ResponseWriter, r *http.Request)
	DeleteReport(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	files          storage.FileStorage
}

func NewPayrollHandler(payrollService payroll.PayrollService, files storage.FileStorage) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService, files: files}
}

// ========== RUNS ==========

func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CalculateMonthlyPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll calculated", result)
}

func (h *payrollHandlerImpl) GetEmployeePayroll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	period, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.CalculateEmployeePayroll(r.Context(), id, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetAdvancesTotal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	period, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetAdvancesTotal(r.Context(), id, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== DOCUMENTS ==========

func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	period, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.payrollService.GeneratePayslipPDF(r.Context(), id, period, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payslip-%s-%04d-%02d.pdf", id, period.Year, period.Month)
	writeFile(w, contentTypePDF, filename, buf.Bytes())
}

func (h *payrollHandlerImpl) ExportWorkbook(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.payrollService.ExportWorkbook(r.Context(), period, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payroll-%04d-%02d.xlsx", period.Year, period.Month)
	writeFile(w, contentTypeXLSX, filename, buf.Bytes())
}

// DownloadReport serves the workbook archived by the month close job.
func (h *payrollHandlerImpl) DownloadReport(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rc, err := h.files.Download(r.Context(), period.ReportPath())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = payroll.ErrReportNotFound
		}
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		response.HandleError(w, fmt.Errorf("failed to read stored report: %w", err))
		return
	}

	filename := fmt.Sprintf("payroll-%04d-%02d.xlsx", period.Year, period.Month)
	writeFile(w, contentTypeXLSX, filename, data)
}

// DeleteReport drops an archived workbook so the next month close run
// stores a fresh one.
func (h *payrollHandlerImpl) DeleteReport(w http.ResponseWriter, r *http.Request) {
	period, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.files.Delete(r.Context(), period.ReportPath()); err != nil {
		response.HandleError(w, fmt.Errorf("failed to delete stored report: %w", err))
		return
	}

	response.SuccessWithMessage(w, "Payroll report deleted", nil)
}

// ========== HELPERS ==========

func periodFromQuery(r *http.Request) (payroll.Period, error) {
	var errs validator.ValidationErrors
	q := r.URL.Query()
	period := payroll.Period{
		Month: validator.ParseInt(&errs, "month", q.Get("month")),
		Year:  validator.ParseInt(&errs, "year", q.Get("year")),
	}
	if len(errs) > 0 {
		return payroll.Period{}, errs
	}
	return period, nil
}

func writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	response.Attachment(w, contentType, filename, len(data))
	_, _ = w.Write(data)
}
