package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/validator"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrAccessDenied = errors.New("access denied")
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, ErrAccessDenied):
		Forbidden(w, "Payroll access required")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrReportNotFound):
		NotFound(w, "Payroll report not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrUnsupportedFormat):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled request error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
