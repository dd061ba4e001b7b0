package payroll

import "errors"

var (
	ErrInvalidPeriod     = errors.New("invalid payroll period")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrPieceNotFound     = errors.New("piece not found in catalog")
	ErrUnknownAttendance = errors.New("unknown monthly attendance type")
	ErrReportNotFound    = errors.New("payroll report not found")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
