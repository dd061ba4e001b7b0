package validator

import (
	"regexp"
	"strconv"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// ParseInt reads a required numeric query value, recording a validation
// error under field when it is missing or not a number.
func ParseInt(errs *ValidationErrors, field, value string) int {
	if IsEmpty(value) {
		*errs = append(*errs, ValidationError{Field: field, Message: "is required"})
		return 0
	}
	if !IsNumeric(value) {
		*errs = append(*errs, ValidationError{Field: field, Message: "must be a number"})
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, ValidationError{Field: field, Message: "is out of range"})
		return 0
	}
	return n
}
