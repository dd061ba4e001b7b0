package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	out, err := execute(t, "token", "--user", "ops-1", "--secret", "cli-secret")
	require.NoError(t, err)

	token := strings.TrimSpace(out)
	decoded, err := jwtauth.VerifyToken(jwt.NewJWTService("cli-secret", "1h").JWTAuth(), token)
	require.NoError(t, err)
	role, ok := decoded.Get("role")
	require.True(t, ok)
	assert.Equal(t, "payroll_admin", role)
}

func TestTokenCommand_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := execute(t, "token", "--user", "ops-1")

	assert.ErrorContains(t, err, "JWT_SECRET_KEY is required")
}

func TestRunCommand_RejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "run", "--month", "3", "--year", "2024", "--format", "csv")

	assert.ErrorIs(t, err, payroll.ErrUnsupportedFormat)
}

func TestRunCommand_RejectsEmployeeFilterForWorkbook(t *testing.T) {
	_, err := execute(t, "run", "--month", "3", "--year", "2024", "--format", "xlsx", "--employee", "m1")

	assert.ErrorContains(t, err, "--employee cannot be combined with --format xlsx")
}

func TestRunCommand_ValidatesPeriodBeforeConnecting(t *testing.T) {
	_, err := execute(t, "run", "--month", "13", "--year", "2024")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "month")
}

func TestPayslipCommand_RequiresEmployee(t *testing.T) {
	_, err := execute(t, "payslip", "--month", "3", "--year", "2024")

	assert.ErrorContains(t, err, "employee")
}
