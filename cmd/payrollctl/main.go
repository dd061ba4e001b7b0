package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine-go/internal/repository/postgresql"
	payrollService "github.com/cmlabs-hris/payroll-engine-go/internal/service/payroll"
	"github.com/spf13/cobra"
)

const appVersion = "1.0.0"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "payrollctl",
		Short:        "Run payroll calculations against the payroll database",
		SilenceUsage: true,
	}
	cmd.Version = appVersion
	cmd.SetOut(out)

	cmd.AddCommand(newRunCmd(), newPayslipCmd(), newTokenCmd())
	return cmd
}

// openService wires the payroll service the same way the API does. The
// returned func releases the database pool.
func openService(ctx context.Context) (payroll.PayrollService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	svc := payrollService.NewPayrollService(postgresql.NewPayrollRepository(db), cfg.App.Workers)
	return svc, db.Close, nil
}

// outputFile returns the command output when path is empty.
func outputFile(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}
