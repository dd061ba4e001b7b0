package main

import (
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/spf13/cobra"
)

func newPayslipCmd() *cobra.Command {
	var (
		employeeID string
		month      int
		year       int
		out        string
	)

	cmd := &cobra.Command{
		Use:   "payslip",
		Short: "Render one employee's payslip as PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := payroll.CalculatePayrollRequest{Month: month, Year: year}
			if err := req.Validate(); err != nil {
				return err
			}

			svc, closeDB, err := openService(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			w, closeOut, err := outputFile(cmd, out)
			if err != nil {
				return err
			}
			if err := svc.GeneratePayslipPDF(cmd.Context(), employeeID, req.Period(), w); err != nil {
				_ = closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return fmt.Errorf("failed to write payslip: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "Employee ID")
	cmd.Flags().IntVar(&month, "month", 0, "Payroll month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "Payroll year")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}
