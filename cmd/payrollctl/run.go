package main

import (
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/payroll-engine-go/internal/domain/payroll"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatXLSX = "xlsx"
)

func newRunCmd() *cobra.Command {
	var (
		month  int
		year   int
		format string
		out    string
		ids    []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Calculate the payroll of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatXLSX {
				return fmt.Errorf("%w: %q", payroll.ErrUnsupportedFormat, format)
			}
			if format == formatXLSX && len(ids) > 0 {
				return fmt.Errorf("--employee cannot be combined with --format %s", formatXLSX)
			}
			req := payroll.CalculatePayrollRequest{Month: month, Year: year, EmployeeIDs: ids}
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
			defer closeOut()

			if format == formatXLSX {
				return svc.ExportWorkbook(cmd.Context(), req.Period(), w)
			}

			result, err := svc.CalculateMonthlyPayroll(cmd.Context(), req)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "Payroll month (1-12)")
	cmd.Flags().IntVar(&year, "year", 0, "Payroll year")
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	cmd.Flags().StringSliceVar(&ids, "employee", nil, "Restrict the run to these employee IDs (json only)")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}
