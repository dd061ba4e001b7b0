package main

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		userID     string
		role       string
		secret     string
		expiration string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for the payroll API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET_KEY")
			}
			if secret == "" {
				return fmt.Errorf("--secret or JWT_SECRET_KEY is required")
			}

			token, expiresAt, err := jwt.NewJWTService(secret, expiration).GenerateAccessToken(userID, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %d\n", expiresAt)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID placed in the token")
	cmd.Flags().StringVar(&role, "role", "payroll_admin", "Role claim: payroll_admin or payroll_viewer")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret (default JWT_SECRET_KEY)")
	cmd.Flags().StringVar(&expiration, "expires-in", "1h", "Token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
