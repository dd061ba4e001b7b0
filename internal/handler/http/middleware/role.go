package middleware

import (
	"net/http"
	"slices"

	"github.com/cmlabs-hris/payroll-engine-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

const (
	RolePayrollAdmin  = "payroll_admin"
	RolePayrollViewer = "payroll_viewer"
)

// RequireRole lets the request through only when the token carries one of
// the given roles.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, response.ErrAccessDenied)
				return
			}

			role, ok := claims["role"].(string)
			if !ok || !slices.Contains(roles, role) {
				response.HandleError(w, response.ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
