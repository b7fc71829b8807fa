package middleware

import (
	"net/http"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-hq/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminOnly restricts a route to admin and HR manager tokens. Close-out
// triggers and full-day listings are operational surfaces, not employee
// self-service.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Admin privilege required")
			return
		}
		switch employee.Role(role) {
		case employee.RoleAdmin, employee.RoleHRManager:
			next.ServeHTTP(w, r)
		default:
			response.Forbidden(w, "Admin privilege required")
		}
	})
}
