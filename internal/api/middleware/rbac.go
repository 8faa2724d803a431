package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyshare/materials-api/internal/api/metrics"
	"github.com/studyshare/materials-api/internal/core/domain"
)

// RequireAdmin enforces the admin role on routes already behind Auth.
// An absent identity is an authentication failure (401); a present identity
// with an insufficient role is an authorization failure (403).
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues("missing_identity").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if identity.Role != domain.RoleAdmin {
				metrics.AuthFailuresTotal.WithLabelValues("not_admin").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}
