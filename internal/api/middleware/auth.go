package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/oakmart/storefront-api/internal/core/domain"
	"github.com/oakmart/storefront-api/internal/core/ports"
)

// Context keys set by Auth and read by RBAC and the handlers.
const (
	PrincipalKey = "principal"
	RoleKey      = "role"
)

// Auth validates the bearer token and injects the principal into context.
// Verification is delegated to the credential service, so middleware and
// token issuance share one signing contract.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			principal, err := verifier.VerifyToken(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(PrincipalKey, *principal)
			c.Set(RoleKey, principal.Role)

			return next(c)
		}
	}
}

// GetPrincipal extracts the principal stowed by Auth. The second return is
// false when Auth did not run on this route.
func GetPrincipal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	return p, ok
}
