package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"reelrank/internal/auth"
)

const bearerPrefix = "Bearer "

// requireAuth guards mutating history routes with a bearer token checked
// against the configured bcrypt hash. An empty hash disables the guard.
func (s *Server) requireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s.opts.APITokenHash == "" {
				return next(c)
			}

			token, found := bearerToken(c)
			if !found {
				return unauthorizedResponse(c)
			}
			if !auth.VerifyToken(token, s.opts.APITokenHash) {
				return unauthorizedResponse(c)
			}

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}

func unauthorizedResponse(c echo.Context) error {
	return fail(c, http.StatusUnauthorized, "Authentication required", nil)
}
