package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TokenAuth returns an echo middleware that validates the authorization
// token from the request headers.
// If the token is missing or invalid, it responds with 401 Unauthorized.
// If valid, it calls the next handler. The health endpoint is always open.
func TokenAuth(validToken string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/health" {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			if header != validToken {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			return next(c)
		}
	}
}
