package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Authenticator reports whether a validated user is logged in.
type Authenticator interface {
	Authenticated() bool
}

// Guard lets authenticated sessions through and sends everyone else to
// loginPath with a 303.
func Guard(session Authenticator, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !session.Authenticated() {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}
