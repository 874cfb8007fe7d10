package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LoadingState reports whether the session is still being restored.
type LoadingState interface {
	Loading() bool
}

type loadingResponse struct {
	Status string `json:"status"`
}

// LoadingGate answers 503 with a loading placeholder until the session has
// been restored, so no view renders against a half-initialised session.
func LoadingGate(state LoadingState) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if state.Loading() {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, loadingResponse{Status: "loading"})
			}
			return next(c)
		}
	}
}
