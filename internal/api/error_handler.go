package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kivusafe/portal/internal/core/domain"
)

// statusClientClosedRequest is the non-standard code proxies log when the
// client disconnects before the answer is ready.
const statusClientClosedRequest = 499

// errorResponse is the envelope of every error answer: {"error": "<message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler maps domain errors to status codes and renders them in
// the error envelope. Anything unrecognised is logged and reported as a 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// The browser went away; nobody reads the answer.
	if errors.Is(err, context.Canceled) {
		log.Debug().Str("path", c.Path()).Msg("request cancelled by client")
		return statusClientClosedRequest, "client closed request"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return http.StatusUnauthorized, domain.ErrAuthenticationFailed.Error()
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, domain.ErrInvalidToken.Error()
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, domain.ErrNotAuthenticated.Error()
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrSubmissionFailed):
		return http.StatusBadGateway, domain.ErrSubmissionFailed.Error()
	case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrUnexpectedStatus):
		log.Warn().Err(err).Str("path", c.Path()).Msg("remote API failure")
		return http.StatusBadGateway, "remote service error"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
