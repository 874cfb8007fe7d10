package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kivusafe/portal/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"invalid credentials", fmt.Errorf("login: %w", domain.ErrInvalidCredentials), http.StatusUnauthorized, "invalid credentials"},
		{"no token", domain.ErrAuthenticationFailed, http.StatusUnauthorized, "authentication failed: no token received"},
		{"invalid token", fmt.Errorf("login: fetch user data: %w", domain.ErrInvalidToken), http.StatusUnauthorized, "invalid or expired token"},
		{"transport", fmt.Errorf("login: %w: dial", domain.ErrTransport), http.StatusBadGateway, "remote service error"},
		{"remote status", &domain.RemoteError{Op: "reports", StatusCode: 500}, http.StatusBadGateway, "remote service error"},
		{"submission", fmt.Errorf("report: %w", domain.ErrSubmissionFailed), http.StatusBadGateway, "submission failed"},
		{"format", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, "doc"), http.StatusBadRequest, `unsupported export format: "doc"`},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"client gone", fmt.Errorf("reports: %w", context.Canceled), statusClientClosedRequest, "client closed request"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tt.msg {
				t.Errorf("message = %q, want %q", resp.Error, tt.msg)
			}
		})
	}
}

func TestHTTPErrorHandler_CancelledRequestIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	h := NewHTTPErrorHandler(zerolog.New(&buf).Level(zerolog.InfoLevel))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)

	h(fmt.Errorf("login: %w", context.Canceled), c)

	if rec.Code != statusClientClosedRequest {
		t.Fatalf("expected %d, got %d", statusClientClosedRequest, rec.Code)
	}
	if buf.Len() != 0 {
		t.Errorf("cancelled request must not be logged as a failure, got %s", buf.String())
	}
}
