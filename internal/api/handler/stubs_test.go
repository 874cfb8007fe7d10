package handler

import (
	"context"
	"encoding/json"

	"github.com/labstack/echo/v4"

	"github.com/kivusafe/portal/internal/core/domain"
	"github.com/kivusafe/portal/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

type stubSession struct {
	loginFn  func(ctx context.Context, email, password string) error
	logoutFn func(ctx context.Context) error
	user     json.RawMessage
}

func (s *stubSession) Initialize(context.Context) {}

func (s *stubSession) Login(ctx context.Context, email, password string) error {
	return s.loginFn(ctx, email, password)
}

func (s *stubSession) Logout(ctx context.Context) error {
	if s.logoutFn == nil {
		s.user = nil
		return nil
	}
	return s.logoutFn(ctx)
}

func (s *stubSession) Session() domain.Session { return domain.Session{User: s.user} }
func (s *stubSession) User() (json.RawMessage, bool) { return s.user, len(s.user) > 0 }
func (s *stubSession) Token() string { return "" }
func (s *stubSession) Authenticated() bool { return len(s.user) > 0 }
func (s *stubSession) Loading() bool { return false }

func (s *stubSession) Ready() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type stubReportService struct {
	submitFn    func(ctx context.Context, in ports.SubmitReportInput) (string, error)
	dashboardFn func(ctx context.Context) (*ports.DashboardView, error)
	exportFn    func(ctx context.Context, format string) (*ports.ExportResult, error)
}

func (s *stubReportService) Submit(ctx context.Context, in ports.SubmitReportInput) (string, error) {
	return s.submitFn(ctx, in)
}

func (s *stubReportService) Dashboard(ctx context.Context) (*ports.DashboardView, error) {
	return s.dashboardFn(ctx)
}

func (s *stubReportService) Export(ctx context.Context, format string) (*ports.ExportResult, error) {
	return s.exportFn(ctx, format)
}

type stubRegistrationService struct {
	registerFn func(ctx context.Context, reg domain.Registration) error
}

func (s *stubRegistrationService) Register(ctx context.Context, reg domain.Registration) error {
	return s.registerFn(ctx, reg)
}
