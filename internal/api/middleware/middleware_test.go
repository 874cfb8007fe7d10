package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubSession struct {
	authenticated bool
	loading       bool
}

func (s stubSession) Authenticated() bool { return s.authenticated }
func (s stubSession) Loading() bool       { return s.loading }

func run(t *testing.T, mw echo.MiddlewareFunc) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestGuard_Authenticated(t *testing.T) {
	rec, called := run(t, Guard(stubSession{authenticated: true}, "/login"))
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_RedirectsAnonymous(t *testing.T) {
	rec, called := run(t, Guard(stubSession{}, "/login"))
	if called {
		t.Fatalf("next should not be called")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestLoadingGate_Placeholder(t *testing.T) {
	rec, called := run(t, LoadingGate(stubSession{loading: true}))
	if called {
		t.Fatalf("next should not be called while loading")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"loading"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoadingGate_PassesWhenReady(t *testing.T) {
	_, called := run(t, LoadingGate(stubSession{}))
	if !called {
		t.Fatalf("next not called")
	}
}

// A session that is still loading never reaches the guard, so an anonymous
// visitor sees the placeholder rather than a redirect.
func TestLoadingGate_BeforeGuard(t *testing.T) {
	s := stubSession{loading: true}
	gate, guard := LoadingGate(s), Guard(s, "/login")
	rec, called := run(t, func(next echo.HandlerFunc) echo.HandlerFunc {
		return gate(guard(next))
	})
	if called || rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("called=%v code=%d", called, rec.Code)
	}
}
