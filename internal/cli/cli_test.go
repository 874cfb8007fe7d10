package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kivusafe/portal/internal/core/domain"
)

// fakeAPI answers the KivuSafe endpoints for one known account.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"token":"tok-1"}`)
	})
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"id":1,"email":"amani@example.com"}`)
	})
	mux.HandleFunc("GET /reports", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"category":"flood"},{"id":2,"category":"fire"},{"id":3,"category":"flood"}]`)
	})
	mux.HandleFunc("POST /report", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Idempotency-Key") == "" {
			t.Errorf("missing Idempotency-Key")
		}
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := RootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_SessionLifecycle(t *testing.T) {
	srv := fakeAPI(t)
	dir := t.TempDir()
	t.Setenv("API_BASE_URL", srv.URL)
	t.Setenv("TOKEN_STORE", "file")
	t.Setenv("TOKEN_FILE", filepath.Join(dir, "state.json"))
	t.Setenv("LOG_LEVEL", "error")

	if _, err := run(t, "whoami"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("whoami before login: expected ErrNotAuthenticated, got %v", err)
	}

	if _, err := run(t, "login", "--email", "amani@example.com", "--password", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("login with bad password: expected ErrInvalidCredentials, got %v", err)
	}

	out, err := run(t, "login", "--email", "amani@example.com", "--password", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Logged in as amani@example.com") {
		t.Fatalf("unexpected login output: %q", out)
	}

	// A separate invocation restores the session from the persisted token.
	out, err = run(t, "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, `"email": "amani@example.com"`) {
		t.Fatalf("unexpected whoami output: %q", out)
	}

	out, err = run(t, "reports", "summary")
	if err != nil {
		t.Fatalf("reports summary: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[1], "flood") || !strings.HasPrefix(lines[2], "fire") {
		t.Fatalf("unexpected summary:\n%s", out)
	}

	csvPath := filepath.Join(dir, "out.csv")
	if _, err := run(t, "reports", "export", "--format", "csv", "--out", csvPath); err != nil {
		t.Fatalf("reports export: %v", err)
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,name,email") {
		t.Fatalf("unexpected csv: %q", data)
	}

	out, err = run(t, "report", "submit", "--anonymous", "--description", "road flooded", "--category", "flood", "--lat", "-1.68", "--lng", "29.22")
	if err != nil {
		t.Fatalf("report submit: %v", err)
	}
	if !strings.Contains(out, "Report successfully submitted") {
		t.Fatalf("unexpected submit output: %q", out)
	}

	if _, err := run(t, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := run(t, "reports", "summary"); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("summary after logout: expected ErrNotAuthenticated, got %v", err)
	}
}

func TestCLI_ReportSubmitValidation(t *testing.T) {
	t.Setenv("TOKEN_FILE", filepath.Join(t.TempDir(), "state.json"))
	t.Setenv("LOG_LEVEL", "error")

	if _, err := run(t, "report", "submit", "--description", "x", "--category", "c", "--lat", "1"); err == nil {
		t.Fatal("expected error when only --lat is set")
	}
	if _, err := run(t, "report", "submit", "--description", "x", "--category", "c", "--date", "01/05/2024"); err == nil {
		t.Fatal("expected error for a malformed date")
	}
}

func TestCLI_RegisterValidationNamesFlags(t *testing.T) {
	t.Setenv("TOKEN_FILE", filepath.Join(t.TempDir(), "state.json"))
	t.Setenv("LOG_LEVEL", "error")

	_, err := run(t, "register",
		"--first-name", "Amani", "--last-name", "K", "--birth-date", "2000-01-02",
		"--sex", "x", "--city", "Goma", "--email", "amani@example.com", "--password", "123")
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"sex must be one of: M F", "password must be at least 6 characters"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not contain %q", msg, want)
		}
	}
	if strings.Contains(msg, "Key: ") {
		t.Errorf("raw validator output leaked: %q", msg)
	}
}

func TestReadPassword(t *testing.T) {
	var prompt bytes.Buffer
	pw, err := readPassword(strings.NewReader("hunter2\n"), &prompt)
	if err != nil || pw != "hunter2" {
		t.Fatalf("readPassword = %q, %v", pw, err)
	}
	if _, err := readPassword(strings.NewReader(""), &prompt); err == nil {
		t.Fatal("expected error for empty password")
	}
}
