package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestTokenStore_MissingFileIsEmpty(t *testing.T) {
	s := NewTokenStore(filepath.Join(t.TempDir(), "state.json"), "token")

	token, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "" {
		t.Errorf("token = %q, want empty", token)
	}
}

func TestTokenStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s := NewTokenStore(path, "token")

	if err := s.Save(ctx, "T1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}

	// A fresh store on the same path sees the token, like a restarted process.
	token, err := NewTokenStore(path, "token").Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "T1" {
		t.Errorf("token = %q, want T1", token)
	}

	if err := s.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if token, _ := s.Load(ctx); token != "" {
		t.Errorf("token after delete = %q", token)
	}
}

func TestTokenStore_DeleteKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"token":"T1","theme":"dark"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := NewTokenStore(path, "token").Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var state map[string]string
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatal(err)
	}
	if _, ok := state["token"]; ok {
		t.Error("token key still present")
	}
	if state["theme"] != "dark" {
		t.Errorf("theme = %q, want dark", state["theme"])
	}
}

func TestTokenStore_DeleteWithoutFile(t *testing.T) {
	s := NewTokenStore(filepath.Join(t.TempDir(), "state.json"), "token")
	if err := s.Delete(context.Background()); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestTokenStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenStore(path, "token").Load(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}

func TestTokenStore_Ping(t *testing.T) {
	dir := t.TempDir()
	if err := NewTokenStore(filepath.Join(dir, "sub", "state.json"), "token").Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}

	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := NewTokenStore(filepath.Join(blocker, "state.json"), "token").Ping(context.Background()); err == nil {
		t.Error("expected error when the state dir is a file")
	}
}
