package session

import (
	"errors"
	"testing"
)

func TestLoadWithoutSession(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Load()
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Load() error = %v, want ErrNotLoggedIn", err)
	}
}

func TestSaveLoadClear(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	s := Session{
		ServerURL:    "http://localhost:8082/api/v1",
		WebSocketURL: "ws://localhost:8082/api/v1/ws",
		Token:        "token-abc",
		UserID:       7,
		Username:     "ana",
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if loaded != s {
		t.Errorf("Load() = %+v, want %+v", loaded, s)
	}

	if err := Clear(); err != nil {
		t.Fatalf("Clear() returned error: %v", err)
	}
	if _, err := Load(); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Load() after Clear error = %v, want ErrNotLoggedIn", err)
	}

	// Clearing twice is fine
	if err := Clear(); err != nil {
		t.Errorf("second Clear() returned error: %v", err)
	}
}
