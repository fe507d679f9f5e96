package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestLoadTokenMissingFile(t *testing.T) {
	token, err := LoadToken(filepath.Join(t.TempDir(), "token.json"))
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if token != nil {
		t.Fatalf("expected nil token for missing file, got %+v", token)
	}
}

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	token := &oauth2.Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
		Expiry:       time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := SaveToken(path, token); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	loaded, err := LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected token, got nil")
	}
	if loaded.AccessToken != token.AccessToken {
		t.Errorf("AccessToken: got %q, want %q", loaded.AccessToken, token.AccessToken)
	}
	if loaded.RefreshToken != token.RefreshToken {
		t.Errorf("RefreshToken: got %q, want %q", loaded.RefreshToken, token.RefreshToken)
	}
}

func TestSaveTokenPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := SaveToken(path, &oauth2.Token{AccessToken: "a"}); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file permissions: got %04o, want 0600", perm)
	}
}

func TestLoadTokenMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadToken(path); err == nil {
		t.Fatal("expected error for malformed token file")
	}
}

// staticSource returns a fixed token for persistingTokenSource tests.
type staticSource struct{ token *oauth2.Token }

func (s staticSource) Token() (*oauth2.Token, error) { return s.token, nil }

func TestPersistingTokenSourceWritesOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	refreshed := &oauth2.Token{AccessToken: "new-access", RefreshToken: "r"}

	src := &persistingTokenSource{
		base:            staticSource{token: refreshed},
		path:            path,
		lastAccessToken: "old-access",
	}

	if _, err := src.Token(); err != nil {
		t.Fatalf("Token: %v", err)
	}

	loaded, err := LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if loaded == nil || loaded.AccessToken != "new-access" {
		t.Fatalf("expected refreshed token persisted, got %+v", loaded)
	}
}

func TestPersistingTokenSourceSkipsUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	token := &oauth2.Token{AccessToken: "same"}

	src := &persistingTokenSource{
		base:            staticSource{token: token},
		path:            path,
		lastAccessToken: "same",
	}

	if _, err := src.Token(); err != nil {
		t.Fatalf("Token: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no token file for unchanged token, stat err = %v", err)
	}
}
