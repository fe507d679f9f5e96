package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestOAuthAuthenticatorMissingCredentialsFile(t *testing.T) {
	dir := t.TempDir()
	a := &OAuthAuthenticator{
		CredentialsPath: filepath.Join(dir, "credentials.json"),
		TokenPath:       filepath.Join(dir, "token.json"),
	}

	_, err := a.Authenticate(context.Background())
	if err == nil {
		t.Fatal("expected error when no token and no credentials file exist")
	}
	if !errors.Is(err, ErrCredentialsFileMissing) {
		t.Errorf("expected ErrCredentialsFileMissing, got %v", err)
	}
}

func TestOAuthAuthenticatorValidTokenWithoutClientSecret(t *testing.T) {
	// A valid cached token is usable even when the client-secret file is
	// gone — refresh is just disabled.
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	token := &oauth2.Token{
		AccessToken: "still-valid",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}
	if err := SaveToken(tokenPath, token); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	a := &OAuthAuthenticator{
		CredentialsPath: filepath.Join(dir, "credentials.json"),
		TokenPath:       tokenPath,
	}

	ts, err := a.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	got, err := ts.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got.AccessToken != "still-valid" {
		t.Errorf("AccessToken: got %q, want %q", got.AccessToken, "still-valid")
	}
}

func TestOAuthAuthenticatorExpiredTokenWithoutClientSecret(t *testing.T) {
	// An expired token with a refresh secret needs the client-secret file
	// to refresh; without it the credentials-missing error surfaces.
	dir := t.TempDir()
	tokenPath := filepath.Join(dir, "token.json")
	token := &oauth2.Token{
		AccessToken:  "expired",
		RefreshToken: "refresh-789",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-time.Hour),
	}
	if err := SaveToken(tokenPath, token); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	a := &OAuthAuthenticator{
		CredentialsPath: filepath.Join(dir, "credentials.json"),
		TokenPath:       tokenPath,
	}

	_, err := a.Authenticate(context.Background())
	if !errors.Is(err, ErrCredentialsFileMissing) {
		t.Errorf("expected ErrCredentialsFileMissing, got %v", err)
	}
}

func TestServiceAccountAuthenticatorMissingKeyFile(t *testing.T) {
	a := &ServiceAccountAuthenticator{
		KeyPath: filepath.Join(t.TempDir(), "service-account.json"),
	}

	_, err := a.Authenticate(context.Background())
	if !errors.Is(err, ErrServiceAccountFileMissing) {
		t.Errorf("expected ErrServiceAccountFileMissing, got %v", err)
	}
}
