package auth

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ServiceAccountAuthenticator implements the non-interactive credential mode.
// The credential is derived fresh from the key file each process start —
// no refresh or persistence logic.
type ServiceAccountAuthenticator struct {
	// KeyPath is the service-account key JSON path.
	KeyPath string

	// Scopes requested for the service account. Defaults to Scopes when empty.
	Scopes []string
}

// Authenticate reads the key file and returns its token source.
func (a *ServiceAccountAuthenticator) Authenticate(ctx context.Context) (oauth2.TokenSource, error) {
	scopes := a.Scopes
	if len(scopes) == 0 {
		scopes = Scopes
	}

	data, err := os.ReadFile(a.KeyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrServiceAccountFileMissing, a.KeyPath)
		}
		return nil, fmt.Errorf("reading service account file %s: %w", a.KeyPath, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing service account file %s: %w", a.KeyPath, err)
	}
	return creds.TokenSource, nil
}
