// Package auth obtains and persists the Google credential used by the Drive
// and Docs service handles. Two authenticators are provided: an interactive
// OAuth flow backed by a token file, and a non-interactive service-account
// key file. The deployment mode picks one at startup.
package auth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// Sentinel errors for missing credential material. Both abort startup —
// no tool handler catches them.
var (
	// ErrCredentialsFileMissing indicates the OAuth client-secret file does
	// not exist at the configured path.
	ErrCredentialsFileMissing = errors.New("credentials file not found")

	// ErrServiceAccountFileMissing indicates the service-account key file
	// does not exist at the configured path.
	ErrServiceAccountFileMissing = errors.New("service account file not found")
)

// Authenticator establishes a bearer credential and returns a token source
// the service handles can use. Implementations are selected by deployment
// mode, not by runtime branching on data.
type Authenticator interface {
	Authenticate(ctx context.Context) (oauth2.TokenSource, error)
}
