// Package services builds and caches authenticated Google API service
// handles. At most one Drive handle and one Docs handle are constructed per
// process; first-time construction authenticates through the configured
// auth.Authenticator.
package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/evert/google-drive-mcp-go/internal/auth"
)

// Provider owns the credential and the memoized service handles.
// Initialization is guarded by a mutex so concurrent first calls cannot run
// duplicate auth flows or build duplicate handles.
type Provider struct {
	authenticator auth.Authenticator

	mu          sync.Mutex
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
	drive       *drive.Service
	docs        *docs.Service
}

// NewProvider creates a provider backed by the given authenticator.
func NewProvider(authenticator auth.Authenticator) *Provider {
	return &Provider{authenticator: authenticator}
}

// Authenticate eagerly establishes the credential. Called at startup so
// missing credential material fails the process before any tool runs.
func (p *Provider) Authenticate(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ensureClientLocked(ctx)
}

// ensureClientLocked establishes the token source and HTTP client if not
// done yet. Caller must hold p.mu.
//
// The HTTP client is built on context.Background() so it outlives any single
// request; individual API calls pass their own context via .Context(ctx).
func (p *Provider) ensureClientLocked(ctx context.Context) error {
	if p.httpClient != nil {
		return nil
	}

	if p.tokenSource == nil {
		ts, err := p.authenticator.Authenticate(ctx)
		if err != nil {
			return err
		}
		p.tokenSource = ts
	}

	p.httpClient = oauth2.NewClient(context.Background(), p.tokenSource)
	return nil
}

// Drive returns the cached Drive service handle, constructing it on first use.
func (p *Provider) Drive(ctx context.Context) (*drive.Service, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.drive != nil {
		return p.drive, nil
	}
	if err := p.ensureClientLocked(ctx); err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}

	srv, err := drive.NewService(ctx, option.WithHTTPClient(p.httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}
	p.drive = srv
	return srv, nil
}

// Docs returns the cached Docs service handle, constructing it on first use.
func (p *Provider) Docs(ctx context.Context) (*docs.Service, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.docs != nil {
		return p.docs, nil
	}
	if err := p.ensureClientLocked(ctx); err != nil {
		return nil, fmt.Errorf("docs service: %w", err)
	}

	srv, err := docs.NewService(ctx, option.WithHTTPClient(p.httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating docs service: %w", err)
	}
	p.docs = srv
	return srv, nil
}

// Authenticated reports whether a credential has been established.
func (p *Provider) Authenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tokenSource != nil
}
