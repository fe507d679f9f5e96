package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
)

// LoadToken reads a serialized oauth2.Token from the given file.
// Returns (nil, nil) when the file does not exist — the caller decides
// whether a missing token means "mint a new one" or "fail".
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading token from %s: %w", path, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parsing token from %s: %w", path, err)
	}
	return &token, nil
}

// SaveToken persists a token as JSON with 0600 permissions. Called after
// every successful mint or refresh.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshaling token: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing token to %s: %w", path, err)
	}
	return nil
}

// persistingTokenSource wraps an oauth2.TokenSource to write refreshed
// tokens back to the token file. It tracks the last known access token so
// it only touches disk when the token actually changes.
type persistingTokenSource struct {
	base oauth2.TokenSource
	path string

	mu              sync.Mutex
	lastAccessToken string
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	changed := token.AccessToken != p.lastAccessToken
	if changed {
		p.lastAccessToken = token.AccessToken
	}
	p.mu.Unlock()

	if changed {
		if err := SaveToken(p.path, token); err != nil {
			return nil, fmt.Errorf("persisting refreshed token: %w", err)
		}
	}
	return token, nil
}
