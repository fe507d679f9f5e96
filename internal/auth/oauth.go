package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuthAuthenticator implements the interactive/refreshable credential mode.
//
// Authenticate loads the token file if present; a valid token is used as-is,
// an expired token with a refresh secret is refreshed in place, and anything
// else triggers an interactive consent flow that requires the client-secret
// file. Every successful mint or refresh is written back to the token file.
type OAuthAuthenticator struct {
	// CredentialsPath is the OAuth client-secret JSON downloaded from the
	// Google Cloud Console ("installed" application type).
	CredentialsPath string

	// TokenPath is where the serialized oauth2.Token is cached.
	TokenPath string

	// Scopes requested during consent. Defaults to Scopes when empty.
	Scopes []string
}

// Authenticate establishes the credential and returns a refresh-capable,
// file-persisting token source.
func (a *OAuthAuthenticator) Authenticate(ctx context.Context) (oauth2.TokenSource, error) {
	scopes := a.Scopes
	if len(scopes) == 0 {
		scopes = Scopes
	}

	token, err := LoadToken(a.TokenPath)
	if err != nil {
		return nil, err
	}

	conf, confErr := a.loadClientSecret(scopes)

	if token != nil && token.Valid() {
		if confErr != nil {
			// No client secret available; the access token still works
			// until it expires, it just cannot be refreshed.
			slog.Warn("client-secret file unavailable, token refresh disabled",
				"path", a.CredentialsPath,
			)
			return oauth2.StaticTokenSource(token), nil
		}
		return a.persistingSource(conf, token), nil
	}

	if token != nil && token.RefreshToken != "" {
		if confErr != nil {
			return nil, confErr
		}
		refreshed, err := conf.TokenSource(ctx, token).Token()
		if err != nil {
			return nil, fmt.Errorf("refreshing token: %w", err)
		}
		if err := SaveToken(a.TokenPath, refreshed); err != nil {
			return nil, err
		}
		slog.Info("refreshed OAuth token", "path", a.TokenPath)
		return a.persistingSource(conf, refreshed), nil
	}

	// No usable token: run the interactive consent flow.
	if confErr != nil {
		return nil, confErr
	}
	token, err = runConsentFlow(ctx, conf)
	if err != nil {
		return nil, err
	}
	if err := SaveToken(a.TokenPath, token); err != nil {
		return nil, err
	}
	slog.Info("stored OAuth token", "path", a.TokenPath)
	return a.persistingSource(conf, token), nil
}

func (a *OAuthAuthenticator) loadClientSecret(scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(a.CredentialsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s — download it from the Google Cloud Console",
				ErrCredentialsFileMissing, a.CredentialsPath)
		}
		return nil, fmt.Errorf("reading credentials file %s: %w", a.CredentialsPath, err)
	}

	conf, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials file %s: %w", a.CredentialsPath, err)
	}
	return conf, nil
}

func (a *OAuthAuthenticator) persistingSource(conf *oauth2.Config, token *oauth2.Token) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(token, &persistingTokenSource{
		base:            conf.TokenSource(context.Background(), token),
		path:            a.TokenPath,
		lastAccessToken: token.AccessToken,
	})
}

// runConsentFlow runs the authorization-code flow against a loopback redirect
// on an ephemeral local port. The authorization URL is printed to stderr
// (stdout belongs to the MCP stdio transport).
func runConsentFlow(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("starting loopback listener: %w", err)
	}
	defer listener.Close()

	flowConf := *conf
	flowConf.RedirectURL = fmt.Sprintf("http://%s/oauth/callback", listener.Addr())

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	type callback struct {
		code string
		err  error
	}
	results := make(chan callback, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if errMsg := r.URL.Query().Get("error"); errMsg != "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, consentPage("Authentication failed", errMsg))
			results <- callback{err: fmt.Errorf("consent flow denied: %s", errMsg)}
			return
		}
		if r.URL.Query().Get("state") != state {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, consentPage("Authentication failed", "State mismatch."))
			results <- callback{err: fmt.Errorf("consent flow state mismatch")}
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, consentPage("Authentication failed", "No authorization code received."))
			results <- callback{err: fmt.Errorf("consent flow returned no authorization code")}
			return
		}

		fmt.Fprint(w, consentPage("Authentication successful", "You can close this window."))
		results <- callback{code: code}
	})

	srv := &http.Server{Handler: mux}
	go srv.Serve(listener)
	defer srv.Close()

	authURL := flowConf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Visit the following URL to authorize access:\n%s\n", authURL)
	slog.Info("waiting for OAuth consent", "redirect", flowConf.RedirectURL)

	select {
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		token, err := flowConf.Exchange(ctx, res.code)
		if err != nil {
			return nil, fmt.Errorf("exchanging auth code: %w", err)
		}
		return token, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func randomState() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generating state: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}

func consentPage(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%s</title></head>
<body style="font-family: system-ui, sans-serif; text-align: center; padding: 48px;">
  <h1>%s</h1>
  <p>%s</p>
</body>
</html>`, title, title, message)
}
