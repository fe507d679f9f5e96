package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-drive-mcp-go/internal/auth"
	"github.com/evert/google-drive-mcp-go/internal/config"
	"github.com/evert/google-drive-mcp-go/internal/middleware"
	"github.com/evert/google-drive-mcp-go/internal/registry"
	"github.com/evert/google-drive-mcp-go/internal/services"
)

func main() {
	// Structured logging to stderr (stdout is reserved for MCP stdio transport)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := run(ctx, logger); err != nil {
		cancel()
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
	cancel()
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Set log level from config
	switch cfg.LogLevel {
	case "debug":
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	case "warn":
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	case "error":
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	}

	// Select the credential strategy
	var authenticator auth.Authenticator
	switch cfg.Auth.Mode {
	case config.ModeServiceAccount:
		authenticator = &auth.ServiceAccountAuthenticator{
			KeyPath: cfg.Auth.ServiceAccountFile,
			Scopes:  auth.Scopes,
		}
	default:
		authenticator = &auth.OAuthAuthenticator{
			CredentialsPath: cfg.Auth.CredentialsFile,
			TokenPath:       cfg.Auth.TokenFile,
			Scopes:          auth.Scopes,
		}
	}

	provider := services.NewProvider(authenticator)

	// Authenticate up front so credential problems surface at startup, not
	// on the first tool call. The interactive consent flow (when needed)
	// prints its URL to stderr.
	if err := provider.Authenticate(ctx); err != nil {
		switch {
		case errors.Is(err, auth.ErrCredentialsFileMissing):
			return fmt.Errorf("%w — download an OAuth client-secret JSON from the Google Cloud console and save it as %s", err, cfg.Auth.CredentialsFile)
		case errors.Is(err, auth.ErrServiceAccountFileMissing):
			return fmt.Errorf("%w — save a service-account key JSON as %s", err, cfg.Auth.ServiceAccountFile)
		default:
			return fmt.Errorf("authenticating: %w", err)
		}
	}
	slog.Info("authenticated", "mode", cfg.Auth.Mode)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "google-drive-mcp",
		Version: "1.0.0",
	}, nil)

	server.AddReceivingMiddleware(
		middleware.LoggingMiddleware(logger),
	)

	registry.RegisterAll(server, provider, cfg)

	slog.Info("starting Google Drive MCP server", "transport", cfg.Server.Transport)

	switch cfg.Server.Transport {
	case "stdio":
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
			return fmt.Errorf("stdio server error: %w", err)
		}

	case "streamable-http":
		mcpHandler := mcp.NewStreamableHTTPHandler(
			func(r *http.Request) *mcp.Server { return server },
			nil,
		)

		mux := http.NewServeMux()
		mux.Handle("/mcp", mcpHandler)

		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		httpServer := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			slog.Info("shutting down HTTP server")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("HTTP server shutdown error", "error", err)
			}
		}()

		slog.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("HTTP server error: %w", err)
		}

	default:
		return fmt.Errorf("unknown transport %q — use 'stdio' or 'streamable-http'", cfg.Server.Transport)
	}

	return nil
}
