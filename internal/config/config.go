// Package config loads server configuration from an optional YAML settings
// file, environment variables, and CLI flags — in that order of precedence
// (flags win).
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Auth modes.
const (
	ModeOAuth          = "oauth"
	ModeServiceAccount = "service-account"
)

// Config holds all server configuration.
type Config struct {
	Auth struct {
		// Mode selects the credential strategy: "oauth" (token file with
		// interactive consent and refresh) or "service-account".
		Mode string
		// CredentialsFile is the OAuth client-secret JSON path.
		CredentialsFile string
		// TokenFile is the cached OAuth token path.
		TokenFile string
		// ServiceAccountFile is the service-account key JSON path.
		ServiceAccountFile string
	}
	Server struct {
		Transport string
		Host      string
		Port      int
	}
	LogLevel        string
	EnabledServices []string
}

// Load reads configuration from the given CLI arguments (usually
// os.Args[1:]), the environment, and an optional YAML settings file named
// by --config or DRIVE_MCP_CONFIG_FILE.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.Auth.Mode = ModeOAuth
	cfg.Auth.CredentialsFile = "credentials.json"
	cfg.Auth.TokenFile = "token.json"
	cfg.Auth.ServiceAccountFile = "service_account.json"
	cfg.Server.Transport = "stdio"
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8000
	cfg.LogLevel = "info"

	fs := flag.NewFlagSet("google-drive-mcp", flag.ContinueOnError)
	var (
		configFile     = fs.String("config", "", "Path to a YAML settings file")
		transport      = fs.String("transport", "", "Transport mode: stdio or streamable-http")
		authMode       = fs.String("auth-mode", "", "Credential mode: oauth or service-account")
		credentials    = fs.String("credentials", "", "OAuth client-secret JSON path")
		tokenFile      = fs.String("token", "", "Cached OAuth token path")
		serviceAccount = fs.String("service-account", "", "Service-account key JSON path")
		toolsFlag      = fs.String("tools", "", "Services to enable (comma-separated): drive,docs")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Settings file first — env and flags override it.
	file := *configFile
	if file == "" {
		file = os.Getenv("DRIVE_MCP_CONFIG_FILE")
	}
	if file != "" {
		if err := applyFile(cfg, file); err != nil {
			return nil, err
		}
	}

	// Environment variables.
	applyEnv(&cfg.Auth.Mode, "DRIVE_MCP_AUTH_MODE")
	applyEnv(&cfg.Auth.CredentialsFile, "DRIVE_MCP_CREDENTIALS_FILE")
	applyEnv(&cfg.Auth.TokenFile, "DRIVE_MCP_TOKEN_FILE")
	applyEnv(&cfg.Auth.ServiceAccountFile, "DRIVE_MCP_SERVICE_ACCOUNT_FILE")
	applyEnv(&cfg.Server.Transport, "MCP_TRANSPORT")
	applyEnv(&cfg.Server.Host, "DRIVE_MCP_HOST")
	applyEnv(&cfg.LogLevel, "LOG_LEVEL")

	if portStr := os.Getenv("MCP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", portStr, err)
		}
		cfg.Server.Port = port
	}

	if svcEnv := os.Getenv("ENABLED_SERVICES"); svcEnv != "" {
		cfg.EnabledServices = splitList(svcEnv)
	}

	// CLI flags override env vars.
	if *transport != "" {
		cfg.Server.Transport = *transport
	}
	if *authMode != "" {
		cfg.Auth.Mode = *authMode
	}
	if *credentials != "" {
		cfg.Auth.CredentialsFile = *credentials
	}
	if *tokenFile != "" {
		cfg.Auth.TokenFile = *tokenFile
	}
	if *serviceAccount != "" {
		cfg.Auth.ServiceAccountFile = *serviceAccount
	}
	if *toolsFlag != "" {
		cfg.EnabledServices = splitList(*toolsFlag)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.Mode {
	case ModeOAuth, ModeServiceAccount:
	default:
		return fmt.Errorf("unknown auth mode %q — use %q or %q", c.Auth.Mode, ModeOAuth, ModeServiceAccount)
	}
	switch c.Server.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("unknown transport %q — use 'stdio' or 'streamable-http'", c.Server.Transport)
	}
	return nil
}

func applyEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
