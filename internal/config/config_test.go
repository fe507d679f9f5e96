package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Auth.Mode != ModeOAuth {
		t.Errorf("Auth.Mode: got %q, want %q", cfg.Auth.Mode, ModeOAuth)
	}
	if cfg.Auth.CredentialsFile != "credentials.json" {
		t.Errorf("CredentialsFile: got %q", cfg.Auth.CredentialsFile)
	}
	if cfg.Auth.TokenFile != "token.json" {
		t.Errorf("TokenFile: got %q", cfg.Auth.TokenFile)
	}
	if cfg.Server.Transport != "stdio" {
		t.Errorf("Transport: got %q", cfg.Server.Transport)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Port: got %d", cfg.Server.Port)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("MCP_TRANSPORT", "streamable-http")
	t.Setenv("DRIVE_MCP_TOKEN_FILE", "/env/token.json")

	cfg, err := Load([]string{"--transport", "stdio", "--token", "/flag/token.json"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Transport != "stdio" {
		t.Errorf("Transport: got %q, want flag value", cfg.Server.Transport)
	}
	if cfg.Auth.TokenFile != "/flag/token.json" {
		t.Errorf("TokenFile: got %q, want flag value", cfg.Auth.TokenFile)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	settings := `
auth:
  mode: service-account
  service_account_file: /etc/drive-mcp/key.json
server:
  transport: streamable-http
  port: 9000
log_level: debug
enabled_services:
  - drive
`
	if err := os.WriteFile(path, []byte(settings), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Auth.Mode != ModeServiceAccount {
		t.Errorf("Auth.Mode: got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.ServiceAccountFile != "/etc/drive-mcp/key.json" {
		t.Errorf("ServiceAccountFile: got %q", cfg.Auth.ServiceAccountFile)
	}
	if cfg.Server.Transport != "streamable-http" {
		t.Errorf("Transport: got %q", cfg.Server.Transport)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port: got %d", cfg.Server.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
	if len(cfg.EnabledServices) != 1 || cfg.EnabledServices[0] != "drive" {
		t.Errorf("EnabledServices: got %v", cfg.EnabledServices)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want env value", cfg.LogLevel)
	}
}

func TestLoadInvalidAuthMode(t *testing.T) {
	if _, err := Load([]string{"--auth-mode", "adc"}); err == nil {
		t.Fatal("expected error for unknown auth mode")
	}
}

func TestLoadInvalidTransport(t *testing.T) {
	if _, err := Load([]string{"--transport", "websocket"}); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestLoadToolsFlag(t *testing.T) {
	cfg, err := Load([]string{"--tools", "drive, docs"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.EnabledServices) != 2 || cfg.EnabledServices[0] != "drive" || cfg.EnabledServices[1] != "docs" {
		t.Errorf("EnabledServices: got %v", cfg.EnabledServices)
	}
}
