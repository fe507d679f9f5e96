package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSettings mirrors the YAML settings file layout.
type fileSettings struct {
	Auth struct {
		Mode               string `yaml:"mode"`
		CredentialsFile    string `yaml:"credentials_file"`
		TokenFile          string `yaml:"token_file"`
		ServiceAccountFile string `yaml:"service_account_file"`
	} `yaml:"auth"`
	Server struct {
		Transport string `yaml:"transport"`
		Host      string `yaml:"host"`
		Port      int    `yaml:"port"`
	} `yaml:"server"`
	LogLevel        string   `yaml:"log_level"`
	EnabledServices []string `yaml:"enabled_services"`
}

// applyFile overlays settings from a YAML file onto cfg. Absent fields keep
// their current values.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading settings file %s: %w", path, err)
	}

	var fs fileSettings
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return fmt.Errorf("parsing settings file %s: %w", path, err)
	}

	if fs.Auth.Mode != "" {
		cfg.Auth.Mode = fs.Auth.Mode
	}
	if fs.Auth.CredentialsFile != "" {
		cfg.Auth.CredentialsFile = fs.Auth.CredentialsFile
	}
	if fs.Auth.TokenFile != "" {
		cfg.Auth.TokenFile = fs.Auth.TokenFile
	}
	if fs.Auth.ServiceAccountFile != "" {
		cfg.Auth.ServiceAccountFile = fs.Auth.ServiceAccountFile
	}
	if fs.Server.Transport != "" {
		cfg.Server.Transport = fs.Server.Transport
	}
	if fs.Server.Host != "" {
		cfg.Server.Host = fs.Server.Host
	}
	if fs.Server.Port != 0 {
		cfg.Server.Port = fs.Server.Port
	}
	if fs.LogLevel != "" {
		cfg.LogLevel = fs.LogLevel
	}
	if len(fs.EnabledServices) > 0 {
		cfg.EnabledServices = fs.EnabledServices
	}
	return nil
}
