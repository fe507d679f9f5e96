// Package registry wires tool packages onto the MCP server.
package registry

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-drive-mcp-go/internal/config"
	"github.com/evert/google-drive-mcp-go/internal/services"
	authtools "github.com/evert/google-drive-mcp-go/internal/tools/auth"
	"github.com/evert/google-drive-mcp-go/internal/tools/docs"
	"github.com/evert/google-drive-mcp-go/internal/tools/drive"
)

// toolNameRE enforces SEP-986: tool names must match ^[a-zA-Z0-9_-]{1,64}$
var toolNameRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateToolName checks that a tool name complies with SEP-986.
func ValidateToolName(name string) error {
	if !toolNameRE.MatchString(name) {
		return fmt.Errorf("tool name %q does not match SEP-986 pattern ^[a-zA-Z0-9_-]{1,64}$", name)
	}
	return nil
}

// serviceEnabled returns true if the service is enabled (or no filter is set).
func serviceEnabled(cfg *config.Config, service string) bool {
	if len(cfg.EnabledServices) == 0 {
		return true
	}
	for _, s := range cfg.EnabledServices {
		if s == service {
			return true
		}
	}
	return false
}

// RegisterAll registers all tool packages with the server, applying the
// service filter. Each service package exposes Register(server, provider)
// which adds its tools.
func RegisterAll(server *mcp.Server, provider *services.Provider, cfg *config.Config) {
	slog.Info("registering tools", "services", cfg.EnabledServices)

	if serviceEnabled(cfg, "drive") {
		drive.Register(server, provider)
		slog.Info("registered service", "service", "drive")
	}
	if serviceEnabled(cfg, "docs") {
		docs.Register(server, provider)
		slog.Info("registered service", "service", "docs")
	}

	// The status tool is always available; it reads only local state.
	authtools.Register(server, provider, cfg)
	slog.Info("registered service", "service", "auth")
}
