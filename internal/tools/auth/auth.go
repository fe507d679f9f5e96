// Package auth implements the auth_status MCP tool, which reports the
// configured credential mode and the state of the credential files without
// touching the Google APIs.
package auth

import (
	"context"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-drive-mcp-go/internal/config"
	"github.com/evert/google-drive-mcp-go/internal/pkg/response"
	"github.com/evert/google-drive-mcp-go/internal/services"
)

var serviceIcons = []mcp.Icon{{
	Source:   "https://www.gstatic.com/images/branding/product/1x/googleg_48dp.png",
	MIMEType: "image/png",
	Sizes:    []string{"48x48"},
}}

// Register registers the auth_status tool with the MCP server.
func Register(server *mcp.Server, provider *services.Provider, cfg *config.Config) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "auth_status",
		Icons:       serviceIcons,
		Description: "Report the server's Google authentication status: credential mode, credential file locations, and whether a session is active.",
		Annotations: &mcp.ToolAnnotations{
			Title:        "Authentication Status",
			ReadOnlyHint: true,
		},
	}, createStatusHandler(provider, cfg))
}

type StatusInput struct{}

type StatusOutput struct {
	Mode          string `json:"mode"`
	Authenticated bool   `json:"authenticated"`
}

func createStatusHandler(provider *services.Provider, cfg *config.Config) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		rb := response.New()
		rb.Header("Authentication Status")
		rb.KeyValue("Mode", cfg.Auth.Mode)
		rb.KeyValue("Authenticated", boolWord(provider.Authenticated()))
		rb.Blank()

		switch cfg.Auth.Mode {
		case config.ModeServiceAccount:
			rb.KeyValue("Service account key", fileState(cfg.Auth.ServiceAccountFile))
		default:
			rb.KeyValue("Client secret", fileState(cfg.Auth.CredentialsFile))
			rb.KeyValue("Cached token", fileState(cfg.Auth.TokenFile))
		}

		output := StatusOutput{
			Mode:          cfg.Auth.Mode,
			Authenticated: provider.Authenticated(),
		}
		return rb.TextResult(), output, nil
	}
}

func fileState(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path + " (missing)"
	}
	return path
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
