// Package drive implements the list_files and search_files MCP tools.
//
// Both tools build a Drive query string, issue one Files.List call, and
// return a formatted text page. Remote failures are not caught here — they
// surface through the handler error channel.
package drive

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-drive-mcp-go/internal/pkg/ptr"
	"github.com/evert/google-drive-mcp-go/internal/services"
)

var serviceIcons = []mcp.Icon{{
	Source:   "https://www.gstatic.com/images/branding/product/1x/drive_2020q4_48dp.png",
	MIMEType: "image/png",
	Sizes:    []string{"48x48"},
}}

// Register registers the Drive tools with the MCP server.
func Register(server *mcp.Server, provider *services.Provider) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_files",
		Icons:       serviceIcons,
		Description: "List files in Google Drive with optional folder filtering and pagination.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "List Drive Files",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, createListFilesHandler(provider))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_files",
		Icons:       serviceIcons,
		Description: "Search for files in Google Drive using Drive query syntax, with pagination.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Search Drive Files",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, createSearchFilesHandler(provider))
}
