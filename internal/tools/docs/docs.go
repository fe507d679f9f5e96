// Package docs implements the read_document and write_document MCP tools.
//
// Both tools flatten the Docs content tree to plain text with extractText.
// Unlike the Drive tools, remote failures here are caught and rendered as
// prefixed text ("Error reading document: ...", "Error writing to
// document: ...") so a calling model sees the failure inline.
package docs

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-drive-mcp-go/internal/pkg/ptr"
	"github.com/evert/google-drive-mcp-go/internal/services"
)

var serviceIcons = []mcp.Icon{{
	Source:   "https://www.gstatic.com/images/branding/product/1x/docs_2020q4_48dp.png",
	MIMEType: "image/png",
	Sizes:    []string{"48x48"},
}}

// Register registers the Docs tools with the MCP server.
func Register(server *mcp.Server, provider *services.Provider) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_document",
		Icons:       serviceIcons,
		Description: "Read the text content of a Google Doc, with character-offset pagination and optional tab selection.",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Read Google Doc",
			ReadOnlyHint:  true,
			OpenWorldHint: ptr.Bool(true),
		},
	}, createReadDocumentHandler(provider))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "write_document",
		Icons:       serviceIcons,
		Description: "Write text to a Google Doc: replace a character range, or insert at an offset (default: end of document).",
		Annotations: &mcp.ToolAnnotations{
			Title:         "Write Google Doc",
			OpenWorldHint: ptr.Bool(true),
		},
	}, createWriteDocumentHandler(provider))
}
