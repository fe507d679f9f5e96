package docs

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	docspb "google.golang.org/api/docs/v1"

	"github.com/evert/google-drive-mcp-go/internal/pkg/validate"
	"github.com/evert/google-drive-mcp-go/internal/services"
)

// textResult wraps a plain string as a text tool result. Docs tool failures
// are reported this way rather than through the handler error channel, so
// the caller always receives the formatted message as ordinary content.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// --- read_document ---

type ReadDocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"required" jsonschema_description:"The ID of the Google Doc to read"`
	StartIndex int64  `json:"start_index,omitempty" jsonschema_description:"Character offset to start reading from (default 0)"`
	Length     int64  `json:"length,omitempty" jsonschema_description:"Number of characters to read (default 5000, max 10000)"`
	TabID      string `json:"tab_id,omitempty" jsonschema_description:"Tab ID to read from (default: main document body)"`
}

type ReadDocumentOutput struct {
	DocumentID  string `json:"document_id"`
	Title       string `json:"title,omitempty"`
	TabID       string `json:"tab_id,omitempty"`
	StartIndex  int64  `json:"start_index"`
	EndIndex    int64  `json:"end_index"`
	TotalLength int64  `json:"total_length"`
	HasMore     bool   `json:"has_more"`
}

func createReadDocumentHandler(provider *services.Provider) mcp.ToolHandlerFor[ReadDocumentInput, ReadDocumentOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ReadDocumentInput) (*mcp.CallToolResult, ReadDocumentOutput, error) {
		if err := validate.DriveID(input.DocumentID); err != nil {
			return textResult(fmt.Sprintf("Error reading document: %v", err)), ReadDocumentOutput{}, nil
		}

		srv, err := provider.Docs(ctx)
		if err != nil {
			return textResult(fmt.Sprintf("Error reading document: %v", err)), ReadDocumentOutput{}, nil
		}

		doc, err := srv.Documents.Get(input.DocumentID).
			IncludeTabsContent(true).
			Context(ctx).
			Do()
		if err != nil {
			return textResult(fmt.Sprintf("Error reading document: %v", err)), ReadDocumentOutput{}, nil
		}

		var text string
		if input.TabID != "" {
			tab := findTab(doc.Tabs, input.TabID)
			if tab == nil {
				msg := fmt.Sprintf("Tab '%s' not found. Available tabs: %s",
					input.TabID, strings.Join(tabIDs(doc.Tabs), ", "))
				return textResult(msg), ReadDocumentOutput{}, nil
			}
			text = extractText(tabContent(tab))
		} else {
			text = extractText(bodyContent(doc))
		}

		length := clampReadLength(input.Length)
		page := formatDocumentPage(documentTitle(doc), input.TabID, text, input.StartIndex, length)

		total := int64(utf8.RuneCountInString(text))
		endIndex := input.StartIndex + length
		if endIndex > total {
			endIndex = total
		}

		output := ReadDocumentOutput{
			DocumentID:  input.DocumentID,
			Title:       documentTitle(doc),
			TabID:       input.TabID,
			StartIndex:  input.StartIndex,
			EndIndex:    endIndex,
			TotalLength: total,
			HasMore:     endIndex < total,
		}
		return textResult(page), output, nil
	}
}

// --- write_document ---

type WriteDocumentInput struct {
	DocumentID   string `json:"document_id" jsonschema:"required" jsonschema_description:"The ID of the Google Doc to write to"`
	Content      string `json:"content" jsonschema:"required" jsonschema_description:"The text content to write"`
	ReplaceStart *int64 `json:"replace_start,omitempty" jsonschema_description:"Start of the range to replace (requires replace_end)"`
	ReplaceEnd   *int64 `json:"replace_end,omitempty" jsonschema_description:"End of the range to replace (requires replace_start)"`
	InsertIndex  *int64 `json:"insert_index,omitempty" jsonschema_description:"Offset to insert at (default: end of document)"`
	TabID        string `json:"tab_id,omitempty" jsonschema_description:"Tab ID to write to (default: main document body)"`
}

type WriteDocumentOutput struct {
	DocumentID   string `json:"document_id"`
	Title        string `json:"title,omitempty"`
	Operation    string `json:"operation,omitempty"`
	CharsWritten int64  `json:"chars_written"`
}

func createWriteDocumentHandler(provider *services.Provider) mcp.ToolHandlerFor[WriteDocumentInput, WriteDocumentOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input WriteDocumentInput) (*mcp.CallToolResult, WriteDocumentOutput, error) {
		if err := validate.DriveID(input.DocumentID); err != nil {
			return textResult(fmt.Sprintf("Error writing to document: %v", err)), WriteDocumentOutput{}, nil
		}

		srv, err := provider.Docs(ctx)
		if err != nil {
			return textResult(fmt.Sprintf("Error writing to document: %v", err)), WriteDocumentOutput{}, nil
		}

		// The document is fetched first in every mode: the title feeds the
		// success message, and insert mode may need the current end offset.
		doc, err := srv.Documents.Get(input.DocumentID).
			IncludeTabsContent(true).
			Context(ctx).
			Do()
		if err != nil {
			return textResult(fmt.Sprintf("Error writing to document: %v", err)), WriteDocumentOutput{}, nil
		}

		var (
			requests  []*docspb.Request
			operation string
		)
		if input.ReplaceStart != nil && input.ReplaceEnd != nil {
			start, end := *input.ReplaceStart, *input.ReplaceEnd
			requests = buildReplaceRequests(start, end, input.Content)
			operation = fmt.Sprintf("Replaced content from index %d to %d", start, end)
		} else {
			var index int64
			switch {
			case input.InsertIndex != nil:
				index = *input.InsertIndex
			case input.TabID != "":
				tab := findTab(doc.Tabs, input.TabID)
				if tab == nil {
					return textResult(fmt.Sprintf("Tab '%s' not found", input.TabID)), WriteDocumentOutput{}, nil
				}
				index = endOffset(tabContent(tab))
			default:
				index = endOffset(bodyContent(doc))
			}
			requests = buildInsertRequests(index, input.Content)
			operation = fmt.Sprintf("Inserted content at index %d", index)
		}

		_, err = srv.Documents.BatchUpdate(input.DocumentID, &docspb.BatchUpdateDocumentRequest{
			Requests: requests,
		}).Context(ctx).Do()
		if err != nil {
			return textResult(fmt.Sprintf("Error writing to document: %v", err)), WriteDocumentOutput{}, nil
		}

		written := int64(utf8.RuneCountInString(input.Content))
		msg := fmt.Sprintf("Successfully wrote to document '%s'. %s. %d characters written.",
			documentTitle(doc), operation, written)

		output := WriteDocumentOutput{
			DocumentID:   input.DocumentID,
			Title:        documentTitle(doc),
			Operation:    operation,
			CharsWritten: written,
		}
		return textResult(msg), output, nil
	}
}
