package docs

import (
	"fmt"
	"strings"

	docspb "google.golang.org/api/docs/v1"

	"github.com/evert/google-drive-mcp-go/internal/pkg/response"
)

const (
	// DefaultReadLength is used when the caller omits length.
	DefaultReadLength = 5000
	// MaxReadLength is the hard ceiling; larger requests are silently clamped.
	MaxReadLength = 10000
)

// pageDelimiter separates the header and any continuation hint from the
// document slice in read_document output.
var pageDelimiter = strings.Repeat("=", 50)

// clampReadLength applies the default and the ceiling.
func clampReadLength(length int64) int64 {
	if length == 0 {
		length = DefaultReadLength
	}
	if length > MaxReadLength {
		length = MaxReadLength
	}
	return length
}

// extractText flattens a content tree to plain text: a deterministic,
// order-preserving, depth-first concatenation of all text runs. Section
// breaks contribute exactly one newline; any other element kind (including
// ones this package does not know about) contributes nothing.
func extractText(elements []*docspb.StructuralElement) string {
	var sb strings.Builder
	writeText(&sb, elements)
	return sb.String()
}

func writeText(sb *strings.Builder, elements []*docspb.StructuralElement) {
	for _, elem := range elements {
		switch {
		case elem.Paragraph != nil:
			for _, pe := range elem.Paragraph.Elements {
				if pe.TextRun != nil {
					sb.WriteString(pe.TextRun.Content)
				}
			}
		case elem.Table != nil:
			for _, row := range elem.Table.TableRows {
				for _, cell := range row.TableCells {
					writeText(sb, cell.Content)
				}
			}
		case elem.SectionBreak != nil:
			sb.WriteByte('\n')
		}
	}
}

// findTab scans the top-level tab list for a matching tab ID.
func findTab(tabs []*docspb.Tab, tabID string) *docspb.Tab {
	for _, tab := range tabs {
		if tab.TabProperties != nil && tab.TabProperties.TabId == tabID {
			return tab
		}
	}
	return nil
}

// tabIDs returns the IDs of all top-level tabs, for the tab-not-found message.
func tabIDs(tabs []*docspb.Tab) []string {
	ids := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab.TabProperties != nil && tab.TabProperties.TabId != "" {
			ids = append(ids, tab.TabProperties.TabId)
		} else {
			ids = append(ids, "main")
		}
	}
	return ids
}

// tabContent returns a tab's content tree, nil-safe.
func tabContent(tab *docspb.Tab) []*docspb.StructuralElement {
	if tab.DocumentTab == nil || tab.DocumentTab.Body == nil {
		return nil
	}
	return tab.DocumentTab.Body.Content
}

// bodyContent returns the main document content tree, nil-safe.
func bodyContent(doc *docspb.Document) []*docspb.StructuralElement {
	if doc.Body == nil {
		return nil
	}
	return doc.Body.Content
}

// endOffset resolves "end of the content tree": the end index of the last
// top-level structural element, or 1 for an empty tree (index 0 holds the
// immutable initial section break, so 1 is the first writable offset).
func endOffset(elements []*docspb.StructuralElement) int64 {
	if len(elements) == 0 {
		return 1
	}
	last := elements[len(elements)-1]
	if last.EndIndex == 0 {
		return 1
	}
	return last.EndIndex
}

// buildReplaceRequests builds the replace-mode batch: delete [start, end)
// first, then insert at start. The order matters — the insert offset is
// valid only against the text that still includes the deleted range's start.
func buildReplaceRequests(start, end int64, content string) []*docspb.Request {
	return []*docspb.Request{
		{
			DeleteContentRange: &docspb.DeleteContentRangeRequest{
				Range: &docspb.Range{
					StartIndex: start,
					EndIndex:   end,
				},
			},
		},
		{
			InsertText: &docspb.InsertTextRequest{
				Text: content,
				Location: &docspb.Location{
					Index: start,
				},
			},
		},
	}
}

// buildInsertRequests builds the single insert-mode request.
func buildInsertRequests(index int64, content string) []*docspb.Request {
	return []*docspb.Request{
		{
			InsertText: &docspb.InsertTextRequest{
				Text: content,
				Location: &docspb.Location{
					Index: index,
				},
			},
		},
	}
}

// formatDocumentPage renders one read_document page from the flattened
// text. Offsets are character (rune) offsets. Returns the formatted page,
// or the beyond-length message when startIndex is past the end.
func formatDocumentPage(title, tabID, text string, startIndex, length int64) string {
	runes := []rune(text)
	total := int64(len(runes))

	if startIndex >= total {
		return fmt.Sprintf("Start index %d is beyond document length (%d characters)", startIndex, total)
	}
	if startIndex < 0 {
		startIndex = 0
	}

	endIndex := startIndex + length
	if endIndex > total {
		endIndex = total
	}
	if endIndex < startIndex {
		endIndex = startIndex
	}

	rb := response.New()
	rb.Line("Document: %s", title)
	if tabID != "" {
		rb.Line("Tab: %s", tabID)
	}
	rb.Line("Content (%d-%d of %d characters):", startIndex, endIndex, total)
	rb.Line("%s", pageDelimiter)
	rb.Line("%s", string(runes[startIndex:endIndex]))

	if endIndex < total {
		rb.Line("%s", pageDelimiter)
		rb.Line("More content available. Use start_index=%d to continue.", endIndex)
	}
	return rb.Build()
}

// documentTitle returns the document title, defaulting like the Docs UI.
func documentTitle(doc *docspb.Document) string {
	if doc.Title == "" {
		return "Untitled"
	}
	return doc.Title
}
