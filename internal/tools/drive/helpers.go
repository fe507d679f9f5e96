package drive

import (
	"fmt"
	"strings"

	drivepb "google.golang.org/api/drive/v3"

	"github.com/evert/google-drive-mcp-go/internal/pkg/response"
)

const (
	// DefaultPageSize is used when the caller omits page_size.
	DefaultPageSize = 50
	// MaxPageSize is the hard ceiling; larger requests are silently clamped.
	MaxPageSize = 100
)

// listFields names the file metadata requested from the Drive API.
const listFields = "nextPageToken, files(id, name, mimeType, modifiedTime, size, parents)"

// clampPageSize applies the default and the ceiling. No lower bound is
// enforced; the Drive API rejects non-positive sizes itself.
func clampPageSize(pageSize int64) int64 {
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageSize
}

// buildListQuery assembles the query for list_files: a parent-folder scope
// clause (defaulting to root), an optional MIME type clause, and the
// trashed filter.
func buildListQuery(folderID, mimeType string) string {
	parts := make([]string, 0, 3)
	if folderID == "" {
		folderID = "root"
	}
	parts = append(parts, fmt.Sprintf("'%s' in parents", folderID))
	if mimeType != "" {
		parts = append(parts, fmt.Sprintf("mimeType='%s'", mimeType))
	}
	parts = append(parts, "trashed=false")
	return strings.Join(parts, " and ")
}

// buildSearchQuery wraps the caller-supplied query and adds the trashed
// filter. The raw query is passed through verbatim.
func buildSearchQuery(query string) string {
	return fmt.Sprintf("(%s) and trashed=false", query)
}

// FileSummary is the structured form of one listed file.
type FileSummary struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MimeType     string   `json:"mime_type,omitempty"`
	ModifiedTime string   `json:"modified_time,omitempty"`
	Size         int64    `json:"size,omitempty"`
	Parents      []string `json:"parents,omitempty"`
}

func fileToSummary(f *drivepb.File) FileSummary {
	return FileSummary{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		ModifiedTime: f.ModifiedTime,
		Size:         f.Size,
		Parents:      f.Parents,
	}
}

// writeFileList formats the common page body: a count line, the next page
// token when present, and a 3-line block per file.
func writeFileList(rb *response.Builder, files []*drivepb.File, nextPageToken string) {
	rb.Line("Found %d files", len(files))
	if nextPageToken != "" {
		rb.Line("Next page token: %s", nextPageToken)
	}
	rb.Blank()

	for _, f := range files {
		rb.Line("- %s (ID: %s)", f.Name, f.Id)

		mimeType := f.MimeType
		if mimeType == "" {
			mimeType = "Unknown"
		}
		if f.Size > 0 {
			rb.Line("  Type: %s (%d bytes)", mimeType, f.Size)
		} else {
			rb.Line("  Type: %s", mimeType)
		}

		modified := f.ModifiedTime
		if modified == "" {
			modified = "Unknown"
		}
		rb.Line("  Modified: %s", modified)
		rb.Blank()
	}
}
