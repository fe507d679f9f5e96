package drive

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/evert/google-drive-mcp-go/internal/middleware"
	"github.com/evert/google-drive-mcp-go/internal/pkg/response"
	"github.com/evert/google-drive-mcp-go/internal/pkg/validate"
	"github.com/evert/google-drive-mcp-go/internal/services"
)

// --- list_files ---

type ListFilesInput struct {
	FolderID  string `json:"folder_id,omitempty" jsonschema_description:"Folder ID to list files from (default: root)"`
	PageSize  int64  `json:"page_size,omitempty" jsonschema_description:"Number of files per page (default 50, max 100)"`
	PageToken string `json:"page_token,omitempty" jsonschema_description:"Token for pagination (from previous response)"`
	MimeType  string `json:"mime_type,omitempty" jsonschema_description:"Filter by MIME type (e.g. 'application/vnd.google-apps.document')"`
}

type ListFilesOutput struct {
	Files         []FileSummary `json:"files"`
	NextPageToken string        `json:"next_page_token,omitempty"`
	ResultCount   int           `json:"result_count"`
}

func createListFilesHandler(provider *services.Provider) mcp.ToolHandlerFor[ListFilesInput, ListFilesOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListFilesInput) (*mcp.CallToolResult, ListFilesOutput, error) {
		if input.FolderID != "" {
			if err := validate.DriveID(input.FolderID); err != nil {
				return nil, ListFilesOutput{}, err
			}
		}
		if input.MimeType != "" {
			if err := validate.MimeType(input.MimeType); err != nil {
				return nil, ListFilesOutput{}, err
			}
		}

		srv, err := provider.Drive(ctx)
		if err != nil {
			return nil, ListFilesOutput{}, err
		}

		call := srv.Files.List().
			Q(buildListQuery(input.FolderID, input.MimeType)).
			PageSize(clampPageSize(input.PageSize)).
			Fields(listFields).
			Context(ctx)
		if input.PageToken != "" {
			call = call.PageToken(input.PageToken)
		}

		result, err := call.Do()
		if err != nil {
			// Listing failures propagate to the framework's error channel.
			return nil, ListFilesOutput{}, middleware.HandleGoogleAPIError(err)
		}

		files := make([]FileSummary, 0, len(result.Files))
		for _, f := range result.Files {
			files = append(files, fileToSummary(f))
		}

		rb := response.New()
		writeFileList(rb, result.Files, result.NextPageToken)

		output := ListFilesOutput{
			Files:         files,
			NextPageToken: result.NextPageToken,
			ResultCount:   len(files),
		}
		return rb.TextResult(), output, nil
	}
}

// --- search_files ---

type SearchFilesInput struct {
	Query     string `json:"query" jsonschema:"required" jsonschema_description:"Drive search query (e.g. 'name contains \"report\"')"`
	PageSize  int64  `json:"page_size,omitempty" jsonschema_description:"Number of files per page (default 50, max 100)"`
	PageToken string `json:"page_token,omitempty" jsonschema_description:"Token for pagination (from previous response)"`
}

type SearchFilesOutput struct {
	Files         []FileSummary `json:"files"`
	Query         string        `json:"query"`
	NextPageToken string        `json:"next_page_token,omitempty"`
	ResultCount   int           `json:"result_count"`
}

func createSearchFilesHandler(provider *services.Provider) mcp.ToolHandlerFor[SearchFilesInput, SearchFilesOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchFilesInput) (*mcp.CallToolResult, SearchFilesOutput, error) {
		srv, err := provider.Drive(ctx)
		if err != nil {
			return nil, SearchFilesOutput{}, err
		}

		call := srv.Files.List().
			Q(buildSearchQuery(input.Query)).
			PageSize(clampPageSize(input.PageSize)).
			Fields(listFields).
			Context(ctx)
		if input.PageToken != "" {
			call = call.PageToken(input.PageToken)
		}

		result, err := call.Do()
		if err != nil {
			return nil, SearchFilesOutput{}, middleware.HandleGoogleAPIError(err)
		}

		files := make([]FileSummary, 0, len(result.Files))
		for _, f := range result.Files {
			files = append(files, fileToSummary(f))
		}

		rb := response.New()
		rb.Line("Search results for: %s", input.Query)
		writeFileList(rb, result.Files, result.NextPageToken)

		output := SearchFilesOutput{
			Files:         files,
			Query:         input.Query,
			NextPageToken: result.NextPageToken,
			ResultCount:   len(files),
		}
		return rb.TextResult(), output, nil
	}
}
