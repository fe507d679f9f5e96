package middleware

import (
	"fmt"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestHandleGoogleAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantNil     bool
		wantContain string
	}{
		{
			name:    "nil error returns nil",
			err:     nil,
			wantNil: true,
		},
		{
			name:        "400 bad request",
			err:         &googleapi.Error{Code: 400, Message: "invalid query"},
			wantContain: "bad request",
		},
		{
			name:        "401 auth expired",
			err:         &googleapi.Error{Code: 401, Message: "token expired"},
			wantContain: "authentication expired",
		},
		{
			name:        "403 permission denied",
			err:         &googleapi.Error{Code: 403, Message: "insufficient scope"},
			wantContain: "permission denied",
		},
		{
			name:        "404 not found",
			err:         &googleapi.Error{Code: 404, Message: "file not found"},
			wantContain: "resource not found",
		},
		{
			name:        "429 rate limit",
			err:         &googleapi.Error{Code: 429, Message: "quota exceeded"},
			wantContain: "rate limit",
		},
		{
			name:        "503 server error",
			err:         &googleapi.Error{Code: 503, Message: "backend unavailable"},
			wantContain: "transient",
		},
		{
			name:        "unknown code passes detail through",
			err:         &googleapi.Error{Code: 418, Message: "teapot"},
			wantContain: "teapot",
		},
		{
			name:        "non-google error returned unchanged",
			err:         fmt.Errorf("plain failure"),
			wantContain: "plain failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandleGoogleAPIError(tt.err)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(got.Error(), tt.wantContain) {
				t.Errorf("error %q does not contain %q", got.Error(), tt.wantContain)
			}
		})
	}
}
