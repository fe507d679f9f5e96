package auth

// Scopes are the OAuth scopes required by the Drive and Docs tools.
// Full Drive access is needed for listing and search; full Documents
// access is needed for batch updates.
var Scopes = []string{
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/documents",
}
