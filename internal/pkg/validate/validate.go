package validate

import (
	"fmt"
	"regexp"
)

// driveIDRE matches valid Google Drive file/folder IDs.
// Drive IDs are alphanumeric with hyphens and underscores, typically 25-60 chars,
// plus the special "root" literal.
var driveIDRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,128}$`)

// DriveID validates that the given string is a safe Google Drive resource ID.
// This prevents query injection when IDs are interpolated into Drive API queries.
func DriveID(id string) error {
	if !driveIDRE.MatchString(id) {
		return fmt.Errorf("invalid Drive resource ID %q — expected alphanumeric characters, hyphens, and underscores", id)
	}
	return nil
}

// mimeTypeRE matches type/subtype MIME strings, including Google's
// vnd.google-apps.* vendor tree.
var mimeTypeRE = regexp.MustCompile(`^[a-zA-Z0-9!#$&^_.+-]+/[a-zA-Z0-9!#$&^_.+-]+$`)

// MimeType validates that the given string is a plausible MIME type.
// Like DriveID, this guards the Drive query string against injection.
func MimeType(mimeType string) error {
	if len(mimeType) > 255 {
		return fmt.Errorf("MIME type too long (max 255 characters)")
	}
	if !mimeTypeRE.MatchString(mimeType) {
		return fmt.Errorf("invalid MIME type %q — expected type/subtype", mimeType)
	}
	return nil
}
