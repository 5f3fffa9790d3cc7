package assets

import (
	"fmt"
	"regexp"
)

// maxAssetNameLength bounds style and template set names.
const maxAssetNameLength = 64

// assetNamePattern allows letters, digits, hyphen, and underscore only.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName for empty or overlong names and for names with
// anything besides letters, digits, hyphen, or underscore.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > maxAssetNameLength {
		return fmt.Errorf("%w: name longer than %d chars", ErrInvalidAssetName, maxAssetNameLength)
	}
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
