package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple name", "default", nil},
		{"name with hyphen", "user-manual", nil},
		{"name with underscore", "user_manual", nil},
		{"mixed case with digits", "Manual2", nil},
		{"at length limit", strings.Repeat("a", maxAssetNameLength), nil},

		{"empty name", "", ErrInvalidAssetName},
		{"too long", strings.Repeat("a", maxAssetNameLength+1), ErrInvalidAssetName},
		{"forward slash", "path/to/style", ErrInvalidAssetName},
		{"backslash", `path\to\style`, ErrInvalidAssetName},
		{"parent traversal", "..", ErrInvalidAssetName},
		{"extension", "default.css", ErrInvalidAssetName},
		{"space", "my style", ErrInvalidAssetName},
		{"null byte", "style\x00", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
