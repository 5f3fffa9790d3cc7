package main

import (
	"errors"
	"os"

	doc2xhtml "github.com/alnah/go-doc2xhtml"
	"github.com/alnah/go-doc2xhtml/internal/config"
)

// Exit codes for doc2xhtml CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful expansion
	ExitGeneral = 1 // General/unexpected error, duplicate anchors
	ExitUsage   = 2 // Invalid flags, config, or assets
	ExitIO      = 3 // Missing pages, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Duplicate anchors are content errors (exit 1)
	if errors.Is(err, doc2xhtml.ErrDuplicateAnchor) {
		return ExitGeneral
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, doc2xhtml.ErrMissingInclude) ||
		errors.Is(err, doc2xhtml.ErrTOCNotFound) ||
		errors.Is(err, doc2xhtml.ErrInvalidDirectory) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidKind) ||
		errors.Is(err, config.ErrInvalidExt) ||
		errors.Is(err, doc2xhtml.ErrStyleNotFound) ||
		errors.Is(err, doc2xhtml.ErrTemplateSetNotFound) ||
		errors.Is(err, doc2xhtml.ErrIncompleteTemplateSet) ||
		errors.Is(err, doc2xhtml.ErrInvalidAssetPath) ||
		errors.Is(err, doc2xhtml.ErrInvalidExtension) ||
		errors.Is(err, doc2xhtml.ErrSameDirectory) ||
		errors.Is(err, doc2xhtml.ErrSameFile) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrNoOutputDir) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
