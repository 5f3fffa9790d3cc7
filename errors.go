package doc2xhtml

import (
	"errors"

	"github.com/alnah/go-doc2xhtml/internal/pipeline"
)

// Sentinel errors for expansion runs.
var (
	ErrDuplicateAnchor  = pipeline.ErrDuplicateAnchor
	ErrMissingInclude   = pipeline.ErrMissingInclude
	ErrGenerateCycle    = pipeline.ErrGenerateCycle
	ErrTOCNotFound      = pipeline.ErrTOCNotFound
	ErrInvalidDirectory = pipeline.ErrInvalidInputDir
	ErrSameDirectory    = pipeline.ErrSameDirectory
	ErrSameFile         = pipeline.ErrSameFile
	ErrNavRender        = pipeline.ErrNavRender

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
	ErrInvalidExtension      = errors.New("invalid file extension")
)

// DuplicateAnchorError reports an anchor id defined twice in one run.
// It matches ErrDuplicateAnchor with errors.Is.
type DuplicateAnchorError = pipeline.DuplicateAnchorError
