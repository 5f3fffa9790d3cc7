package doc2xhtml

import (
	"log/slog"
	"maps"

	"github.com/alnah/go-doc2xhtml/internal/pipeline"
)

// Option configures an Expander.
type Option func(*Expander)

// expanderConfig holds the settings resolved by NewExpander.
type expanderConfig struct {
	assetPath   string
	style       string // Style name, or path to a stylesheet
	templateSet string
	sourceExt   string
	outputExt   string
	paragraphs  bool
	kindLabels  map[string]string
	logger      *slog.Logger
}

// Default file extensions for sources and outputs.
const (
	DefaultSourceExt = pipeline.DefaultSourceExt
	DefaultOutputExt = pipeline.DefaultOutputExt
)

// WithAssetPath loads styles and template sets from a custom directory,
// falling back to the built-in assets for names it does not provide.
func WithAssetPath(path string) Option {
	return func(e *Expander) {
		e.cfg.assetPath = path
	}
}

// WithAssetLoader uses a custom asset backend. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(e *Expander) {
		e.loader = loader
	}
}

// WithStyle selects the tag dictionary: a style name ("plain") or a path
// to a stylesheet ("./docs/manual.css").
func WithStyle(nameOrPath string) Option {
	return func(e *Expander) {
		e.cfg.style = nameOrPath
	}
}

// WithTemplateSet selects the header and footer templates by name.
func WithTemplateSet(name string) Option {
	return func(e *Expander) {
		e.cfg.templateSet = name
	}
}

// WithExtensions sets the source and output file extensions, each starting
// with a dot. An empty value keeps the default.
func WithExtensions(source, output string) Option {
	return func(e *Expander) {
		if source != "" {
			e.cfg.sourceExt = source
		}
		if output != "" {
			e.cfg.outputExt = output
		}
	}
}

// WithParagraphs sets whether paragraph inference starts enabled in each
// file. The para-gen directive still toggles it.
func WithParagraphs(enabled bool) Option {
	return func(e *Expander) {
		e.cfg.paragraphs = enabled
	}
}

// WithKindLabels adds or replaces header labels for document kind codes.
// "UM" and "FAQ" are defined by default.
func WithKindLabels(labels map[string]string) Option {
	return func(e *Expander) {
		maps.Copy(e.cfg.kindLabels, labels)
	}
}

// WithLogger sets the logger for progress events. The default discards them.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) {
		if logger != nil {
			e.cfg.logger = logger
		}
	}
}
