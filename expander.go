package doc2xhtml

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-doc2xhtml/internal/fileutil"
	"github.com/alnah/go-doc2xhtml/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.TagExpander = (*pipeline.TagDictionary)(nil)
	_ pipeline.NavRenderer = (*pipeline.TemplateNavRenderer)(nil)
)

// Result summarizes one expansion run.
type Result struct {
	Files    []string      // Output files written, in completion order
	Headings int           // Headings numbered
	Anchors  int           // Distinct anchor ids defined
	Duration time.Duration // Wall time of the run
}

// Expander expands documentation trees. Create with NewExpander.
// An Expander holds no per-run state and may be reused; concurrent runs
// must not write to the same output directory.
type Expander struct {
	cfg    expanderConfig
	loader AssetLoader
	engine *pipeline.Expander
}

// NewExpander creates an Expander with the built-in style and templates.
// Use options to customize behavior (e.g., WithStyle, WithAssetPath).
// Returns error if assets cannot be loaded or templates fail to parse.
func NewExpander(opts ...Option) (*Expander, error) {
	e := &Expander{
		cfg: expanderConfig{
			style:       DefaultStyle,
			templateSet: DefaultTemplateSet,
			sourceExt:   DefaultSourceExt,
			outputExt:   DefaultOutputExt,
			paragraphs:  true,
			kindLabels:  maps.Clone(pipeline.DefaultKindLabels),
			logger:      slog.New(slog.DiscardHandler),
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.validateExtensions(); err != nil {
		return nil, err
	}

	if e.loader == nil {
		loader, err := NewAssetLoader(e.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		e.loader = loader
	}

	css, err := e.resolveStyle()
	if err != nil {
		return nil, err
	}
	tags, err := pipeline.ParseTagDictionary(css)
	if err != nil {
		return nil, fmt.Errorf("parsing style: %w", err)
	}

	ts, err := e.loader.LoadTemplateSet(e.cfg.templateSet)
	if err != nil {
		return nil, fmt.Errorf("loading template set: %w", err)
	}
	nav, err := pipeline.NewTemplateNavRenderer(pipeline.NavTemplates{
		Header: ts.Header,
		Footer: ts.Footer,
		Meta:   ts.Meta,
	}, e.cfg.kindLabels, e.cfg.outputExt)
	if err != nil {
		return nil, fmt.Errorf("initializing navigation templates: %w", err)
	}

	e.engine = pipeline.NewExpander(tags, nav,
		pipeline.WithExtensions(e.cfg.sourceExt, e.cfg.outputExt),
		pipeline.WithParagraphs(e.cfg.paragraphs),
		pipeline.WithLogger(e.cfg.logger),
	)

	e.cfg.logger.Debug("expander ready",
		"style", e.cfg.style,
		"template_set", ts.Name,
		"assets", e.assetSource(),
		"tags", tags.Len())

	return e, nil
}

// TOCSource returns the contents page Expand reads from inDir.
func (e *Expander) TOCSource(inDir string) string {
	return e.engine.TOCSource(inDir)
}

// Expand expands the contents page of inDir and every page it generates
// into outDir, creating outDir if absent. Each call is an independent run
// with its own numbering and anchor ids.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Expander) Expand(ctx context.Context, inDir, outDir string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := time.Now()
	run, err := e.engine.ExpandTree(ctx, inDir, outDir)
	return newResult(run, start), err
}

// ExpandFile expands a single page into outFile as its own run. generate
// directives read their targets next to inFile and write them next to outFile.
func (e *Expander) ExpandFile(ctx context.Context, inFile, outFile string) (*Result, error) {
	if err := os.MkdirAll(filepath.Dir(outFile), 0o750); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	start := time.Now()
	run := pipeline.NewRun()
	err := e.engine.ExpandFile(ctx, run, inFile, outFile, false)
	return newResult(run, start), err
}

// ExpandReader expands one document from r into w as its own run. name is
// used in diagnostics and as the link target of headings.
func (e *Expander) ExpandReader(ctx context.Context, r io.Reader, w io.Writer, name string) (*Result, error) {
	start := time.Now()
	run := pipeline.NewRun()
	err := e.engine.ExpandStream(ctx, run, r, w, name)
	return newResult(run, start), err
}

// resolveStyle returns the stylesheet content for the configured style.
func (e *Expander) resolveStyle() (string, error) {
	if !fileutil.IsFilePath(e.cfg.style) {
		css, err := e.loader.LoadStyle(e.cfg.style)
		if err != nil {
			return "", fmt.Errorf("loading style: %w", err)
		}
		return css, nil
	}

	data, err := os.ReadFile(e.cfg.style) // #nosec G304 -- user-provided style path
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrStyleNotFound, e.cfg.style)
		}
		return "", fmt.Errorf("reading style: %w", err)
	}
	return string(data), nil
}

// assetSource names where styles and templates come from: a custom asset
// directory with embedded fallback, the embedded assets, or a caller loader.
func (e *Expander) assetSource() string {
	adapter, ok := e.loader.(*assetLoaderAdapter)
	switch {
	case !ok:
		return "loader"
	case adapter.resolver.HasCustomLoader():
		return "custom"
	default:
		return "embedded"
	}
}

func (e *Expander) validateExtensions() error {
	for _, ext := range []string{e.cfg.sourceExt, e.cfg.outputExt} {
		if err := fileutil.ValidateExtension(ext); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidExtension, err)
		}
	}
	return nil
}

// newResult summarizes run. A nil run (setup failure) yields nil.
func newResult(run *pipeline.Run, start time.Time) *Result {
	if run == nil {
		return nil
	}
	return &Result{
		Files:    run.Files(),
		Headings: run.Headings(),
		Anchors:  run.Anchors.Len(),
		Duration: time.Since(start),
	}
}
