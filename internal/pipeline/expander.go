package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-doc2xhtml/internal/fileutil"
)

// Sentinel errors for document expansion.
var (
	ErrMissingInclude  = errors.New("included file not found")
	ErrGenerateCycle   = errors.New("generate directive cycle")
	ErrTOCNotFound     = errors.New("table of contents source not found")
	ErrInvalidInputDir = errors.New("input is not a directory")
	ErrSameDirectory   = errors.New("output directory must differ from input directory")
	ErrSameFile        = errors.New("output file must differ from input file")
)

// Default file extensions for sources and outputs.
const (
	DefaultSourceExt = ".html"
	DefaultOutputExt = ".html"
)

// outputDirPermissions matches the permissions used for created output trees.
const outputDirPermissions = 0o750

// headingLinePattern matches a heading element.
// Captures: 1=level digits, 2=attributes, 3=title.
var headingLinePattern = regexp.MustCompile(`<h(\d+)((?:\s[^>]*)?)>(.*?)</h\d+>`)

// Run carries the state shared by every file of one top-level expansion:
// section numbering, anchor identifiers, and the table of contents output.
// Create a fresh Run for every independent expansion.
type Run struct {
	TOC     *TOCTracker
	Anchors *AnchorRegistry

	tocOut   io.Writer // output of the ToC file, nil when none is open
	active   []string  // files currently being expanded, outermost first
	files    []string  // outputs written, in completion order
	headings int
}

// NewRun creates an empty run.
func NewRun() *Run {
	return &Run{
		TOC:     NewTOCTracker(),
		Anchors: NewAnchorRegistry(),
	}
}

// Files returns the output paths written during the run.
func (r *Run) Files() []string {
	return append([]string(nil), r.files...)
}

// Headings returns the number of headings numbered during the run.
func (r *Run) Headings() int {
	return r.headings
}

// Expander expands shorthand markup documents into full HTML.
type Expander struct {
	tags       TagExpander
	nav        NavRenderer
	sourceExt  string
	outputExt  string
	paragraphs bool
	logger     *slog.Logger
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithExtensions sets the source and output file extensions (".html").
func WithExtensions(source, output string) ExpanderOption {
	return func(e *Expander) {
		if source != "" {
			e.sourceExt = source
		}
		if output != "" {
			e.outputExt = output
		}
	}
}

// WithParagraphs sets whether paragraph inference starts enabled in each file.
func WithParagraphs(enabled bool) ExpanderOption {
	return func(e *Expander) {
		e.paragraphs = enabled
	}
}

// WithLogger sets the logger for progress events.
func WithLogger(logger *slog.Logger) ExpanderOption {
	return func(e *Expander) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExpander creates an Expander using tags for shorthand expansion and nav
// for header and footer directives.
func NewExpander(tags TagExpander, nav NavRenderer, opts ...ExpanderOption) *Expander {
	e := &Expander{
		tags:       tags,
		nav:        nav,
		sourceExt:  DefaultSourceExt,
		outputExt:  DefaultOutputExt,
		paragraphs: true,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TOCSource returns the table of contents source of inDir: the file named
// after the directory itself.
func (e *Expander) TOCSource(inDir string) string {
	clean := filepath.Clean(inDir)
	return filepath.Join(clean, filepath.Base(clean)+e.sourceExt)
}

// ExpandTree expands the table of contents of inDir, and every document it
// generates, into outDir. outDir is created if missing.
func (e *Expander) ExpandTree(ctx context.Context, inDir, outDir string) (*Run, error) {
	info, err := os.Stat(inDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInputDir, inDir)
	}

	if samePath(inDir, outDir) {
		return nil, fmt.Errorf("%w: %s", ErrSameDirectory, outDir)
	}

	tocFile := e.TOCSource(inDir)
	if !fileutil.FileExists(tocFile) {
		return nil, fmt.Errorf("%w: %s", ErrTOCNotFound, tocFile)
	}

	if err := os.MkdirAll(outDir, outputDirPermissions); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	run := NewRun()
	outFile := filepath.Join(outDir, fileutil.ReplaceExt(filepath.Base(tocFile), e.outputExt))
	if err := e.ExpandFile(ctx, run, tocFile, outFile, true); err != nil {
		return run, err
	}
	return run, nil
}

// ExpandFile expands inFile into outFile as part of run. When isTOC is set,
// headings in the file are left as written and ToC entries for generated
// documents are written into outFile.
//
// On error the output file is left incomplete.
func (e *Expander) ExpandFile(ctx context.Context, run *Run, inFile, outFile string, isTOC bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := filepath.Clean(inFile)
	if slices.Contains(run.active, key) {
		chain := append(append([]string(nil), run.active...), key)
		return fmt.Errorf("%w: %s", ErrGenerateCycle, strings.Join(chain, " -> "))
	}
	if sameFile(inFile, outFile) {
		return fmt.Errorf("%w: %s", ErrSameFile, outFile)
	}
	run.active = append(run.active, key)
	defer func() { run.active = run.active[:len(run.active)-1] }()

	src, err := os.Open(inFile) // #nosec G304 -- path comes from the input tree
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingInclude, inFile)
		}
		return fmt.Errorf("opening %s: %w", inFile, err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(outFile) // #nosec G304 -- path derived from the output directory
	if err != nil {
		return fmt.Errorf("creating %s: %w", outFile, err)
	}
	defer func() { _ = dst.Close() }()

	w := bufio.NewWriter(dst)
	if isTOC {
		prev := run.tocOut
		run.tocOut = w
		defer func() { run.tocOut = prev }()
	}

	start := time.Now()
	e.logger.Debug("expanding", logKeyInput, inFile, logKeyOutput, outFile, logKeyDepth, len(run.active))

	doc := document{in: inFile, out: outFile, isTOC: isTOC}
	lines, err := e.expandStream(ctx, run, src, w, doc)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", outFile, err)
	}

	run.files = append(run.files, outFile)
	e.logger.Info("expanded",
		logKeyInput, inFile,
		logKeyOutput, outFile,
		logKeyLines, lines,
		logKeyDurationMS, time.Since(start).Milliseconds())
	return nil
}

// document describes the file being expanded.
type document struct {
	in    string
	out   string
	isTOC bool
}

// lineWriter remembers the first write error.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) write(s string) {
	if lw.err != nil || s == "" {
		return
	}
	_, lw.err = io.WriteString(lw.w, s)
}

// ExpandStream expands one document read from r into w as part of run.
// name identifies the document in anchor diagnostics and ToC links.
func (e *Expander) ExpandStream(ctx context.Context, run *Run, r io.Reader, w io.Writer, name string) error {
	_, err := e.expandStream(ctx, run, r, w, document{in: name, out: name})
	return err
}

// expandStream runs the per-line pipeline and returns the number of lines read.
func (e *Expander) expandStream(ctx context.Context, run *Run, r io.Reader, w io.Writer, doc document) (int, error) {
	br := bufio.NewReader(r)
	out := &lineWriter{w: w}
	para := NewParagraphPass(e.paragraphs)
	pendingAnchor := ""

	lines := 0
	for {
		raw, readErr := br.ReadString('\n')
		if raw == "" && readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return lines, fmt.Errorf("reading %s: %w", doc.in, readErr)
		}
		lines++

		line, eol := splitEOL(raw)

		if d, ok := ParseDirective(line); ok {
			if err := e.applyDirective(ctx, run, doc, d, out, para); err != nil {
				return lines, err
			}
			if out.err != nil {
				return lines, fmt.Errorf("writing %s: %w", doc.out, out.err)
			}
			continue
		}

		for _, id := range findAnchorIDs(line) {
			if err := run.Anchors.Register(doc.in, id); err != nil {
				return lines, err
			}
			pendingAnchor = id
		}

		if !doc.isTOC {
			var numbered bool
			line, numbered = e.numberHeading(run, doc, line, pendingAnchor, para)
			if numbered {
				pendingAnchor = ""
			}
		}

		line = e.tags.ExpandTags(line)
		if !para.Verbatim(line) {
			line = NormalizeQuotes(line)
		}

		if marker := para.Process(line); marker != "" {
			out.write(marker + "\n")
		}
		out.write(line + eol)
		if out.err != nil {
			return lines, fmt.Errorf("writing %s: %w", doc.out, out.err)
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return lines, fmt.Errorf("reading %s: %w", doc.in, readErr)
		}
	}

	return lines, nil
}

// applyDirective performs a structural directive. Directives are never echoed.
func (e *Expander) applyDirective(ctx context.Context, run *Run, doc document, d Directive, out *lineWriter, para *ParagraphPass) error {
	switch d.Kind {
	case DirectiveGenerate:
		return e.generate(ctx, run, doc, d.Name)
	case DirectiveHeader:
		block, err := e.nav.RenderHeader(d.Nav)
		if err != nil {
			return fmt.Errorf("%s: %w", doc.in, err)
		}
		out.write(block)
		para.MarkInclude(directiveHeaderName)
	case DirectiveFooter:
		block, err := e.nav.RenderFooter(d.Nav)
		if err != nil {
			return fmt.Errorf("%s: %w", doc.in, err)
		}
		out.write(block)
		para.MarkInclude(directiveFooterName)
	case DirectiveParaGen:
		para.SetEnabled(d.Enabled)
	}
	return nil
}

// generate expands NAME<source-ext> next to the current source into
// NAME<output-ext> next to the current output, sharing run.
func (e *Expander) generate(ctx context.Context, run *Run, doc document, name string) error {
	inFile := filepath.Join(filepath.Dir(doc.in), name+e.sourceExt)
	outFile := filepath.Join(filepath.Dir(doc.out), name+e.outputExt)

	if !fileutil.FileExists(inFile) {
		return fmt.Errorf("%w: %s (generate %s in %s)", ErrMissingInclude, inFile, name, doc.in)
	}

	e.logger.Debug("generate", logKeyName, name, logKeyInput, doc.in, logKeyDepth, len(run.active))
	return e.ExpandFile(ctx, run, inFile, outFile, false)
}

// numberHeading renumbers the first heading on line, records its ToC entry,
// and reports whether a heading was found. Quotes in the title are left
// alone when the line is verbatim.
func (e *Expander) numberHeading(run *Run, doc document, line, anchorID string, para *ParagraphPass) (string, bool) {
	loc := headingLinePattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, false
	}

	levelText := line[loc[2]:loc[3]]
	attrs := line[loc[4]:loc[5]]
	title := e.tags.ExpandTags(line[loc[6]:loc[7]])
	if !para.Verbatim(e.tags.ExpandTags(line)) {
		title = NormalizeQuotes(title)
	}

	level, err := strconv.Atoi(levelText)
	if err != nil {
		level = 1
	}

	entry := run.TOC.AddHeading(filepath.Base(doc.out), anchorID, level, title)
	run.headings++
	if run.tocOut != nil {
		if _, err := io.WriteString(run.tocOut, entry); err != nil {
			e.logger.Warn("writing toc entry failed", logKeyError, err)
		}
	}
	e.logger.Debug("heading", logKeyLevel, run.TOC.LevelString(), logKeyTitle, title)

	heading := fmt.Sprintf("<h%s%s>%s %s</h%s>", levelText, attrs, run.TOC.LevelString(), title, levelText)
	return line[:loc[0]] + heading + line[loc[1]:], true
}

// samePath reports whether a and b resolve to the same absolute path.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// sameFile reports whether a and b name the same file, by path or, when
// both exist, by identity.
func sameFile(a, b string) bool {
	if samePath(a, b) {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// splitEOL separates a trailing "\n" or "\r\n" from line.
func splitEOL(raw string) (line, eol string) {
	if body, ok := strings.CutSuffix(raw, "\r\n"); ok {
		return body, "\r\n"
	}
	if body, ok := strings.CutSuffix(raw, "\n"); ok {
		return body, "\n"
	}
	return raw, ""
}
