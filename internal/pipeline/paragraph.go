package pipeline

import (
	"regexp"
	"strings"
)

// Inferred paragraph markers, each written on its own line.
const (
	ParagraphOpen  = "<p>"
	ParagraphClose = "</p>"
)

// BlockTag classifies elements that carry their own block semantics and
// therefore are never wrapped in an inferred paragraph.
type BlockTag int

const (
	BlockNone           BlockTag = iota // Inline or unknown element
	BlockList                           // ul, ol, li
	BlockDefinitionList                 // dl, dt, dd
	BlockHeading                        // h0..h9
	BlockCenter                         // center
	BlockPreformatted                   // pre
	BlockTable                          // table, tr, td, th
	BlockStructure                      // html, head, body, hr, blockquote
	BlockAnchor                         // <a id="..."> anchor definitions
	BlockInclude                        // header/footer inclusion points
)

// String returns the category name.
func (b BlockTag) String() string {
	switch b {
	case BlockList:
		return "list"
	case BlockDefinitionList:
		return "definition-list"
	case BlockHeading:
		return "heading"
	case BlockCenter:
		return "center"
	case BlockPreformatted:
		return "preformatted"
	case BlockTable:
		return "table"
	case BlockStructure:
		return "structure"
	case BlockAnchor:
		return "anchor"
	case BlockInclude:
		return "include"
	default:
		return "none"
	}
}

// blockTagNames maps element names to their block category.
// Headings are matched separately by classifyTag.
var blockTagNames = map[string]BlockTag{
	"ul":             BlockList,
	"ol":             BlockList,
	"li":             BlockList,
	"dl":             BlockDefinitionList,
	"dt":             BlockDefinitionList,
	"dd":             BlockDefinitionList,
	"center":         BlockCenter,
	"pre":            BlockPreformatted,
	"table":          BlockTable,
	"tr":             BlockTable,
	"td":             BlockTable,
	"th":             BlockTable,
	"html":           BlockStructure,
	"head":           BlockStructure,
	"body":           BlockStructure,
	"hr":             BlockStructure,
	"blockquote":     BlockStructure,
	"include_header": BlockInclude,
	"include_footer": BlockInclude,
}

// classifyTag returns the block category of an element name.
func classifyTag(name string) BlockTag {
	name = strings.ToLower(name)
	if len(name) == 2 && name[0] == 'h' && name[1] >= '0' && name[1] <= '9' {
		return BlockHeading
	}
	return blockTagNames[name]
}

// Precompiled patterns for line classification.
var (
	// Whitespace with at most one comment.
	blankLinePattern = regexp.MustCompile(`^\s*(<!--.*?-->)?\s*$`)

	// First tag of a line. Captures: 1=element name.
	leadingTagPattern = regexp.MustCompile(`^\s*</?([\w-]+)`)

	// Anchor definition at line start.
	leadingAnchorPattern = regexp.MustCompile(`^\s*<a\s+id\s*=`)

	// Tag ending a line. Captures: 1=element name.
	trailingTagPattern = regexp.MustCompile(`</?(\w+)[^>]*?>\s*$`)

	// Verbatim block boundaries. Captures: 1="/" for the end tag.
	verbatimPattern = regexp.MustCompile(`<(/?)pre[\s>]`)
)

// IsBlankLine reports whether line holds only whitespace and at most one comment.
func IsBlankLine(line string) bool {
	return blankLinePattern.MatchString(line)
}

// startsWithBlockTag reports whether line opens with a block-level element.
func startsWithBlockTag(line string) bool {
	if leadingAnchorPattern.MatchString(line) {
		return true
	}
	m := leadingTagPattern.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	tag := classifyTag(m[1])
	return tag != BlockNone && tag != BlockInclude
}

// leadingTag returns the first element name on line, or "".
func leadingTag(line string) string {
	if m := leadingTagPattern.FindStringSubmatch(line); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

// trailingTag returns the element name of a tag ending line, or "".
func trailingTag(line string) string {
	if m := trailingTagPattern.FindStringSubmatch(line); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

// ParagraphState is the per-file state of paragraph inference.
type ParagraphState struct {
	PrevBlank       bool   // Previous line was blank
	PrevTrailingTag string // Tag ending the previous non-blank line
	ParaStartTag    string // Leading tag of the line that started the current paragraph
	InVerbatim      bool   // Inside a <pre> block
	Enabled         bool   // Auto-insertion on (para-gen)
	Open            bool   // An inferred <p> is awaiting its </p>
}

// ParagraphPass decides where inferred paragraph markers go, one line at a time.
// Create one per file.
type ParagraphPass struct {
	state ParagraphState
}

// NewParagraphPass creates a pass with auto-insertion on or off.
func NewParagraphPass(enabled bool) *ParagraphPass {
	return &ParagraphPass{state: ParagraphState{Enabled: enabled}}
}

// State returns a copy of the current state.
func (p *ParagraphPass) State() ParagraphState {
	return p.state
}

// SetEnabled turns auto-insertion on or off.
func (p *ParagraphPass) SetEnabled(enabled bool) {
	p.state.Enabled = enabled
}

// MarkInclude records that a header or footer block was spliced in, so the
// following blank line does not close a paragraph.
func (p *ParagraphPass) MarkInclude(directive string) {
	p.state.PrevTrailingTag = directive
}

// Verbatim reports whether line is part of a verbatim block, counting a
// line that opens one.
func (p *ParagraphPass) Verbatim(line string) bool {
	if p.state.InVerbatim {
		return true
	}
	m := verbatimPattern.FindAllStringSubmatch(line, -1)
	return len(m) > 0 && m[0][1] == ""
}

// Process consumes one line and returns the marker to write immediately
// before it: ParagraphOpen, ParagraphClose, or "".
//
// The line must already be tag-expanded and quote-normalized.
func (p *ParagraphPass) Process(line string) string {
	p.updateVerbatim(line)

	s := &p.state
	isBlank := IsBlankLine(line)
	suspended := !s.Enabled || s.InVerbatim

	var marker string
	switch {
	case s.PrevBlank && !isBlank:
		if !suspended && !startsWithBlockTag(line) {
			marker = ParagraphOpen
			s.Open = true
		}
		s.ParaStartTag = leadingTag(line)
	case !s.PrevBlank && isBlank:
		if !suspended && s.Open &&
			classifyTag(s.PrevTrailingTag) == BlockNone &&
			s.ParaStartTag != "li" {
			marker = ParagraphClose
			s.Open = false
		}
	}

	s.PrevBlank = isBlank
	if !isBlank {
		s.PrevTrailingTag = trailingTag(line)
	}

	return marker
}

// updateVerbatim tracks <pre> boundaries; the last boundary on a line wins.
func (p *ParagraphPass) updateVerbatim(line string) {
	matches := verbatimPattern.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return
	}
	p.state.InVerbatim = matches[len(matches)-1][1] == ""
}
