package pipeline

import (
	"html"
	"strconv"
	"strings"
)

// tocChapterClass is the span class wrapping top-level ToC entries.
const tocChapterClass = "toc-chapter"

// tocIndentPerLevel is the number of &nbsp; entities per nesting level.
const tocIndentPerLevel = 4

// TOCTracker maintains hierarchical section numbering across one expansion run.
//
// The counter stack mirrors the heading depth: index 0 is reserved, index i
// holds the current count at depth i. A tracker is shared by every file that
// a run expands, so numbering continues across generated sub-documents.
type TOCTracker struct {
	levels []int
}

// NewTOCTracker creates a tracker with an empty numbering stack.
func NewTOCTracker() *TOCTracker {
	return &TOCTracker{levels: []int{0}}
}

// AddHeading advances the numbering for a heading at depth and returns the
// formatted table of contents line for it.
//
// Depths below 1 are treated as 1. Jumping forward more than one level pushes
// a single counter: intermediate levels are not back-filled, so a heading at
// depth 3 directly under depth 1 is numbered "1.1".
// TODO: decide whether depth jumps should back-fill intermediate counters with 1.
func (t *TOCTracker) AddHeading(fileName, anchorID string, depth int, title string) string {
	t.advance(depth)
	return t.formatEntry(fileName, anchorID, title)
}

// advance updates the counter stack for a heading at depth.
func (t *TOCTracker) advance(depth int) {
	if depth < 1 {
		depth = 1
	}

	switch {
	case depth >= len(t.levels):
		t.levels = append(t.levels, 1)
	case depth < len(t.levels)-1:
		t.levels = t.levels[:depth+1]
		t.levels[depth]++
	default:
		t.levels[depth]++
	}
}

// LevelString returns the dotted section number of the latest heading ("2.3.1").
// Returns "" before any heading was added.
func (t *TOCTracker) LevelString() string {
	if len(t.levels) <= 1 {
		return ""
	}
	parts := make([]string, 0, len(t.levels)-1)
	for _, n := range t.levels[1:] {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ".")
}

// Depth returns the nesting depth of the latest heading (0 before any heading).
func (t *TOCTracker) Depth() int {
	return len(t.levels) - 1
}

// formatEntry renders one linked, indented ToC line for the current heading.
// The title is already expanded markup and is written as is.
func (t *TOCTracker) formatEntry(fileName, anchorID, title string) string {
	depth := t.Depth()
	isTopLevel := depth == 1

	var buf strings.Builder
	if isTopLevel {
		buf.WriteString("\n<br />")
	}
	buf.WriteString(strings.Repeat("&nbsp;", (depth-1)*tocIndentPerLevel))

	buf.WriteString(`<a href="`)
	buf.WriteString(html.EscapeString(fileName))
	if anchorID != "" {
		buf.WriteString("#")
		buf.WriteString(html.EscapeString(anchorID))
	}
	buf.WriteString(`">`)

	if isTopLevel {
		buf.WriteString(`<span class="` + tocChapterClass + `">`)
	}
	buf.WriteString(t.LevelString())
	buf.WriteString(" ")
	buf.WriteString(title)
	if isTopLevel {
		buf.WriteString("</span>")
	}
	buf.WriteString("</a><br />\n")

	return buf.String()
}
