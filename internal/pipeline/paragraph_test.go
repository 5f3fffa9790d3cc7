package pipeline

import (
	"slices"
	"testing"
)

// runParagraphs feeds lines through a pass and returns the output with markers.
func runParagraphs(enabled bool, lines []string) []string {
	p := NewParagraphPass(enabled)
	var out []string
	for _, line := range lines {
		if marker := p.Process(line); marker != "" {
			out = append(out, marker)
		}
		out = append(out, line)
	}
	return out
}

// ---------------------------------------------------------------------------
// TestParagraphPass_Process - Marker placement
// ---------------------------------------------------------------------------

func TestParagraphPass_Process(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enabled bool
		in      []string
		want    []string
	}{
		{
			name:    "canonical fixture",
			enabled: true,
			in:      []string{"", "a", "", "b", ""},
			want:    []string{"", "<p>", "a", "</p>", "", "<p>", "b", "</p>", ""},
		},
		{
			name:    "leading content has no stray close",
			enabled: true,
			in:      []string{"x", "", "y"},
			want:    []string{"x", "", "<p>", "y"},
		},
		{
			name:    "multi-line paragraph",
			enabled: true,
			in:      []string{"", "one", "two", ""},
			want:    []string{"", "<p>", "one", "two", "</p>", ""},
		},
		{
			name:    "block tags are not wrapped",
			enabled: true,
			in:      []string{"", "<ul>", "", "<h2>T</h2>", "", "<table>", "", "<center>x", ""},
			want:    []string{"", "<ul>", "", "<h2>T</h2>", "", "<table>", "", "<center>x", ""},
		},
		{
			name:    "anchor definition is not wrapped",
			enabled: true,
			in:      []string{"", `<a id="x"></a>`, ""},
			want:    []string{"", `<a id="x"></a>`, ""},
		},
		{
			name:    "inline tag at start is wrapped",
			enabled: true,
			in:      []string{"", "<b>bold</b> start", ""},
			want:    []string{"", "<p>", "<b>bold</b> start", "</p>", ""},
		},
		{
			name:    "trailing block tag suppresses close",
			enabled: true,
			in:      []string{"", "intro", "<ul>", "", "after", ""},
			want:    []string{"", "<p>", "intro", "<ul>", "", "<p>", "after", "</p>", ""},
		},
		{
			name:    "list item absorbs trailing blank",
			enabled: true,
			in:      []string{"", "intro", "<ul>", "", "<li>one", "", "end", ""},
			want:    []string{"", "<p>", "intro", "<ul>", "", "<li>one", "", "<p>", "end", "</p>", ""},
		},
		{
			name:    "comment-only line is blank",
			enabled: true,
			in:      []string{"<!-- note -->", "text", "  <!-- x -->  "},
			want:    []string{"<!-- note -->", "<p>", "text", "</p>", "  <!-- x -->  "},
		},
		{
			name:    "verbatim block suspends inference",
			enabled: true,
			in:      []string{"", "<pre>", "", "code", "", "</pre>", "", "after", ""},
			want:    []string{"", "<pre>", "", "code", "", "</pre>", "", "<p>", "after", "</p>", ""},
		},
		{
			name:    "disabled",
			enabled: false,
			in:      []string{"", "a", "", "b", ""},
			want:    []string{"", "a", "", "b", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := runParagraphs(tt.enabled, tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Process() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParagraphPass_SetEnabled(t *testing.T) {
	t.Parallel()

	p := NewParagraphPass(true)
	p.Process("")
	p.SetEnabled(false)
	if got := p.Process("a"); got != "" {
		t.Errorf("Process() while disabled = %q, want empty", got)
	}
	p.SetEnabled(true)
	p.Process("")
	if got := p.Process("b"); got != ParagraphOpen {
		t.Errorf("Process() after re-enable = %q, want %q", got, ParagraphOpen)
	}
}

func TestParagraphPass_MarkInclude(t *testing.T) {
	t.Parallel()

	p := NewParagraphPass(true)
	p.Process("")
	p.Process("text")
	p.MarkInclude(directiveFooterName)
	if got := p.Process(""); got != "" {
		t.Errorf("Process() after include = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestParagraphPass_Verbatim - <pre> tracking
// ---------------------------------------------------------------------------

func TestParagraphPass_Verbatim(t *testing.T) {
	t.Parallel()

	p := NewParagraphPass(true)

	steps := []struct {
		line         string
		wantVerbatim bool
		wantInside   bool
	}{
		{"before", false, false},
		{`<pre class="example">`, true, true},
		{"code", true, true},
		{"</pre>", true, false},
		{"<pre>x</pre>", true, false},
		{"<pre>a</pre><pre>", true, true},
		{"y", true, true},
		{"</pre> tail", true, false},
		{"<preface>", false, false},
	}

	for i, s := range steps {
		if got := p.Verbatim(s.line); got != s.wantVerbatim {
			t.Errorf("step %d: Verbatim(%q) = %v, want %v", i, s.line, got, s.wantVerbatim)
		}
		p.Process(s.line)
		if got := p.State().InVerbatim; got != s.wantInside {
			t.Errorf("step %d: InVerbatim after %q = %v, want %v", i, s.line, got, s.wantInside)
		}
	}
}

// ---------------------------------------------------------------------------
// TestClassifyTag / TestIsBlankLine - Line classification
// ---------------------------------------------------------------------------

func TestClassifyTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want BlockTag
	}{
		{"ul", BlockList},
		{"LI", BlockList},
		{"dd", BlockDefinitionList},
		{"h1", BlockHeading},
		{"h9", BlockHeading},
		{"h10", BlockNone},
		{"center", BlockCenter},
		{"pre", BlockPreformatted},
		{"th", BlockTable},
		{"blockquote", BlockStructure},
		{"include_header", BlockInclude},
		{"span", BlockNone},
		{"", BlockNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := classifyTag(tt.name); got != tt.want {
				t.Errorf("classifyTag(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsBlankLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"   \t", true},
		{"<!-- c -->", true},
		{" <!-- c --> ", true},
		{"x", false},
		{"<!-- c --> x", false},
	}

	for _, tt := range tests {
		if got := IsBlankLine(tt.line); got != tt.want {
			t.Errorf("IsBlankLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestBlockTag_String(t *testing.T) {
	t.Parallel()

	if got := BlockHeading.String(); got != "heading" {
		t.Errorf("BlockHeading.String() = %q, want %q", got, "heading")
	}
	if got := BlockNone.String(); got != "none" {
		t.Errorf("BlockNone.String() = %q, want %q", got, "none")
	}
}
