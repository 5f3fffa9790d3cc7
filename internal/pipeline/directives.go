package pipeline

import "regexp"

// DirectiveKind identifies a structural comment.
type DirectiveKind int

const (
	DirectiveNone     DirectiveKind = iota
	DirectiveGenerate               // <!-- generate NAME -->
	DirectiveHeader                 // <!-- include_header KIND PREV NEXT TOC [META] -->
	DirectiveFooter                 // <!-- include_footer KIND PREV NEXT TOC -->
	DirectiveParaGen                // <!-- para-gen on|off -->
)

// noPage is the argument that marks an absent navigation target.
const noPage = "nil"

// Directive names as they appear in source comments.
const (
	directiveHeaderName = "include_header"
	directiveFooterName = "include_footer"
)

// Precompiled directive patterns. A comment that does not match its
// pattern exactly is treated as ordinary text.
var (
	generatePattern = regexp.MustCompile(`<!--\s*generate\s+(\w+)\s*-->`)
	headerPattern   = regexp.MustCompile(`<!--\s*include_header\s+(\w+)\s+(\w+)\s+(\w+)\s+(\w+)(?:\s+(\w+))?\s*-->`)
	footerPattern   = regexp.MustCompile(`<!--\s*include_footer\s+(\w+)\s+(\w+)\s+(\w+)\s+(\w+)\s*-->`)
	paraGenPattern  = regexp.MustCompile(`<!--\s*para-gen\s+(on|off)\s*-->`)
)

// NavRequest holds the arguments of a header or footer directive.
// Empty page names mean "no such page".
type NavRequest struct {
	Kind string // Document kind code ("UM", "FAQ")
	Prev string // Previous page name
	Next string // Next page name
	TOC  string // Table of contents page name
	Meta bool   // Include the meta block (headers only)
}

// Directive is a recognized structural comment.
type Directive struct {
	Kind    DirectiveKind
	Name    string     // Generate target
	Nav     NavRequest // Header/footer arguments
	Enabled bool       // para-gen value
}

// ParseDirective recognizes a structural directive on line.
func ParseDirective(line string) (Directive, bool) {
	if m := generatePattern.FindStringSubmatch(line); m != nil {
		return Directive{Kind: DirectiveGenerate, Name: m[1]}, true
	}
	if m := headerPattern.FindStringSubmatch(line); m != nil {
		return Directive{
			Kind: DirectiveHeader,
			Nav:  newNavRequest(m[1], m[2], m[3], m[4], m[5] != ""),
		}, true
	}
	if m := footerPattern.FindStringSubmatch(line); m != nil {
		return Directive{
			Kind: DirectiveFooter,
			Nav:  newNavRequest(m[1], m[2], m[3], m[4], false),
		}, true
	}
	if m := paraGenPattern.FindStringSubmatch(line); m != nil {
		return Directive{Kind: DirectiveParaGen, Enabled: m[1] == "on"}, true
	}
	return Directive{}, false
}

func newNavRequest(kind, prev, next, toc string, meta bool) NavRequest {
	return NavRequest{
		Kind: kind,
		Prev: pageName(prev),
		Next: pageName(next),
		TOC:  pageName(toc),
		Meta: meta,
	}
}

// pageName maps the "nil" placeholder to "".
func pageName(arg string) string {
	if arg == noPage {
		return ""
	}
	return arg
}
