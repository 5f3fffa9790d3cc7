package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"text/template"
)

// ErrNavRender indicates a header or footer template failed to execute.
var ErrNavRender = errors.New("navigation template rendering failed")

// Link labels used in headers and footers.
const (
	prevLabel = "&lt;= Previous"
	nextLabel = "Next =&gt;"
	tocLabel  = "Table of Contents"
)

// DefaultKindLabels maps document kind codes to display names.
var DefaultKindLabels = map[string]string{
	"UM":  "User's Manual",
	"FAQ": "FAQ",
}

// NavRenderer renders header and footer blocks for include directives.
type NavRenderer interface {
	RenderHeader(req NavRequest) (string, error)
	RenderFooter(req NavRequest) (string, error)
}

// NavData is the fixed set of values available to header and footer templates.
// Links are complete markup; Kind is already escaped.
type NavData struct {
	Kind     string // Display label ("User's Manual")
	PrevLink string // Link or plain label
	NextLink string
	TOCLink  string
	Meta     string // Meta block, headers only
}

// NavTemplates holds the raw header, footer, and meta template sources.
type NavTemplates struct {
	Header string
	Footer string
	Meta   string
}

// TemplateNavRenderer renders navigation blocks from text templates.
// text/template keeps HTML comments such as server-side include markers,
// which html/template would strip.
type TemplateNavRenderer struct {
	header     *template.Template
	footer     *template.Template
	meta       *template.Template
	labels     map[string]string
	linkSuffix string
}

// NewTemplateNavRenderer parses the templates. labels maps kind codes to
// display names (nil uses DefaultKindLabels); linkSuffix is appended to page
// names in hrefs (".html").
func NewTemplateNavRenderer(tmpl NavTemplates, labels map[string]string, linkSuffix string) (*TemplateNavRenderer, error) {
	header, err := template.New("header").Parse(tmpl.Header)
	if err != nil {
		return nil, fmt.Errorf("parsing header template: %w", err)
	}
	footer, err := template.New("footer").Parse(tmpl.Footer)
	if err != nil {
		return nil, fmt.Errorf("parsing footer template: %w", err)
	}
	meta, err := template.New("meta").Parse(tmpl.Meta)
	if err != nil {
		return nil, fmt.Errorf("parsing meta template: %w", err)
	}
	if labels == nil {
		labels = DefaultKindLabels
	}

	return &TemplateNavRenderer{
		header:     header,
		footer:     footer,
		meta:       meta,
		labels:     labels,
		linkSuffix: linkSuffix,
	}, nil
}

// RenderHeader renders the header block. The meta block is rendered first
// and exposed as .Meta when req.Meta is set.
func (r *TemplateNavRenderer) RenderHeader(req NavRequest) (string, error) {
	data := r.navData(req)
	if req.Meta {
		meta, err := r.execute(r.meta, data)
		if err != nil {
			return "", err
		}
		data.Meta = meta
	}
	return r.execute(r.header, data)
}

// RenderFooter renders the footer block.
func (r *TemplateNavRenderer) RenderFooter(req NavRequest) (string, error) {
	return r.execute(r.footer, r.navData(req))
}

func (r *TemplateNavRenderer) execute(tmpl *template.Template, data *NavData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNavRender, tmpl.Name(), err)
	}
	return buf.String(), nil
}

func (r *TemplateNavRenderer) navData(req NavRequest) *NavData {
	return &NavData{
		Kind:     html.EscapeString(r.kindLabel(req.Kind)),
		PrevLink: r.link(req.Prev, prevLabel),
		NextLink: r.link(req.Next, nextLabel),
		TOCLink:  r.link(req.TOC, tocLabel),
	}
}

// kindLabel returns the display name for a kind code, or the code itself.
func (r *TemplateNavRenderer) kindLabel(kind string) string {
	if label, ok := r.labels[kind]; ok {
		return label
	}
	return kind
}

// link renders a navigation link, or the bare label when page is "".
func (r *TemplateNavRenderer) link(page, label string) string {
	if page == "" {
		return label
	}
	return fmt.Sprintf(`<a href="%s%s">%s</a>`, html.EscapeString(page), r.linkSuffix, label)
}

// Compile-time interface check.
var _ NavRenderer = (*TemplateNavRenderer)(nil)
