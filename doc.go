// Package doc2xhtml expands shorthand-markup documentation trees into HTML.
//
// # Quick Start
//
// Create an expander and run it over a source directory:
//
//	exp, err := doc2xhtml.NewExpander()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := exp.Expand(ctx, "docs/manual", "build/manual")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(result.Files), "pages,", result.Headings, "headings")
//
// The input directory must contain a table of contents page named after the
// directory itself (docs/manual/manual.html). That page, and every page it
// generates, is written to the output directory.
//
// # Source Format
//
// Sources are line-oriented HTML with a few additions:
//
//	<file>name</file>                              shorthand tag from the style
//	<h2>Title</h2>                                 numbered heading ("1.2 Title")
//	<a id="setup"></a>                             anchor, unique across the run
//	``quoted''                                     becomes &quot;quoted&quot;
//	<!-- generate NAME -->                         expand NAME.html in place
//	<!-- include_header KIND PREV NEXT TOC [meta] -->
//	<!-- include_footer KIND PREV NEXT TOC -->
//	<!-- para-gen on|off -->                       toggle paragraph inference
//
// Use "nil" for an absent PREV, NEXT, or TOC page. Paragraph markers are
// inferred from blank lines except around block-level elements and inside
// <pre> blocks.
//
// # Configuration
//
// Use functional options to customize the expander:
//
//	exp, err := doc2xhtml.NewExpander(
//	    doc2xhtml.WithStyle("plain"),
//	    doc2xhtml.WithAssetPath("/path/to/custom/assets"),
//	    doc2xhtml.WithExtensions(".src", ".html"),
//	    doc2xhtml.WithKindLabels(map[string]string{"REF": "Reference"}),
//	)
//
// # Custom Assets
//
// A style is a stylesheet whose "element.name {" rules define shorthand
// tags. A template set holds the header, footer, and meta blocks:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom/
//	        ├── header.html
//	        ├── footer.html
//	        └── meta.html
//
// Templates see .Kind, .PrevLink, .NextLink, .TOCLink, and (headers only) .Meta.
//
// # Errors
//
// A duplicate anchor id aborts the run with a *DuplicateAnchorError that
// matches ErrDuplicateAnchor. Missing generate targets, generate cycles, and
// a missing contents page also abort the run. Pages written before the
// failure are left in place.
package doc2xhtml
