package assets

// DefaultStyleName is the name of the built-in tag dictionary.
const DefaultStyleName = "default"

// DefaultTemplateSetName is the name of the built-in navigation template set.
const DefaultTemplateSetName = "default"

// Template file names inside a template set directory.
const (
	headerFile = "header.html"
	footerFile = "footer.html"
	metaFile   = "meta.html"
)

// TemplateSet holds the navigation templates spliced in by include directives.
// Header and Footer are required; Meta may be empty.
type TemplateSet struct {
	Name   string // Identifier (name or directory path)
	Header string // include_header template
	Footer string // include_footer template
	Meta   string // Meta block rendered into headers on request
}

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a tag dictionary stylesheet by name using the embedded loader.
// The name should not include the .css extension or path components.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplateSet loads a template set by name using the embedded loader.
func LoadTemplateSet(name string) (*TemplateSet, error) {
	return defaultLoader.LoadTemplateSet(name)
}
