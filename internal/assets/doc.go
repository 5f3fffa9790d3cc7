// Package assets provides tag dictionary stylesheets and navigation templates.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in sets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// A style is a stylesheet whose "element.name {" rules define the shorthand
// tags of a documentation tree. A template set is the header, footer, and
// optional meta block spliced in by include_header and include_footer.
//
// AssetResolver tries the custom FilesystemLoader first, falling back to
// EmbeddedLoader if the asset is not found. This enables overriding a single
// template while keeping the other defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # Tag dictionary
//	└── templates/
//	    └── {name}/
//	        ├── header.html      # include_header template
//	        ├── footer.html      # include_footer template
//	        └── meta.html        # Optional meta block
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
