// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// configDirMarker identifies the per-user config directory among searched paths.
var configDirMarker = string(filepath.Separator) + "go-doc2xhtml" + string(filepath.Separator)

// ForDuplicateAnchor returns a hint for an anchor id defined twice in one run.
func ForDuplicateAnchor(id string) string {
	if id == "" {
		return format("ids must be unique across every page of one run")
	}
	return format(`rename one of the id="` + id + `" attributes; ids must be unique across every page of one run`)
}

// ForMissingInclude returns a hint for a generate target that does not exist.
func ForMissingInclude(sourceExt string) string {
	if sourceExt == "" {
		return format("generate NAME reads NAME from the directory of the including page")
	}
	return format("generate NAME reads NAME" + sourceExt + " from the directory of the including page; see --source-ext")
}

// ForTOCNotFound returns a hint naming the expected table of contents file.
func ForTOCNotFound(expected string) string {
	if expected == "" {
		return format("the contents page must be named after the input directory")
	}
	return format("the contents page must be named after the input directory: " + filepath.Base(expected))
}

// ForGenerateCycle returns a hint for a page that generates itself.
func ForGenerateCycle() string {
	return format("remove the generate directive that points back up the chain")
}

// ForSameDirectory returns a hint for an output directory equal to the input.
func ForSameDirectory() string {
	return format("choose a separate output directory; expansion would overwrite its sources")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, configDirMarker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
