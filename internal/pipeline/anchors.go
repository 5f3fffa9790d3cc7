package pipeline

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrDuplicateAnchor indicates an anchor identifier was defined twice in one run.
var ErrDuplicateAnchor = errors.New("duplicate anchor id")

// anchorPattern matches any element carrying an id attribute.
// Captures: 1=identifier.
var anchorPattern = regexp.MustCompile(`<\w+[^>]*?\sid\s*=\s*"([^"]*)"`)

// DuplicateAnchorError reports the file and identifier of a repeated anchor.
type DuplicateAnchorError struct {
	File      string // File containing the second definition
	ID        string // Repeated identifier
	FirstFile string // File containing the first definition
}

func (e *DuplicateAnchorError) Error() string {
	if e.FirstFile != "" && e.FirstFile != e.File {
		return fmt.Sprintf("id %q seen twice in %s (first defined in %s)", e.ID, e.File, e.FirstFile)
	}
	return fmt.Sprintf("id %q seen twice in %s", e.ID, e.File)
}

// Is reports whether target is ErrDuplicateAnchor.
func (e *DuplicateAnchorError) Is(target error) bool {
	return target == ErrDuplicateAnchor
}

// AnchorRegistry records every anchor identifier defined during one run.
type AnchorRegistry struct {
	seen  map[string]string // id -> file of first definition
	order []string
}

// NewAnchorRegistry creates an empty registry.
func NewAnchorRegistry() *AnchorRegistry {
	return &AnchorRegistry{seen: make(map[string]string)}
}

// Register records id as defined in file.
// Returns a *DuplicateAnchorError if id was already registered.
func (r *AnchorRegistry) Register(file, id string) error {
	if first, ok := r.seen[id]; ok {
		return &DuplicateAnchorError{File: file, ID: id, FirstFile: first}
	}
	r.seen[id] = file
	r.order = append(r.order, id)
	return nil
}

// Contains reports whether id has been registered.
func (r *AnchorRegistry) Contains(id string) bool {
	_, ok := r.seen[id]
	return ok
}

// Len returns the number of registered identifiers.
func (r *AnchorRegistry) Len() int {
	return len(r.order)
}

// IDs returns the registered identifiers in definition order.
func (r *AnchorRegistry) IDs() []string {
	return append([]string(nil), r.order...)
}

// findAnchorIDs returns every id attribute value defined on line.
func findAnchorIDs(line string) []string {
	matches := anchorPattern.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}
