package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Precompiled patterns for the tag dictionary.
var (
	// A style rule "span.file {" defines the shorthand <file>.
	tagRulePattern = regexp.MustCompile(`^(\w+)\.([-\w]+)\s*\{`)

	// A shorthand occurrence: <name> or </name>, no attributes.
	shorthandPattern = regexp.MustCompile(`<(/?[-\w]+)>`)
)

// TagDefinition maps a shorthand tag name to its full markup.
type TagDefinition struct {
	Name  string // Shorthand name ("file")
	Open  string // Opening markup (`<span class="file">`)
	Close string // Closing markup (`</span>`)
}

// TagExpander defines the contract for shorthand tag expansion.
type TagExpander interface {
	ExpandTags(line string) string
}

// TagDictionary is a read-only lookup table of shorthand tags.
type TagDictionary struct {
	tags map[string]TagDefinition
}

// NewTagDictionary creates a dictionary from explicit definitions.
// Later definitions for the same name replace earlier ones.
func NewTagDictionary(defs ...TagDefinition) *TagDictionary {
	d := &TagDictionary{tags: make(map[string]TagDefinition, len(defs))}
	for _, def := range defs {
		d.tags[def.Name] = def
	}
	return d
}

// LoadTagDictionary reads a stylesheet and builds a dictionary from every
// "wrapper.name {" rule it contains. Other lines are ignored. Lines may be
// of any length, so minified stylesheets load as one line.
func LoadTagDictionary(r io.Reader) (*TagDictionary, error) {
	d := NewTagDictionary()

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			d.addRule(line)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tag dictionary: %w", err)
		}
	}

	return d, nil
}

// ParseTagDictionary builds a dictionary from stylesheet content.
func ParseTagDictionary(css string) (*TagDictionary, error) {
	return LoadTagDictionary(strings.NewReader(css))
}

// addRule records the shorthand defined by line, if any.
func (d *TagDictionary) addRule(line string) {
	m := tagRulePattern.FindStringSubmatch(line)
	if m == nil {
		return
	}
	wrapper, name := m[1], m[2]
	d.tags[name] = TagDefinition{
		Name:  name,
		Open:  fmt.Sprintf(`<%s class="%s">`, wrapper, name),
		Close: "</" + wrapper + ">",
	}
}

// Lookup returns the definition for a shorthand name.
func (d *TagDictionary) Lookup(name string) (TagDefinition, bool) {
	def, ok := d.tags[name]
	return def, ok
}

// Len returns the number of distinct shorthand tags.
func (d *TagDictionary) Len() int {
	return len(d.tags)
}

// ExpandTag expands one shorthand occurrence given without angle brackets,
// e.g. "file" or "/file". Unknown names come back as the literal tag.
func (d *TagDictionary) ExpandTag(tagText string) string {
	name, closing := strings.CutPrefix(tagText, "/")

	def, ok := d.Lookup(name)
	if !ok {
		return "<" + tagText + ">"
	}
	if closing {
		return def.Close
	}
	return def.Open
}

// ExpandTags expands every shorthand occurrence in line.
func (d *TagDictionary) ExpandTags(line string) string {
	return shorthandPattern.ReplaceAllStringFunc(line, func(match string) string {
		return d.ExpandTag(match[1 : len(match)-1])
	})
}
