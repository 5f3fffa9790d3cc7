// Package pipeline implements the line-oriented document expansion engine.
//
// One top-level run reads a table of contents page and every page it
// generates, and writes fully expanded HTML. Each line goes through:
//   - structural directives (generate, include_header, include_footer, para-gen)
//   - anchor id registration, failing on duplicates within the run
//   - heading renumbering through the shared TOCTracker
//   - shorthand tag expansion through a TagDictionary
//   - quote normalization, skipped inside <pre> blocks
//   - paragraph inference
//
// Numbering and anchor ids are shared by every file of a run through Run.
// Paragraph state is per file.
package pipeline
