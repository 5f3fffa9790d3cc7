package pipeline

import "strings"

// quoteEntity replaces both typographic quote markers.
const quoteEntity = "&quot;"

var quoteReplacer = strings.NewReplacer("``", quoteEntity, "''", quoteEntity)

// NormalizeQuotes turns `` and '' pairs into &quot;.
func NormalizeQuotes(line string) string {
	return quoteReplacer.Replace(line)
}
