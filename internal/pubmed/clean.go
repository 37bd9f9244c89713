package pubmed

import "strings"

// Clean normalizes a field value: lower case, surrounding whitespace
// trimmed.
func Clean(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// CleanUnderscore normalizes like Clean and additionally replaces interior
// spaces with underscores. Used for derived short author names.
func CleanUnderscore(text string) string {
	return strings.ReplaceAll(Clean(text), " ", "_")
}
