package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Compiled patterns for search query normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// NormalizeQuery folds an ingredient search query to its cache identity:
// lower case, accents stripped, punctuation removed, whitespace collapsed.
// "  Jalapeño, Rojo " and "jalapeno rojo" normalize to the same string.
func NormalizeQuery(q string) string {
	if q == "" {
		return ""
	}
	result := strings.ToLower(stripAccents(q))
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// searchCacheKey builds the cache key for a normalized query.
// Format: "ingredients:{normalized_query}:{limit}"
func searchCacheKey(normalized string, limit int) string {
	return fmt.Sprintf("ingredients:%s:%d", normalized, limit)
}
