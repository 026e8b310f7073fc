package pipeline

import (
	"regexp"
	"strings"
)

var (
	fencedJSONOpen = regexp.MustCompile("```json\\s*")
	fencedBare     = regexp.MustCompile("```")
	// URL guard: a "//" directly after ':' is a protocol separator,
	// not a comment.
	lineComment     = regexp.MustCompile(`(?m)(^|[^:])//[^\n]*`)
	blockComment    = regexp.MustCompile(`(?s)/\*.*?\*/`)
	jsonSpan        = regexp.MustCompile(`(?s)(\{.*\}|\[.*\])`)
	trailingComment = regexp.MustCompile(`,\s*//[^\n]*`)
	quotedComment   = regexp.MustCompile(`"\s*//[^\n]*`)
)

// ExtractJSON pulls the JSON payload out of a free-form generation
// response: markdown code fences and comments are stripped, then the
// widest {...} or [...] span is extracted. When no span is found the
// cleaned text is returned as-is, so callers always get something to
// hand to the parser. Never fails.
func ExtractJSON(raw string) string {
	cleaned := fencedJSONOpen.ReplaceAllString(raw, "")
	cleaned = fencedBare.ReplaceAllString(cleaned, "")
	cleaned = lineComment.ReplaceAllString(cleaned, "$1")
	cleaned = blockComment.ReplaceAllString(cleaned, "")

	if span := jsonSpan.FindString(cleaned); span != "" {
		span = trailingComment.ReplaceAllString(span, ",")
		span = quotedComment.ReplaceAllString(span, `"`)
		return strings.TrimSpace(span)
	}
	return strings.TrimSpace(cleaned)
}
