package model

import (
	"regexp"
	"strings"
)

// The model embeds a lookup directive into its reply when it needs catalog
// data. The directive is case-insensitive, may span multiple lines, and the
// payload runs non-greedily up to the first closing delimiter.
var vectorQueryRe = regexp.MustCompile(`(?is)\{\{VECTOR_QUERY:\s*(.*?)\s*\}\}`)

// ExtractVectorQuery returns the payload of the first similarity-query
// directive in the text. The second return value reports whether a
// directive was found.
func ExtractVectorQuery(text string) (string, bool) {
	m := vectorQueryRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// StripVectorQuery removes all similarity-query directives from the text.
func StripVectorQuery(text string) string {
	return vectorQueryRe.ReplaceAllString(text, "")
}
