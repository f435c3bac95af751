package convert

import (
	"regexp"
	"strings"
)

var (
	// legacyVar matches the {{${name}}} reference form.
	legacyVar = regexp.MustCompile(`\{\{\s*\$\{(\w+)\}\s*\}\}`)
	// outputTag matches a {{ ... }} output tag on a single line.
	outputTag = regexp.MustCompile(`\{\{(.*?)\}\}`)
)

// rewriteIfHeader strips legacy variable references from the condition of an
// if, elif or elsif tag and renames elsif to elif.
func rewriteIfHeader(g []string) string {
	keyword := g[1]
	if keyword == "elsif" {
		keyword = "elif"
	}

	return "{% " + keyword + " " + legacyVar.ReplaceAllString(g[2], "${1}") + " %}"
}

// rewriteForHeader strips legacy variable references from the iterable of a
// for tag.
func rewriteForHeader(g []string) string {
	iterable := legacyVar.ReplaceAllString(g[2], "${1}")

	return "{% for " + strings.TrimSpace(g[1]) + " in " + strings.TrimSpace(iterable) + " %}"
}

// rewriteInnerBraces replaces each {{ expr }} inside a statement tag with
// the bare expression.
func rewriteInnerBraces(g []string) string {
	return outputTag.ReplaceAllStringFunc(g[0], func(m string) string {
		return strings.TrimSpace(m[2 : len(m)-2])
	})
}
