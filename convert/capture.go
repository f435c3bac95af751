package convert

import "strings"

// TranslateCapture returns the block set statement equivalent to a capture
// block named name with the given body. Surrounding whitespace is trimmed
// from both.
func TranslateCapture(name, body string) string {
	return "{% set " + strings.TrimSpace(name) + " %}" +
		strings.TrimSpace(body) +
		"{% endset %}"
}
