package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// completionContext determines what the word under the cursor completes
// to. Only commands complete: their names after the prefix, and stage
// names as the argument of :stages.
func completionContext(input string, cursor int, stages []string) (
	word string,
	start int,
	candidates []string,
) {
	if cursor > len(input) {
		cursor = len(input)
	}

	if !strings.HasPrefix(input, cmdPrefix) {
		return "", cursor, nil
	}

	head := input[:cursor]

	sp := strings.IndexByte(head, ' ')
	if sp < 0 {
		return head[len(cmdPrefix):], len(cmdPrefix), commands
	}

	if strings.TrimSpace(head[len(cmdPrefix):sp]) != "stages" {
		return "", cursor, nil
	}

	start = strings.LastIndexByte(head, ' ') + 1

	return head[start:], start, stages
}

// findMatches ranks candidates against word. An empty word matches every
// candidate in order.
func findMatches(word string, candidates []string) fuzzy.Matches {
	if len(candidates) == 0 {
		return nil
	}

	if word == "" {
		matches := make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches
	}

	return fuzzy.Find(word, candidates)
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := suggestionStyle.Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}
