package convert

import (
	"regexp"
)

// Kind discriminates how a [Stage] produces its replacement text.
type Kind int

const (
	// KindTemplate stages expand a replacement template in which ${n}
	// refers to the n-th capture group (see [regexp.Regexp.Expand]).
	KindTemplate Kind = iota
	// KindRewrite stages call a [RewriteFunc] with the capture groups.
	KindRewrite
)

// String returns "template" or "rewrite".
func (k Kind) String() string {
	switch k {
	case KindTemplate:
		return "template"
	case KindRewrite:
		return "rewrite"
	default:
		return "unknown"
	}
}

// RewriteFunc computes the replacement for one match. groups[0] is the whole
// match and groups[n] the n-th capture group; groups that did not
// participate in the match are empty.
type RewriteFunc func(groups []string) string

// Stage is one pattern substitution in a [Pipeline]. Exactly one of
// Template or Rewrite is meaningful, selected by Kind.
type Stage struct {
	Name     StageName
	Kind     Kind
	Pattern  *regexp.Regexp
	Template string
	Rewrite  RewriteFunc
}

// TemplateStage returns a [KindTemplate] stage. It panics if pattern does
// not compile.
func TemplateStage(name StageName, pattern, template string) Stage {
	return Stage{
		Name:     name,
		Kind:     KindTemplate,
		Pattern:  regexp.MustCompile(pattern),
		Template: template,
	}
}

// RewriteStage returns a [KindRewrite] stage. It panics if pattern does not
// compile.
func RewriteStage(name StageName, pattern string, fn RewriteFunc) Stage {
	return Stage{
		Name:    name,
		Kind:    KindRewrite,
		Pattern: regexp.MustCompile(pattern),
		Rewrite: fn,
	}
}

// Apply replaces every non-overlapping match of the stage pattern in text
// and returns the result with the number of matches replaced. A stage with
// no pattern, or a rewrite stage with no function, returns text unchanged.
func (s Stage) Apply(text string) (string, int) {
	if s.Pattern == nil || (s.Kind == KindRewrite && s.Rewrite == nil) {
		return text, 0
	}

	locs := s.Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text, 0
	}

	out := make([]byte, 0, len(text))
	last := 0

	for _, loc := range locs {
		out = append(out, text[last:loc[0]]...)

		switch s.Kind {
		case KindRewrite:
			out = append(out, s.Rewrite(submatches(text, loc))...)
		default:
			out = s.Pattern.ExpandString(out, s.Template, text, loc)
		}

		last = loc[1]
	}

	out = append(out, text[last:]...)

	return string(out), len(locs)
}

// submatches slices text by the index pairs in loc.
func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)

	for i := range groups {
		if start, end := loc[2*i], loc[2*i+1]; start >= 0 && end >= 0 {
			groups[i] = text[start:end]
		}
	}

	return groups
}
