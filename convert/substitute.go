package convert

import (
	"slices"
	"strings"
)

// Substitution replaces every literal occurrence of Key with Value.
type Substitution struct {
	Key   string
	Value string
}

// Substitutions is an ordered substitution map. Entries are applied in
// order, each to the output of the previous one, so the result depends on
// order only when keys overlap.
type Substitutions []Substitution

// SubstitutionsFromMap returns the entries of m ordered by key.
func SubstitutionsFromMap(m map[string]string) Substitutions {
	subs := make(Substitutions, 0, len(m))
	for k, v := range m {
		subs = append(subs, Substitution{Key: k, Value: v})
	}

	slices.SortFunc(subs, func(a, b Substitution) int {
		return strings.Compare(a.Key, b.Key)
	})

	return subs
}

// Apply performs each substitution in order. Keys are matched as exact
// substrings, not patterns. Empty keys are ignored.
func (s Substitutions) Apply(text string) string {
	for _, sub := range s {
		if sub.Key == "" {
			continue
		}

		text = strings.ReplaceAll(text, sub.Key, sub.Value)
	}

	return text
}

// Set returns s with key mapped to value, replacing the value of an existing
// entry in place or appending a new one.
func (s Substitutions) Set(key, value string) Substitutions {
	if i := slices.IndexFunc(s, func(sub Substitution) bool { return sub.Key == key }); i >= 0 {
		out := slices.Clone(s)
		out[i].Value = value

		return out
	}

	return append(slices.Clip(s), Substitution{Key: key, Value: value})
}

// Map returns s as a map. Later entries win for duplicate keys.
func (s Substitutions) Map() map[string]string {
	m := make(map[string]string, len(s))
	for _, sub := range s {
		m[sub.Key] = sub.Value
	}

	return m
}
