package convert

import (
	"github.com/flosch/pongo2/v6"
)

// Lint parses text as a pongo2 template and returns an error matching
// [ErrLint] describing the first problem found, or nil.
//
// pongo2 implements a subset of Jinja, so some valid Jinja (block set
// statements, slices) is reported too. Results are advisory.
func Lint(text string) error {
	if _, err := pongo2.FromString(text); err != nil {
		return ErrLint.Wrap(err)
	}

	return nil
}
