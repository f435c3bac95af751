//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// version is the semantic version embedded at build time.
//
//go:embed VERSION
var version string

// Version returns the embedded semantic version without surrounding
// whitespace.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the canonical command identifier used across the project.
	// It appears in help text, default config paths, and environment
	// variable prefixes.
	Name = "liquid2jinja"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Convert Liquid templates to Jinja"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"Srimutu", ""},
}

// Prefix returns the environment variable prefix derived from [Name]:
// upper case, non-alphanumerics replaced by underscores, with a trailing
// underscore.
func Prefix() string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, Name) + "_"
}
