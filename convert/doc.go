// Package convert rewrites Liquid templates into Jinja templates.
//
// Conversion is textual. A [Pipeline] is an ordered list of [Stage] values,
// each a regular expression paired with either a replacement template or a
// rewrite function, and the text is folded through every stage in turn. No
// syntax tree is built and nothing is validated: a stage whose pattern does
// not occur is a no-op, so every input produces some output.
//
// # Usage
//
//	out := convert.Convert(src, convert.Substitutions{
//		{Key: "${first_name}", Value: "{{ first_name }}"},
//	})
//
// Substitutions are literal and run before any stage, so a substitution
// that introduces Liquid syntax is still rewritten by the pipeline.
//
// # Stage Order
//
// The order of [Default] is significant. Narrow forms run before the
// general forms that would otherwise consume them (assign with times
// before assign), structural blocks run before header cleanup, and the
// canonical variable forms run last because any earlier stage may leave
// one behind. See the [StageName] constants for the full sequence.
//
// # Structural Blocks
//
// Two stages delegate to translators: case/when/else blocks become an
// if/elif/else chain, and capture blocks become block set statements.
// Nested structural blocks are not supported.
//
// # Lint
//
// [Lint] parses converted text with pongo2 and reports the first problem.
// It is advisory only; [Convert] never calls it.
package convert
