package convert

import (
	"regexp"
	"strings"
)

var (
	whenMarker = regexp.MustCompile(`\{%\s*when\s+(.*?)\s*%\}`)
	elseMarker = regexp.MustCompile(`\{%\s*else\s*%\}`)
)

const endIf = "{% endif %}"

// Branch is one when clause of a case block.
type Branch struct {
	// Values are the literals the selector is compared against, with
	// surrounding whitespace and quotes removed.
	Values []string
	Body   string
}

// CaseBlock is the decomposed form of a case block.
type CaseBlock struct {
	Selector string
	Branches []Branch
	Else     string
	HasElse  bool
}

// ParseCase decomposes the body of a case block (the text between the case
// tag and the endcase tag). Text before the first when tag is dropped. The
// else tag is only recognized after the last when tag, and its body runs to
// the end of the block.
func ParseCase(selector, body string) CaseBlock {
	block := CaseBlock{Selector: strings.TrimSpace(selector)}

	markers := whenMarker.FindAllStringSubmatchIndex(body, -1)
	if len(markers) == 0 {
		return block
	}

	tail := len(body)

	last := markers[len(markers)-1][1]
	if loc := elseMarker.FindStringIndex(body[last:]); loc != nil {
		tail = last + loc[0]
		block.Else = strings.TrimSpace(body[last+loc[1]:])
		block.HasElse = true
	}

	block.Branches = make([]Branch, len(markers))

	for i, m := range markers {
		end := tail
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}

		block.Branches[i] = Branch{
			Values: whenValues(body[m[2]:m[3]]),
			Body:   body[m[1]:end],
		}
	}

	return block
}

// Jinja renders the block as an if/elif/else chain, one clause per line.
// A block without branches renders as the closing tag alone.
func (c CaseBlock) Jinja() string {
	if len(c.Branches) == 0 {
		return endIf
	}

	clauses := make([]string, 0, len(c.Branches)+2)

	for i, b := range c.Branches {
		keyword := "elif"
		if i == 0 {
			keyword = "if"
		}

		clauses = append(clauses, "{% "+keyword+" "+c.condition(b)+" %}"+b.Body)
	}

	if c.HasElse {
		clauses = append(clauses, "{% else %}"+c.Else)
	}

	return strings.Join(append(clauses, endIf), "\n")
}

func (c CaseBlock) condition(b Branch) string {
	tests := make([]string, len(b.Values))
	for i, v := range b.Values {
		tests[i] = c.Selector + " == " + v
	}

	return strings.Join(tests, " or ")
}

// TranslateCase rewrites a case block with the given selector and body as
// an if/elif/else chain.
func TranslateCase(selector, body string) string {
	return ParseCase(selector, body).Jinja()
}

// whenValues splits the argument of a when tag into its alternatives.
// Alternatives are separated by commas or the word "or" outside quotes.
// Each is trimmed and stripped of surrounding quotes.
func whenValues(arg string) []string {
	var (
		values []string
		quote  rune
		start  int
	)

	push := func(end int) {
		values = append(values, unquote(arg[start:end]))
	}

	for i, r := range arg {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}

		case r == '"' || r == '\'':
			quote = r

		case r == ',':
			push(i)
			start = i + 1

		case isOrSeparator(arg, i):
			push(i)
			start = i + len(" or ")
		}
	}

	push(len(arg))

	return values
}

// isOrSeparator reports whether arg has the word "or" surrounded by
// whitespace beginning at the whitespace byte i.
func isOrSeparator(arg string, i int) bool {
	const sep = " or "

	if i+len(sep) > len(arg) || !isSpace(arg[i]) || !isSpace(arg[i+3]) {
		return false
	}

	return arg[i+1:i+3] == "or"
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}
