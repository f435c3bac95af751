package convert

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// ParseSubstitutions parses a substitution map written as a JSON object or
// YAML mapping. Entries keep their document order; a repeated key keeps its
// first position and takes its last value. Scalar values are
// converted to strings and null becomes the empty string. Empty input is an
// empty map.
//
// Any other document is rejected with an error matching
// [ErrInvalidSubstitutions]; callers must not convert anything in that case.
func ParseSubstitutions(data []byte) (Substitutions, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Substitutions{}, nil
	}

	var doc any

	if err := yaml.UnmarshalWithOptions(data, &doc,
		yaml.UseOrderedMap(),
		yaml.AllowDuplicateMapKey(),
	); err != nil {
		return nil, ErrInvalidSubstitutions.Wrap(err)
	}

	var items yaml.MapSlice

	switch v := doc.(type) {
	case nil:
		return Substitutions{}, nil
	case yaml.MapSlice:
		items = v
	default:
		return nil, ErrInvalidSubstitutions.
			Wrap(fmt.Errorf("expected a mapping, got %s", typeName(doc)))
	}

	subs := make(Substitutions, 0, len(items))

	for _, item := range items {
		key := fmt.Sprint(item.Key)

		value, ok := scalarString(item.Value)
		if !ok {
			return nil, ErrInvalidSubstitutions.
				Wrap(fmt.Errorf("value of %q must be a scalar, got %s", key, typeName(item.Value))).
				With(slog.String("key", key))
		}

		subs = subs.Set(key, value)
	}

	return subs, nil
}

// ReadSubstitutions reads r to EOF and parses it with [ParseSubstitutions].
func ReadSubstitutions(r io.Reader) (Substitutions, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseSubstitutions(data)
}

// ParseAssignment parses a single KEY=VALUE substitution. The key is
// everything before the first '=' and must not be empty.
func ParseAssignment(s string) (Substitution, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return Substitution{}, ErrInvalidSubstitutions.
			Wrap(fmt.Errorf("%q is not of the form KEY=VALUE", s))
	}

	return Substitution{Key: key, Value: value}, nil
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	default:
		return "", false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case yaml.MapSlice, map[string]any:
		return "mapping"
	case []any:
		return "sequence"
	default:
		return fmt.Sprintf("%T", v)
	}
}
