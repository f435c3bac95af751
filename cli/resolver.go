package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/Srimutu/liquid-to-jinja-converter/log"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// Keys name flags. Nested mappings are joined with hyphens, and
// underscores may stand in for hyphens, so these are equivalent:
//
//	log-level: debug
//	log_level: debug
//	log:
//	  level: debug
//
// Sequences set repeatable flags such as --set. Command-line flags
// override config file values. A malformed file is logged and ignored.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc map[string]any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.Warn("ignoring malformed configuration", slog.Any("error", err))

		return config{}, nil
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] for flattened YAML configs.
type config map[string]any

// flatten records every leaf of m under its hyphen-joined key path.
func (r config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if sub, ok := value.(map[string]any); ok {
			r.flatten(name, sub)

			continue
		}

		r[name] = scalar(value)
	}
}

// scalar converts numbers to strings, which kong parses with the flag's
// own mapper.
func scalar(v any) any {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
