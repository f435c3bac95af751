// Package cli contains the command line interface for liquid2jinja.
//
// # Usage
//
// With no subcommand, liquid2jinja converts its arguments:
//
//	liquid2jinja email.liquid > email.j2
//	liquid2jinja --subs subs.yaml --set CITY=Rome -d out/ templates/*.liquid
//	cat email.liquid | liquid2jinja
//
// # Commands
//
//   - convert: Convert templates (default)
//   - stages: List the conversion pipeline, optionally filtered
//   - repl: Convert templates interactively
//   - init: Write the current flag values to the configuration file
//   - version: Print the version
//
// # Substitutions
//
// --subs names a JSON object or YAML mapping of literal replacements applied
// to the raw template before conversion. Each --set KEY=VALUE adds an entry,
// replacing any entry of the same key.
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user
// configuration directory, then from LIQUID2JINJA_* environment variables.
// Nested YAML keys are joined with '-' to form flag names:
//
//	log:
//	  level: debug
//	jobs: 8
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o liquid2jinja .
//
//   - --pprof-mode: Enable profiling (cpu, mem, block, mutex, ...)
//   - --pprof-dir: Set profile output directory
package cli
