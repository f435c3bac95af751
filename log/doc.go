// Package log provides the structured logger used throughout liquid2jinja.
//
// It is a thin layer over [log/slog] that adds a Trace level, named time
// layouts, colorized pretty output, and a package-level default logger that
// the command line reconfigures as flags are parsed.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("converted", slog.String("source", "email.liquid"))
//
// # Configuration
//
// Loggers are configured with functional options applied at creation time:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
// [Logger.Wrap] derives a new logger from an existing one, overriding only
// the given options.
//
// # Zero Value
//
// The zero [Logger] discards everything. Library code accepts a Logger by
// value and logs unconditionally; callers that want no output simply pass
// nothing.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText] are supported. With pretty
// printing enabled (the default), both are rendered with lipgloss styles.
package log
