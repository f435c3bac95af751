package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/Srimutu/liquid-to-jinja-converter/convert"
	"github.com/Srimutu/liquid-to-jinja-converter/log"
)

// outputMode is the permission mode for converted files.
const outputMode os.FileMode = 0o644

// Convert translates Liquid templates to Jinja.
type Convert struct {
	Sources []string `arg:"" help:"Liquid template file(s) or '-' for stdin" name:"source" optional:"" type:"path"`

	Output string `help:"Write the converted template to this file instead of stdout" short:"o" type:"path"`
	OutDir string `help:"Convert every source into this directory"                    short:"d" type:"path"`
	Ext    string `help:"File extension used with --out-dir"                                              default:"j2"`
	Jobs   int    `help:"Maximum concurrent conversions with --out-dir"              short:"j"            default:"${jobs}"`
	Until  string `help:"Stop after the named pipeline stage"                        enum:",${stages}"    default:""`
	Lint   bool   `help:"Warn when the output does not parse as a template"`

	stdin  io.Reader
	stdout io.Writer
}

// Run executes the convert command.
func (c *Convert) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	// A bad substitution map must abort before anything is converted.
	subs, err := substitutionsFrom(ctx)
	if err != nil {
		return err
	}

	opts := []convert.Option{convert.WithLogger(log.Default())}
	if c.Until != "" {
		opts = append(opts, convert.WithPipeline(
			convert.Default().Until(convert.StageName(c.Until)),
		))
	}

	sources := uniqueSources(c.Sources)
	if len(sources) == 0 {
		sources = []string{stdinSource}
	}

	log.DebugContext(ctx, "convert start",
		slog.Int("sources", len(sources)),
		slog.Int("substitutions", len(subs)),
		slog.String("out_dir", c.OutDir),
	)

	if c.OutDir == "" {
		if len(sources) > 1 {
			return ErrTooManyInput.With(slog.Int("sources", len(sources)))
		}

		return c.single(ctx, sources[0], subs, opts)
	}

	return c.batch(ctx, sources, subs, opts)
}

// single converts one source to --output or stdout.
func (c *Convert) single(
	ctx context.Context,
	source string,
	subs convert.Substitutions,
	opts []convert.Option,
) error {
	out, err := c.convertSource(ctx, source, subs, opts)
	if err != nil {
		return err
	}

	if c.Output == "" {
		_, err = io.WriteString(c.writer(), out)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	_, err = writeIfChanged(ctx, c.Output, []byte(out))

	return err
}

// batch converts every source concurrently into --out-dir. The first
// failure cancels conversions that have not started.
func (c *Convert) batch(
	ctx context.Context,
	sources []string,
	subs convert.Substitutions,
	opts []convert.Option,
) error {
	targets, err := c.outputPaths(sources)
	if err != nil {
		return err
	}

	err = os.MkdirAll(c.OutDir, 0o755)
	if err != nil {
		return ErrWriteOutput.
			With(slog.String("dir", c.OutDir)).
			Wrap(err)
	}

	g, ctx := errgroup.WithContext(ctx)
	if c.Jobs > 0 {
		g.SetLimit(c.Jobs)
	}

	for i, source := range sources {
		target := targets[i]

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out, err := c.convertSource(ctx, source, subs, opts)
			if err != nil {
				return err
			}

			_, err = writeIfChanged(ctx, target, []byte(out))

			return err
		})
	}

	return g.Wait()
}

// convertSource reads and converts one source, linting the result if
// requested.
func (c *Convert) convertSource(
	ctx context.Context,
	source string,
	subs convert.Substitutions,
	opts []convert.Option,
) (string, error) {
	var r io.Reader

	if source == stdinSource {
		r = c.reader()
	} else {
		file, err := os.Open(source)
		if err != nil {
			return "", ErrReadSource.
				With(slog.String("file", source)).
				Wrap(err)
		}
		defer file.Close()

		r = file
	}

	out, err := convert.ConvertReader(ctx, r, subs, opts...)
	if err != nil {
		return "", ErrReadSource.
			With(slog.String("file", source)).
			Wrap(err)
	}

	if c.Lint {
		if err := convert.Lint(out); err != nil {
			log.WarnContext(ctx, "lint",
				slog.String("file", source),
				slog.Any("error", err),
			)
		}
	}

	return out, nil
}

// outputPath returns the --out-dir path for source: its base name with the
// extension replaced by --ext. Stdin is written as "stdin".
func (c *Convert) outputPath(source string) string {
	base := "stdin"
	if source != stdinSource {
		base = filepath.Base(source)
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if ext := strings.TrimPrefix(c.Ext, "."); ext != "" {
		base += "." + ext
	}

	return filepath.Join(c.OutDir, base)
}

// outputPaths returns the --out-dir path of every source, in order. Two
// sources that would write the same file are an error.
func (c *Convert) outputPaths(sources []string) ([]string, error) {
	paths := make([]string, len(sources))
	owner := make(map[string]string, len(sources))

	for i, source := range sources {
		path := c.outputPath(source)

		if prev, ok := owner[path]; ok {
			return nil, ErrOutputConflict.With(
				slog.String("file", path),
				slog.String("source", prev),
				slog.String("conflict", source),
			)
		}

		owner[path] = source
		paths[i] = path
	}

	return paths, nil
}

func (c *Convert) reader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}

	return os.Stdin
}

func (c *Convert) writer() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}

	return os.Stdout
}

// writeIfChanged writes data to path unless the file already holds the same
// content, reporting whether it wrote. Content identity is the 128-bit xxh3
// digest.
func writeIfChanged(ctx context.Context, path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && len(existing) == len(data) &&
		xxh3.Hash128(existing) == xxh3.Hash128(data) {
		log.DebugContext(ctx, "output unchanged", slog.String("file", path))

		return false, nil
	}

	err = os.WriteFile(path, data, outputMode)
	if err != nil {
		return false, ErrWriteOutput.
			With(slog.String("file", path)).
			Wrap(err)
	}

	log.DebugContext(ctx, "output written",
		slog.String("file", path),
		slog.Int("bytes", len(data)),
	)

	return true, nil
}
