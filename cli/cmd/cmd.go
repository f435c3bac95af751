package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/Srimutu/liquid-to-jinja-converter/convert"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the named kong variable, or the empty string if ctx
// carries no kong.Context or the variable is undefined.
func kongVar(ctx context.Context, name string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[name]
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// uniqueSources returns sources with duplicates removed, preserving order.
//
// Files are compared by device/inode after resolving symlinks, so the same
// file named two ways is converted once. Every occurrence of "-" collapses
// into a single stdin source placed last. Paths that cannot be resolved are
// kept as given so that opening them reports the error.
func uniqueSources(sources []string) []string {
	if len(sources) == 0 {
		return nil
	}

	unique := make([]string, 0, len(sources))
	seen := make(map[fileKey]struct{})
	hasStdin := false

	for _, src := range sources {
		if src == stdinSource {
			hasStdin = true

			continue
		}

		key, ok := sourceKey(src)
		if ok {
			if _, exists := seen[key]; exists {
				continue
			}

			seen[key] = struct{}{}
		}

		unique = append(unique, src)
	}

	if hasStdin {
		unique = append(unique, stdinSource)
	}

	return unique
}

// sourceKey resolves path to its device/inode identity.
func sourceKey(path string) (fileKey, bool) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

type (
	substitutionsKey   struct{}
	substitutionSource struct {
		file string
		sets []string
	}
)

// WithSubstitutions returns a new context.Context recording where the
// substitution map comes from: an optional JSON or YAML file and a list of
// KEY=VALUE assignments applied after it. Nothing is read until a command
// asks for the map.
func WithSubstitutions(
	ctx context.Context,
	file string,
	sets []string,
) context.Context {
	return context.WithValue(ctx, substitutionsKey{}, substitutionSource{
		file: file,
		sets: sets,
	})
}

// substitutionsFrom loads the substitution map recorded in ctx by
// WithSubstitutions. A context without one yields an empty map.
func substitutionsFrom(ctx context.Context) (convert.Substitutions, error) {
	src, _ := ctx.Value(substitutionsKey{}).(substitutionSource)

	subs := convert.Substitutions{}

	if src.file != "" {
		data, err := os.ReadFile(src.file)
		if err != nil {
			return nil, ErrReadSource.
				With(slog.String("file", src.file)).
				Wrap(err)
		}

		subs, err = convert.ParseSubstitutions(data)
		if err != nil {
			return nil, convert.WrapError(err).
				With(slog.String("file", src.file))
		}
	}

	for _, set := range src.sets {
		sub, err := convert.ParseAssignment(set)
		if err != nil {
			return nil, err
		}

		subs = subs.Set(sub.Key, sub.Value)
	}

	return subs, nil
}
