package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/sahilm/fuzzy"

	"github.com/Srimutu/liquid-to-jinja-converter/convert"
	"github.com/Srimutu/liquid-to-jinja-converter/log"
)

// Stages lists the conversion pipeline.
type Stages struct {
	Query string `arg:"" help:"Fuzzy filter on stage names" optional:""`
	Where string `help:"Boolean expression over Index, Name, Kind and Pattern" short:"w"`

	stdout io.Writer
}

// StageInfo describes one pipeline stage. Its fields are the variables
// available to --where expressions.
type StageInfo struct {
	Index   int
	Name    string
	Kind    string
	Pattern string
}

// Run executes the stages command.
func (s *Stages) Run(ctx context.Context) error {
	infos, err := FilterStages(convert.Default(), s.Query, s.Where)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "stages",
		slog.String("query", s.Query),
		slog.String("where", s.Where),
		slog.Int("matches", len(infos)),
	)

	w := s.stdout
	if w == nil {
		w = os.Stdout
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tNAME\tKIND\tPATTERN")

	for _, info := range infos {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", info.Index, info.Name, info.Kind, info.Pattern)
	}

	if err := tw.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// FilterStages describes the stages of p that satisfy both filters, in
// pipeline order. An empty query or where expression matches everything.
// A where expression that does not compile to a boolean is an error
// matching [ErrInvalidQuery].
func FilterStages(p convert.Pipeline, query, where string) ([]StageInfo, error) {
	infos := make([]StageInfo, len(p))
	for i, s := range p {
		infos[i] = StageInfo{
			Index:   i,
			Name:    string(s.Name),
			Kind:    s.Kind.String(),
			Pattern: s.Pattern.String(),
		}
	}

	if query != "" {
		infos = fuzzyStages(infos, query)
	}

	if where == "" {
		return infos, nil
	}

	program, err := expr.Compile(where, expr.Env(StageInfo{}), expr.AsBool())
	if err != nil {
		return nil, ErrInvalidQuery.
			With(slog.String("where", where)).
			Wrap(err)
	}

	return whereStages(infos, program)
}

// fuzzyStages keeps the stages whose name fuzzy-matches query.
func fuzzyStages(infos []StageInfo, query string) []StageInfo {
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}

	matches := fuzzy.Find(query, names)

	keep := make([]int, len(matches))
	for i, m := range matches {
		keep[i] = m.Index
	}

	slices.Sort(keep)

	out := make([]StageInfo, len(keep))
	for i, k := range keep {
		out[i] = infos[k]
	}

	return out
}

func whereStages(infos []StageInfo, program *vm.Program) ([]StageInfo, error) {
	out := make([]StageInfo, 0, len(infos))

	for _, info := range infos {
		result, err := expr.Run(program, info)
		if err != nil {
			return nil, ErrInvalidQuery.
				With(slog.String("stage", info.Name)).
				Wrap(err)
		}

		if ok, _ := result.(bool); ok {
			out = append(out, info)
		}
	}

	return out, nil
}
