package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/Srimutu/liquid-to-jinja-converter/convert"
	"github.com/Srimutu/liquid-to-jinja-converter/log"
)

// cmdPrefix introduces a REPL command; any other line is a template.
const cmdPrefix = ":"

// commands are the available REPL commands, without the prefix.
var commands = []string{"help", "stages", "trace", "set", "subs", "clear", "quit"}

func helpMessage() string {
	return `
Type a Liquid template line to see its Jinja translation.

Commands:

  :help          Print this cruft
  :stages [q]    List pipeline stages, fuzzy-filtered by q
  :trace <line>  Show the output of every stage that changes line
  :set K=V       Add or replace a substitution
  :subs          List substitutions in the order they apply
  :clear         Clear screen
  :quit          Exit REPL

Keys:
  Tab / Shift-Tab cycle completions, Up/Down browse history,
  Ctrl+C on an empty line or Ctrl+D exits.
`
}

// reply is the outcome of one line of input.
type reply struct {
	text  string
	err   error
	clear bool
	quit  bool
}

// session holds the state a REPL accumulates between lines.
type session struct {
	subs     convert.Substitutions
	pipeline convert.Pipeline
	logger   log.Logger
}

func newSession(subs convert.Substitutions, logger log.Logger) *session {
	return &session{
		subs:     subs,
		pipeline: convert.Default(),
		logger:   logger,
	}
}

// exec evaluates one line of input.
func (s *session) exec(ctx context.Context, line string) reply {
	if cmd, ok := strings.CutPrefix(line, cmdPrefix); ok {
		return s.command(ctx, cmd)
	}

	return reply{text: s.convert(ctx, line)}
}

func (s *session) convert(ctx context.Context, text string) string {
	return convert.ConvertContext(ctx, text, s.subs,
		convert.WithLogger(s.logger),
		convert.WithPipeline(s.pipeline),
	)
}

func (s *session) command(ctx context.Context, input string) reply {
	name, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "q", "quit", "exit":
		return reply{quit: true}

	case "h", "help":
		return reply{text: helpMessage()}

	case "c", "clear":
		return reply{clear: true}

	case "stages":
		return reply{text: s.stages(arg)}

	case "trace":
		if arg == "" {
			return reply{err: fmt.Errorf("%w: :trace <line>", ErrUsage)}
		}

		return reply{text: s.trace(ctx, arg)}

	case "set":
		sub, err := convert.ParseAssignment(arg)
		if err != nil {
			return reply{err: err}
		}

		s.subs = s.subs.Set(sub.Key, sub.Value)

		return reply{text: fmt.Sprintf("%q = %q", sub.Key, sub.Value)}

	case "subs":
		return reply{text: s.listSubs()}

	default:
		return reply{err: fmt.Errorf("%w: %s (try :help)", ErrUnknownCmd, name)}
	}
}

// stages lists the stage names matching query in pipeline order.
func (s *session) stages(query string) string {
	names := s.stageNames()

	keep := make([]bool, len(names))

	if query == "" {
		for i := range keep {
			keep[i] = true
		}
	} else {
		for _, m := range fuzzy.Find(query, names) {
			keep[m.Index] = true
		}
	}

	var b strings.Builder

	for i, name := range names {
		if keep[i] {
			fmt.Fprintf(&b, "%2d  %-16s  %s\n", i, name, s.pipeline[i].Kind)
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// trace shows the text after each stage that changed it.
func (s *session) trace(ctx context.Context, line string) string {
	text := s.subs.Apply(line)

	var b strings.Builder

	if text != line {
		fmt.Fprintf(&b, "%-16s  %s\n", "substitutions", text)
	}

	for _, step := range s.pipeline.Trace(text) {
		if step.Changed() && step.Output != text {
			fmt.Fprintf(&b, "%-16s  %s\n", step.Stage, step.Output)
		}

		text = step.Output
	}

	s.logger.TraceContext(ctx, "repl trace")

	if b.Len() == 0 {
		return "(no stage matched)"
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (s *session) listSubs() string {
	if len(s.subs) == 0 {
		return "(no substitutions)"
	}

	lines := make([]string, len(s.subs))
	for i, sub := range s.subs {
		lines[i] = fmt.Sprintf("%q = %q", sub.Key, sub.Value)
	}

	return strings.Join(lines, "\n")
}

// stageNames returns the names of the session pipeline.
func (s *session) stageNames() []string {
	names := make([]string, len(s.pipeline))
	for i, st := range s.pipeline {
		names[i] = string(st.Name)
	}

	return names
}
