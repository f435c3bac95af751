package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handlers. Styles are bound to
// a renderer for the handler's writer, so color is dropped automatically
// when the writer is not a terminal.
type palette struct {
	key, str, num, yes, no, dur, msg lipgloss.Style
	level                            map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key: fg("8"),
		str: fg("6"),
		num: fg("3"),
		yes: fg("2"),
		no:  fg("1"),
		dur: fg("5"),
		msg: r.NewStyle().Bold(true),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2"),
			slog.LevelWarn:         fg("3"),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

func (p palette) levelStyle(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.level[slog.LevelError]
	case l >= slog.LevelWarn:
		return p.level[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return p.level[slog.LevelInfo]
	case l >= slog.LevelDebug:
		return p.level[slog.LevelDebug]
	default:
		return p.level[slog.Level(LevelTrace)]
	}
}

// value renders v with the style matching its kind.
func (p palette) value(v slog.Value) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())
	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")
	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())
	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, p.key.Render(a.Key)+"="+p.value(a.Value))
		}

		return "{" + strings.Join(parts, " ") + "}"
	default:
		return p.str.Render(fmt.Sprint(v.Any()))
	}
}

// prettyBase holds the state shared by both pretty handlers.
type prettyBase struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	pal        palette
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	groups     []string
}

func newPrettyBase(w io.Writer, opts *slog.HandlerOptions, ft FormatTime) prettyBase {
	return prettyBase{
		opts:       *opts,
		formatTime: ft,
		pal:        newPalette(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (b prettyBase) enabled(level slog.Level) bool {
	return level >= b.opts.Level.Level()
}

func (b prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	b.attrs = append(b.attrs[:len(b.attrs):len(b.attrs)], b.qualify(attrs)...)

	return b
}

func (b prettyBase) withGroup(name string) prettyBase {
	if name != "" {
		b.groups = append(b.groups[:len(b.groups):len(b.groups)], name)
	}

	return b
}

// qualify prefixes attribute keys with the open group names.
func (b prettyBase) qualify(attrs []slog.Attr) []slog.Attr {
	if len(b.groups) == 0 {
		return attrs
	}

	prefix := strings.Join(b.groups, ".") + "."
	out := make([]slog.Attr, len(attrs))

	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}

	return out
}

// fields returns the ordered header and attribute fields of r.
func (b prettyBase) fields(r slog.Record) []slog.Attr {
	fields := make([]slog.Attr, 0, 4+len(b.attrs)+r.NumAttrs())

	if !r.Time.IsZero() && b.formatTime != nil {
		if ts := b.formatTime(r.Time); ts != "" {
			fields = append(fields, slog.String(slog.TimeKey, ts))
		}
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if b.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, b.attrs...)

	var own []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		own = append(own, a)

		return true
	})

	return append(fields, b.qualify(own)...)
}

func (b prettyBase) render(a slog.Attr) string {
	switch a.Key {
	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			return b.pal.levelStyle(l).Render(strings.ToUpper(Level(l).String()))
		}
	case slog.MessageKey:
		return b.pal.msg.Render(a.Value.String())
	}

	return b.pal.value(a.Value)
}

func (b prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler writes one colorized key=value line per record.
type prettyTextHandler struct{ prettyBase }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	ft FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{newPrettyBase(w, opts, ft)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	for i, a := range h.fields(r) {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(a.Key))
		buf.WriteByte('=')
		buf.WriteString(h.render(a))
	}

	return h.write(&buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler writes each record as an indented, colorized object.
type prettyJSONHandler struct{ prettyBase }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	ft FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyBase(w, opts, ft)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	buf.WriteString("{\n")

	for i, a := range h.fields(r) {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.pal.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(": ")
		buf.WriteString(h.render(a))
	}

	buf.WriteString("\n}")

	return h.write(&buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
