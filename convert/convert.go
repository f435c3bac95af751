package convert

import (
	"context"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/Srimutu/liquid-to-jinja-converter/log"
)

// Option configures a conversion.
type Option func(*options)

type options struct {
	logger   log.Logger
	pipeline Pipeline
}

// WithLogger sets the logger used for trace output. The zero logger, the
// default, discards everything.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPipeline replaces [Default] for this conversion.
func WithPipeline(p Pipeline) Option {
	return func(o *options) { o.pipeline = p }
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Convert returns the Jinja translation of the Liquid template text after
// applying subs. It never fails; input it does not recognize is passed
// through unchanged.
func Convert(text string, subs Substitutions) string {
	return ConvertContext(context.Background(), text, subs)
}

// ConvertContext is [Convert] with options. The context is only used for
// logging; conversion is not interruptible.
func ConvertContext(
	ctx context.Context,
	text string,
	subs Substitutions,
	opts ...Option,
) string {
	o := makeOptions(opts...)

	pipeline := o.pipeline
	if pipeline == nil {
		pipeline = defaultPipeline
	}

	text = subs.Apply(text)

	o.logger.TraceContext(ctx, "substitutions applied",
		slog.Int("count", len(subs)),
		slog.Int("length", len(text)),
	)

	return pipeline.Apply(ctx, text, opts...)
}

// ConvertReader reads a template from r and converts it. Reading is the
// only thing that can fail.
func ConvertReader(
	ctx context.Context,
	r io.Reader,
	subs Substitutions,
	opts ...Option,
) (string, error) {
	// Read ahead asynchronously; templates are read whole before converting.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err)
	}

	return ConvertContext(ctx, string(data), subs, opts...), nil
}
