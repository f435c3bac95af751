package log

import (
	"io"
	"sync"
)

// Option applies a configuration option to config.
type Option func(config) config

// apply applies multiple options to a config.
func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	return cfg
}

// locked runs fn against c while holding its write lock, creating the lock
// first if c has none.
func locked(fn func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		} else {
			c.mutex.Lock()
			defer c.mutex.Unlock()
		}

		fn(&c)

		return c
	}
}

// WithDefaults returns an option that resets every setting to its default
// and directs output to w.
func WithDefaults(w io.Writer) Option {
	return locked(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
		c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty
	})
}

// WithOutput returns an option that sets the output writer.
// A nil writer discards all output.
func WithOutput(w io.Writer) Option {
	return locked(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	})
}

// WithLevel returns an option that sets the minimum level logged.
func WithLevel(level Level) Option {
	return locked(func(c *config) { c.level = level })
}

// WithFormat returns an option that sets the output format.
func WithFormat(format Format) Option {
	return locked(func(c *config) { c.format = format })
}

// WithTimeLayout returns an option that sets the timestamp layout.
//
// Named layouts from the [time] package are matched case-insensitively
// (for example "RFC3339" or "kitchen"); anything else is passed verbatim to
// [time.Time.Format]. An empty layout or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return locked(func(c *config) { c.formatTime = format })
}

// WithCaller returns an option that controls whether source locations are
// included in log records.
func WithCaller(enable bool) Option {
	return locked(func(c *config) { c.caller = enable })
}

// WithPretty returns an option that controls colorized output.
func WithPretty(enable bool) Option {
	return locked(func(c *config) { c.pretty = enable })
}
