package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Stopper ends a profiling session.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty or unknown mode disables profiling.
	Mode string
	// Path is the output directory. Empty selects the working directory.
	Path string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Start begins profiling and returns a [Stopper] that writes the profile.
// If profiling is not compiled in or p.Mode is unset, Start returns a no-op.
// Both Start and Stop are always safely callable.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
