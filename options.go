package eventq

// Option configures a Queue at construction time, following the
// functional-options pattern the teacher's loopOptions/LoopOption/
// resolveLoopOptions triad uses: each Option mutates a private config
// struct, and NewQueue applies defaults for anything left unset.
type Option func(*queueConfig)

type queueConfig struct {
	bufferSize    int
	minAllocShift uint
	clock         Clock
	critical      CriticalSection
	waiter        Waiter
	debugAssert   bool
	panicHandler  func(recovered any)
}

const defaultBufferSize = 4096

func defaultConfig() queueConfig {
	return queueConfig{
		bufferSize:    defaultBufferSize,
		minAllocShift: minAllocShiftFloor,
	}
}

// WithBufferSize sets the size in bytes of the queue's single fixed
// backing buffer. The usable region is rounded down to the nearest
// power of two multiple of the minimum chunk size; any remainder goes
// unaddressed. Ignored if n <= 0.
func WithBufferSize(n int) Option {
	return func(c *queueConfig) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// WithMinAllocShift sets log2 of the smallest allocatable chunk in
// bytes. Values below the package floor are clamped up.
func WithMinAllocShift(shift uint) Option {
	return func(c *queueConfig) { c.minAllocShift = shift }
}

// WithClock overrides the tick source. Defaults to NewSystemClock().
func WithClock(clock Clock) Option {
	return func(c *queueConfig) { c.clock = clock }
}

// WithCriticalSection overrides the mutual-exclusion primitive.
// Defaults to NewMutexCriticalSection().
func WithCriticalSection(cs CriticalSection) Option {
	return func(c *queueConfig) { c.critical = cs }
}

// WithWaiter overrides the dispatcher's timed signal. Defaults to
// NewChannelWaiter().
func WithWaiter(w Waiter) Option {
	return func(c *queueConfig) { c.waiter = w }
}

// WithDebugAssertions enables panicking with a ProgrammerError instead
// of silently ignoring violations of the single-owner contract (Dealloc
// of a stale or posted id, PostRaw of a stale or already-posted id, and
// Dispatch on a closed Queue). Cancel of a stale or unknown id stays a
// silent no-op either way. Off by default, matching the mbed original's
// "undefined behavior" stance for release builds.
func WithDebugAssertions(enabled bool) Option {
	return func(c *queueConfig) { c.debugAssert = enabled }
}

// WithPanicHandler installs a recovery hook invoked whenever a posted
// callback panics during Dispatch. Without one, a panicking callback
// propagates out of Dispatch exactly as it would out of any other Go
// call, per the package's policy of never hiding a bug behind a default
// recover — callers that want the loop to survive a single bad callback
// must opt in explicitly.
func WithPanicHandler(fn func(recovered any)) Option {
	return func(c *queueConfig) { c.panicHandler = fn }
}

func resolveOptions(opts []Option) queueConfig {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		cfg.clock = NewSystemClock()
	}
	if cfg.critical == nil {
		cfg.critical = NewMutexCriticalSection()
	}
	if cfg.waiter == nil {
		cfg.waiter = NewChannelWaiter()
	}
	return cfg
}
