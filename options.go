package forkjoin

// config holds every builder hint. None of them changes behavior; they are
// kept so that Build can report what was asked for.
type config struct {
	numThreads       int
	stackSize        int
	threadName       func(int) string
	startHandler     func(int)
	exitHandler      func(int)
	panicHandler     func(any)
	breadthFirst     bool
	useCurrentThread bool
}

// Option configures a [Builder].
type Option func(*config)

func defaultConfig() config {
	return config{}
}

// WithNumThreads requests n worker threads. Zero means "pick a default".
// The inline pool always runs with one worker regardless of n.
// Negative values are treated as zero.
func WithNumThreads(n int) Option {
	return func(c *config) {
		c.numThreads = max(n, 0)
	}
}

// WithThreadName sets the function used to name worker threads.
func WithThreadName(fn func(index int) string) Option {
	return func(c *config) {
		c.threadName = fn
	}
}

// WithStackSize requests a stack size in bytes for worker threads.
// Negative values are treated as zero.
func WithStackSize(size int) Option {
	return func(c *config) {
		c.stackSize = max(size, 0)
	}
}

// WithStartHandler registers a hook for worker start. It is never called.
func WithStartHandler(fn func(index int)) Option {
	return func(c *config) {
		c.startHandler = fn
	}
}

// WithExitHandler registers a hook for worker exit. It is never called.
func WithExitHandler(fn func(index int)) Option {
	return func(c *config) {
		c.exitHandler = fn
	}
}

// WithPanicHandler registers a handler for panics in spawned work.
// It is never called: panics propagate to the caller of the spawn.
func WithPanicHandler(fn func(v any)) Option {
	return func(c *config) {
		c.panicHandler = fn
	}
}

// WithBreadthFirst requests breadth-first local scheduling.
func WithBreadthFirst() Option {
	return func(c *config) {
		c.breadthFirst = true
	}
}

// WithUseCurrentThread requests that the building thread join the pool.
func WithUseCurrentThread() Option {
	return func(c *config) {
		c.useCurrentThread = true
	}
}

// hooks reports whether any worker hook was registered.
func (c config) hooks() bool {
	return c.threadName != nil || c.startHandler != nil ||
		c.exitHandler != nil || c.panicHandler != nil
}
