package forkjoin

// Yield is the outcome of a cooperative yield on a work-stealing pool.
// No operation in this package returns one; the type exists for code that
// switches on it.
type Yield int

const (
	// Executed means the yield ran some other pending work.
	Executed Yield = iota

	// Idle means there was no pending work to run.
	Idle
)

func (y Yield) String() string {
	switch y {
	case Executed:
		return "executed"
	case Idle:
		return "idle"
	default:
		return "unknown"
	}
}

// YieldNow gives other pending work a chance to run. There is no other
// work, so it does nothing.
func YieldNow() {}

// YieldLocal is YieldNow restricted to the current worker's queue. It does
// nothing.
func YieldLocal() {}

// CurrentNumThreads returns the number of workers of the current pool,
// always 1.
func CurrentNumThreads() int {
	return 1
}

// CurrentThreadIndex returns the index of the calling worker and whether
// the caller is a worker at all. Every caller is worker 0.
func CurrentThreadIndex() (int, bool) {
	return 0, true
}

// MaxNumThreads returns the largest pool size this package supports, 1.
func MaxNumThreads() int {
	return 1
}
