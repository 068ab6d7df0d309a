package forkjoin

// FnContext describes how a closure passed to [JoinContext] was executed.
type FnContext struct{}

// Migrated reports whether the closure was stolen by a different worker
// than the one that called JoinContext. With a single worker nothing is
// ever stolen.
func (FnContext) Migrated() bool {
	return false
}

// BroadcastContext identifies the worker running a broadcast operation.
type BroadcastContext struct {
	index      int
	numThreads int
}

// soleWorker is the context of the only worker there is.
var soleWorker = BroadcastContext{index: 0, numThreads: 1}

// Index returns the index of the worker running the operation.
func (c BroadcastContext) Index() int {
	return c.index
}

// NumThreads returns the number of workers the operation runs on.
func (c BroadcastContext) NumThreads() int {
	return c.numThreads
}
