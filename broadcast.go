package forkjoin

// Broadcast runs op once on every worker of the current pool and returns
// its result. The pool has one worker, so op runs exactly once with index 0
// and a thread count of 1.
func Broadcast[R any](op func(ctx BroadcastContext) R) R {
	return op(soleWorker)
}

// SpawnBroadcast is [Broadcast] for work that a real pool would run
// asynchronously. op has finished when SpawnBroadcast returns.
func SpawnBroadcast[R any](op func(ctx BroadcastContext) R) R {
	return op(soleWorker)
}
