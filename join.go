package forkjoin

// Join runs a and b and returns both results. a runs to completion before
// b starts; callers must not rely on the two running at the same time.
//
// Both closures must be safe to run on another goroutine, as they would be
// on a real pool.
func Join[A, B any](a func() A, b func() B) (A, B) {
	ra := a()
	rb := b()
	return ra, rb
}

// JoinContext is [Join] with a [FnContext] passed to each closure.
func JoinContext[A, B any](a func(ctx FnContext) A, b func(ctx FnContext) B) (A, B) {
	ra := a(FnContext{})
	rb := b(FnContext{})
	return ra, rb
}
