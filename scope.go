package forkjoin

import "sync/atomic"

// Scope is the boundary of a structured group of spawned work. Work spawned
// on a Scope never outlives the call that opened it.
//
// A Scope is created by [RunScope] or [InPlaceScope] and is only valid
// until that call returns:
//
//	total := forkjoin.RunScope(func(s *forkjoin.Scope) int {
//	    var sum int
//	    s.Spawn(func(*forkjoin.Scope) { sum += 1 })
//	    s.Spawn(func(*forkjoin.Scope) { sum += 2 })
//	    return sum
//	})
//
// Each spawn runs before it returns, so sum is 3 when op reads it.
type Scope struct {
	b boundary
}

// ScopeFifo is a [Scope] whose spawned work is queued in FIFO order on a
// real pool. Inline, the order is the same as for Scope.
type ScopeFifo struct {
	b boundary
}

// boundary tracks whether the opening call is still running.
type boundary struct {
	open atomic.Bool
}

func (b *boundary) enter() {
	b.open.Store(true)
}

func (b *boundary) close() {
	b.open.Store(false)
}

func (b *boundary) check() {
	if !b.open.Load() {
		panic("forkjoin: Spawn called after scope shutdown")
	}
}

// RunScope opens a [Scope], calls op with it and returns op's result once
// op and everything it spawned have finished.
func RunScope[R any](op func(s *Scope) R) R {
	s := &Scope{}
	s.b.enter()
	defer s.b.close()

	return op(s)
}

// InPlaceScope is [RunScope] without the requirement that op be safe to
// run on another goroutine.
func InPlaceScope[R any](op func(s *Scope) R) R {
	return RunScope(op)
}

// RunScopeFifo opens a [ScopeFifo], calls op with it and returns op's result
// once op and everything it spawned have finished.
func RunScopeFifo[R any](op func(s *ScopeFifo) R) R {
	s := &ScopeFifo{}
	s.b.enter()
	defer s.b.close()

	return op(s)
}

// InPlaceScopeFifo is [RunScopeFifo] without the requirement that op be
// safe to run on another goroutine.
func InPlaceScopeFifo[R any](op func(s *ScopeFifo) R) R {
	return RunScopeFifo(op)
}

// Spawn runs body within the scope and returns when body has finished.
// It panics if the scope has already been closed.
func (s *Scope) Spawn(body func(s *Scope)) {
	s.b.check()
	body(s)
}

// SpawnFifo is identical to [Scope.Spawn].
func (s *Scope) SpawnFifo(body func(s *Scope)) {
	s.b.check()
	body(s)
}

// SpawnBroadcast runs body once per worker of the pool, which is once,
// with a [BroadcastContext] of index 0 and count 1.
func (s *Scope) SpawnBroadcast(body func(s *Scope, ctx BroadcastContext)) {
	s.b.check()
	body(s, soleWorker)
}

// Spawn runs body within the scope and returns when body has finished.
// It panics if the scope has already been closed.
func (s *ScopeFifo) Spawn(body func(s *ScopeFifo)) {
	s.b.check()
	body(s)
}

// SpawnFifo is identical to [ScopeFifo.Spawn].
func (s *ScopeFifo) SpawnFifo(body func(s *ScopeFifo)) {
	s.b.check()
	body(s)
}

// SpawnBroadcast runs body once with a [BroadcastContext] of index 0 and
// count 1.
func (s *ScopeFifo) SpawnBroadcast(body func(s *ScopeFifo, ctx BroadcastContext)) {
	s.b.check()
	body(s, soleWorker)
}
