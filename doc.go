// Package forkjoin provides the public surface of a work-stealing fork-join
// thread pool while running every unit of work inline, on the calling
// goroutine.
//
// It exists for hosts that forbid starting threads (WASI components,
// sandboxed plugins, deterministic replays) but still need to run code
// written against a fork-join API: pools, scoped spawning, broadcast and
// join. Results are the same as on a real pool; only performance differs.
//
// # Pools
//
// A [Pool] is built with a [Builder]. Every option is accepted and
// ignored, and building never fails:
//
//	pool, err := forkjoin.NewBuilder().NumThreads(8).Build()
//	if err != nil {
//	    return err // never happens, kept for drop-in compatibility
//	}
//	n := forkjoin.Install(pool, func() int {
//	    return pool.CurrentNumThreads() // always 1
//	})
//
// [Builder.BuildGlobal] configures the global pool returned by [Global].
//
// # Join
//
// [Join] runs two closures and returns both results. The first closure
// always finishes before the second one starts:
//
//	a, b := forkjoin.Join(
//	    func() int { return 2 + 2 },
//	    func() string { return strings.Repeat("x", 3) },
//	)
//
// [JoinContext] passes a [FnContext] to each side. [FnContext.Migrated]
// is always false.
//
// Closures that need the other side to make progress (a producer and a
// consumer blocking on each other) deadlock here. Real fork-join pools do
// not promise concurrency either, so such code is already incorrect.
//
// # Scopes
//
// [RunScope] and [RunScopeFifo] open a scope; [Scope.Spawn] runs the body
// immediately and returns once it has finished. Nested spawns therefore
// execute depth-first in submission order, and the scope guarantee ("all
// spawned work completes before the scope returns") holds by construction.
// [InPlaceScope] and [InPlaceScopeFifo] are identical.
//
// A [Scope] is only valid inside the function that received it. Spawning
// on a scope after its opening call returned panics.
//
// # Spawn and Broadcast
//
// [Spawn] and [SpawnFifo] run the body before returning. Code that relies
// on spawn returning before the work starts (for example to bound stack
// depth through trampolining) sees deeper stacks here; results are
// unchanged.
//
// [Broadcast] and [SpawnBroadcast] call the operation exactly once with a
// [BroadcastContext] of index 0 and count 1. Per-worker partitioning code
// should treat a count of 1 as a valid degenerate case.
//
// # Transferable closures
//
// A real pool may run a closure on another goroutine. Every closure passed
// to this package must therefore own, or safely share, everything it
// touches. The inline substrate never relocates a closure, but code that
// meets this precondition keeps working when the package is swapped for a
// parallel implementation.
//
// # Errors and panics
//
// Nothing in this package recovers. A panic inside a closure unwinds
// through the calling stack exactly as a direct call would. [BuildError]
// exists so that call sites checking the result of [Builder.Build] compile
// unchanged; it is never returned.
//
// # Helpers
//
// [ForEach], [Map] and [Reduce] split a slice recursively with
// [JoinContext], the same way parallel iterators do on a real pool.
package forkjoin
