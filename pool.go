package forkjoin

import (
	log "github.com/sirupsen/logrus"
)

// BuildError is the error type of [Builder.Build] and [Builder.BuildGlobal].
// The inline pool cannot fail to build, so no BuildError is ever returned.
type BuildError struct{}

func (*BuildError) Error() string {
	return "forkjoin: thread pool build error"
}

// Pool is a handle to the computation resource. It has no state, reports a
// single worker and needs no shutdown.
type Pool struct{}

// global is the handle returned by Global. Pool has no fields, so sharing
// one value across goroutines is safe.
var global = &Pool{}

// Global returns the global pool. It is usable without calling
// [Builder.BuildGlobal] first.
func Global() *Pool {
	return global
}

// Builder collects pool options. Create one with [NewBuilder] and finish it
// with [Builder.Build] or [Builder.BuildGlobal].
type Builder struct {
	cfg config
}

// NewBuilder returns a builder with the given options applied.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{cfg: defaultConfig()}
	return b.apply(opts...)
}

// NewPool is shorthand for NewBuilder(opts...).Build().
func NewPool(opts ...Option) (*Pool, error) {
	return NewBuilder(opts...).Build()
}

func (b *Builder) apply(opts ...Option) *Builder {
	for _, opt := range opts {
		opt(&b.cfg)
	}
	return b
}

// NumThreads requests n worker threads. See [WithNumThreads].
func (b *Builder) NumThreads(n int) *Builder {
	return b.apply(WithNumThreads(n))
}

// ThreadName sets the worker naming function. See [WithThreadName].
func (b *Builder) ThreadName(fn func(index int) string) *Builder {
	return b.apply(WithThreadName(fn))
}

// StackSize requests a worker stack size. See [WithStackSize].
func (b *Builder) StackSize(size int) *Builder {
	return b.apply(WithStackSize(size))
}

// StartHandler registers a worker start hook. See [WithStartHandler].
func (b *Builder) StartHandler(fn func(index int)) *Builder {
	return b.apply(WithStartHandler(fn))
}

// ExitHandler registers a worker exit hook. See [WithExitHandler].
func (b *Builder) ExitHandler(fn func(index int)) *Builder {
	return b.apply(WithExitHandler(fn))
}

// PanicHandler registers a panic handler. See [WithPanicHandler].
func (b *Builder) PanicHandler(fn func(v any)) *Builder {
	return b.apply(WithPanicHandler(fn))
}

// BreadthFirst requests breadth-first scheduling. See [WithBreadthFirst].
func (b *Builder) BreadthFirst() *Builder {
	return b.apply(WithBreadthFirst())
}

// UseCurrentThread requests that the caller joins the pool.
// See [WithUseCurrentThread].
func (b *Builder) UseCurrentThread() *Builder {
	return b.apply(WithUseCurrentThread())
}

// Build returns a pool handle. The error is always nil.
func (b *Builder) Build() (*Pool, error) {
	b.logIgnored("build")
	return &Pool{}, nil
}

// BuildGlobal configures the global pool. The error is always nil, also
// when the global pool was configured before.
func (b *Builder) BuildGlobal() error {
	b.logIgnored("build-global")
	return nil
}

func (b *Builder) logIgnored(op string) {
	if !log.IsLevelEnabled(log.DebugLevel) {
		return
	}
	log.WithFields(log.Fields{
		"component":          "forkjoin",
		"op":                 op,
		"requested-threads":  b.cfg.numThreads,
		"stack-size":         b.cfg.stackSize,
		"hooks":              b.cfg.hooks(),
		"breadth-first":      b.cfg.breadthFirst,
		"use-current-thread": b.cfg.useCurrentThread,
	}).Debug("pool hints ignored, running inline with 1 worker")
}

// Install runs op on the pool and returns its result. op runs in place;
// no ambient state is changed.
func Install[R any](p *Pool, op func() R) R {
	return op()
}

// Install runs op on the pool and returns once it has finished.
func (p *Pool) Install(op func()) {
	op()
}

// CurrentNumThreads returns the number of workers in the pool, always 1.
func (p *Pool) CurrentNumThreads() int {
	return 1
}

// CurrentThreadIndex returns the index of the calling worker in this pool.
// The caller is always treated as worker 0.
func (p *Pool) CurrentThreadIndex() (int, bool) {
	return 0, true
}

// CurrentThreadHasPendingTasks reports whether the calling worker has
// queued work. There is no queue, so it is always false.
func (p *Pool) CurrentThreadHasPendingTasks() bool {
	return false
}

// Join is [Join] for closures without results.
func (p *Pool) Join(a, b func()) {
	a()
	b()
}

// Scope opens a scope on the pool. See [RunScope].
func (p *Pool) Scope(op func(s *Scope)) {
	RunScope(func(s *Scope) struct{} {
		op(s)
		return struct{}{}
	})
}

// ScopeFifo opens a FIFO scope on the pool. See [RunScopeFifo].
func (p *Pool) ScopeFifo(op func(s *ScopeFifo)) {
	RunScopeFifo(func(s *ScopeFifo) struct{} {
		op(s)
		return struct{}{}
	})
}

// InPlaceScope is [Pool.Scope] without the transferability requirement on op.
func (p *Pool) InPlaceScope(op func(s *Scope)) {
	p.Scope(op)
}

// InPlaceScopeFifo is [Pool.ScopeFifo] without the transferability
// requirement on op.
func (p *Pool) InPlaceScopeFifo(op func(s *ScopeFifo)) {
	p.ScopeFifo(op)
}

// Spawn runs body before returning. See [Spawn].
func (p *Pool) Spawn(body func()) {
	Spawn(body)
}

// SpawnFifo runs body before returning. See [SpawnFifo].
func (p *Pool) SpawnFifo(body func()) {
	SpawnFifo(body)
}

// Broadcast runs op once per worker, which is once. See [Broadcast].
func (p *Pool) Broadcast(op func(ctx BroadcastContext)) {
	op(soleWorker)
}

// SpawnBroadcast runs op once per worker before returning.
func (p *Pool) SpawnBroadcast(op func(ctx BroadcastContext)) {
	op(soleWorker)
}

// PoolBroadcast runs op once per worker of p and returns its result. With
// the sole worker that is one call. It is the result-returning form of
// [Pool.Broadcast].
func PoolBroadcast[R any](p *Pool, op func(ctx BroadcastContext) R) R {
	return op(soleWorker)
}

// PoolSpawnBroadcast is the result-returning form of [Pool.SpawnBroadcast].
func PoolSpawnBroadcast[R any](p *Pool, op func(ctx BroadcastContext) R) R {
	return op(soleWorker)
}

// YieldNow is a scheduling hint; it does nothing.
func (p *Pool) YieldNow() {}

// YieldLocal is a scheduling hint; it does nothing.
func (p *Pool) YieldLocal() {}
