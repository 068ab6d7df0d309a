package forkjoin

// splitter decides how far a slice is split before leaves run
// sequentially. It follows the adaptive scheme of parallel iterators:
// start with one split per worker and refill the budget whenever a half was
// stolen by another worker.
type splitter struct {
	splits int
	minLen int
}

// newSplitter returns a splitter whose leaves hold at least grain items.
// A grain below 1 is treated as 1.
func newSplitter(grain int) splitter {
	return splitter{
		splits: CurrentNumThreads(),
		minLen: max(grain, 1),
	}
}

func (sp *splitter) trySplit(n int, migrated bool) bool {
	if n/2 < sp.minLen {
		return false
	}
	switch {
	case migrated:
		sp.splits = max(CurrentNumThreads(), sp.splits/2)
		return true
	case sp.splits > 0:
		sp.splits /= 2
		return true
	default:
		return false
	}
}

// bridge splits [lo, hi) with JoinContext until the splitter refuses and
// runs leaf on each remaining range.
func bridge(lo, hi int, sp splitter, migrated bool, leaf func(lo, hi int)) {
	n := hi - lo
	if !sp.trySplit(n, migrated) {
		leaf(lo, hi)
		return
	}

	mid := lo + n/2
	JoinContext(
		func(ctx FnContext) struct{} {
			bridge(lo, mid, sp, ctx.Migrated(), leaf)
			return struct{}{}
		},
		func(ctx FnContext) struct{} {
			bridge(mid, hi, sp, ctx.Migrated(), leaf)
			return struct{}{}
		},
	)
}

// ForEach calls fn for every item. Items are visited through recursive
// [JoinContext] splits, so on a real pool the calls may run concurrently;
// inline they run in index order.
//
//	forkjoin.ForEach(rows, func(i int, r Row) {
//	    out[i] = normalize(r)
//	})
func ForEach[T any](items []T, fn func(i int, item T)) {
	ForEachGrain(items, 1, fn)
}

// ForEachGrain is [ForEach] with leaves of at least grain items. A larger
// grain bounds the recursion depth when fn is cheap.
func ForEachGrain[T any](items []T, grain int, fn func(i int, item T)) {
	if len(items) == 0 {
		return
	}
	bridge(0, len(items), newSplitter(grain), false, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(i, items[i])
		}
	})
}

// Map calls fn for every item and collects the results in input order.
func Map[T, R any](items []T, fn func(i int, item T) R) []R {
	return MapGrain(items, 1, fn)
}

// MapGrain is [Map] with leaves of at least grain items.
func MapGrain[T, R any](items []T, grain int, fn func(i int, item T) R) []R {
	results := make([]R, len(items))
	ForEachGrain(items, grain, func(i int, item T) {
		results[i] = fn(i, item) // each index is written by one leaf only
	})
	return results
}

// Reduce folds items into a single value. Each leaf starts from identity()
// and folds its items in order; leaf results are merged with combine.
// combine must be associative and identity() must be its neutral element,
// as the split points differ between pools.
func Reduce[T, A any](items []T, identity func() A, fold func(acc A, item T) A, combine func(left, right A) A) A {
	return ReduceGrain(items, 1, identity, fold, combine)
}

// ReduceGrain is [Reduce] with leaves of at least grain items.
func ReduceGrain[T, A any](items []T, grain int, identity func() A, fold func(acc A, item T) A, combine func(left, right A) A) A {
	return reduce(items, newSplitter(grain), false, identity, fold, combine)
}

func reduce[T, A any](
	items []T,
	sp splitter,
	migrated bool,
	identity func() A,
	fold func(A, T) A,
	combine func(A, A) A,
) A {
	if !sp.trySplit(len(items), migrated) {
		acc := identity()
		for _, item := range items {
			acc = fold(acc, item)
		}
		return acc
	}

	mid := len(items) / 2
	left, right := JoinContext(
		func(ctx FnContext) A {
			return reduce(items[:mid], sp, ctx.Migrated(), identity, fold, combine)
		},
		func(ctx FnContext) A {
			return reduce(items[mid:], sp, ctx.Migrated(), identity, fold, combine)
		},
	)
	return combine(left, right)
}
