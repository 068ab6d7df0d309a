package forkjoin_test

import (
	"testing"

	"github.com/baxromumarov/forkjoin"
)

func TestSpawnIsSynchronous(t *testing.T) {
	var result []int
	forkjoin.Spawn(func() { result = append(result, 1) })
	if len(result) != 1 || result[0] != 1 {
		t.Fatalf("expected [1] right after Spawn, got %v", result)
	}

	forkjoin.SpawnFifo(func() { result = append(result, 2) })
	if len(result) != 2 || result[1] != 2 {
		t.Fatalf("expected [1 2] right after SpawnFifo, got %v", result)
	}
}

func TestSpawnNestedOrder(t *testing.T) {
	var trace []string
	forkjoin.Spawn(func() {
		trace = append(trace, "outer")
		forkjoin.SpawnFifo(func() {
			trace = append(trace, "inner")
		})
		trace = append(trace, "outer-end")
	})

	want := []string{"outer", "inner", "outer-end"}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

func TestBroadcastRunsOnce(t *testing.T) {
	calls := 0
	got := forkjoin.Broadcast(func(ctx forkjoin.BroadcastContext) string {
		calls++
		if ctx.Index() != 0 || ctx.NumThreads() != 1 {
			t.Fatalf("expected context (0, 1), got (%d, %d)", ctx.Index(), ctx.NumThreads())
		}
		if n := forkjoin.CurrentNumThreads(); n != 1 {
			t.Fatalf("expected 1 thread inside broadcast, got %d", n)
		}
		return "done"
	})
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
	if got != "done" {
		t.Fatalf("expected result %q, got %q", "done", got)
	}
}

func TestSpawnBroadcastRunsOnce(t *testing.T) {
	calls := 0
	n := forkjoin.SpawnBroadcast(func(ctx forkjoin.BroadcastContext) int {
		calls++
		return ctx.NumThreads()
	})
	if calls != 1 || n != 1 {
		t.Fatalf("expected one call returning 1, got calls=%d n=%d", calls, n)
	}
}

func TestBroadcastPartitioning(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	partial := make([]int, forkjoin.MaxNumThreads())

	forkjoin.Broadcast(func(ctx forkjoin.BroadcastContext) struct{} {
		for i := ctx.Index(); i < len(items); i += ctx.NumThreads() {
			partial[ctx.Index()] += items[i]
		}
		return struct{}{}
	})

	if partial[0] != 28 {
		t.Fatalf("single worker must see every item, got sum %d", partial[0])
	}
}

func TestThreadQueries(t *testing.T) {
	if n := forkjoin.CurrentNumThreads(); n != 1 {
		t.Fatalf("CurrentNumThreads = %d, want 1", n)
	}
	if n := forkjoin.MaxNumThreads(); n != 1 {
		t.Fatalf("MaxNumThreads = %d, want 1", n)
	}
	if idx, ok := forkjoin.CurrentThreadIndex(); !ok || idx != 0 {
		t.Fatalf("CurrentThreadIndex = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestYieldHints(t *testing.T) {
	ran := 0
	forkjoin.Spawn(func() { ran++ })
	forkjoin.YieldNow()
	forkjoin.YieldLocal()
	if ran != 1 {
		t.Fatalf("yield must not change executed work, ran=%d", ran)
	}

	tests := []struct {
		y    forkjoin.Yield
		want string
	}{
		{forkjoin.Executed, "executed"},
		{forkjoin.Idle, "idle"},
		{forkjoin.Yield(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.y.String(); got != tt.want {
			t.Errorf("Yield(%d).String() = %q, want %q", int(tt.y), got, tt.want)
		}
	}
}
