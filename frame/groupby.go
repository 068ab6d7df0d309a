package frame

import (
	"github.com/baxromumarov/forkjoin"
)

// morselSize is the number of rows a single fold step handles.
const morselSize = 4096

// Group is one distinct key of a grouped column and its row count.
type Group struct {
	Key   string
	Null  bool
	Count int
}

// Counts is the result of [GroupCount]: one Group per distinct key.
type Counts struct {
	Column string
	Alias  string
	Groups []Group
}

// Len returns the number of groups.
func (c *Counts) Len() int {
	return len(c.Groups)
}

// Head keeps the first n groups. n <= 0 keeps all of them.
func (c *Counts) Head(n int) *Counts {
	if n > 0 && n < len(c.Groups) {
		c.Groups = c.Groups[:n]
	}
	return c
}

type groupKey struct {
	value string
	null  bool
}

type span struct {
	lo, hi int
}

// GroupCount groups the rows of f by column and counts each group. The
// count is reported under alias. Null cells form a single group.
//
// Rows are partitioned per pool worker with forkjoin.Broadcast; each
// partition is folded morsel by morsel with forkjoin.Reduce and the
// partial tables are merged at the end. The order of Groups is unspecified
// until [Counts.Sort] is called.
func GroupCount(f *Frame, column, alias string) (*Counts, error) {
	col, err := f.Column(column)
	if err != nil {
		return nil, err
	}

	partials := make([]map[groupKey]int, forkjoin.MaxNumThreads())
	forkjoin.Broadcast(func(ctx forkjoin.BroadcastContext) struct{} {
		lo, hi := partition(col.Len(), ctx.Index(), ctx.NumThreads())
		partials[ctx.Index()] = countRange(col, lo, hi)
		return struct{}{}
	})

	total := make(map[groupKey]int)
	for _, p := range partials {
		merge(total, p)
	}

	groups := make([]Group, 0, len(total))
	for k, n := range total {
		groups = append(groups, Group{Key: k.value, Null: k.null, Count: n})
	}
	return &Counts{Column: column, Alias: alias, Groups: groups}, nil
}

// partition returns the row range worker index of n handles.
func partition(rows, index, n int) (int, int) {
	per := rows / n
	rest := rows % n
	lo := index*per + min(index, rest)
	hi := lo + per
	if index < rest {
		hi++
	}
	return lo, hi
}

func countRange(col *Column, lo, hi int) map[groupKey]int {
	var morsels []span
	for start := lo; start < hi; start += morselSize {
		morsels = append(morsels, span{start, min(start+morselSize, hi)})
	}

	return forkjoin.Reduce(morsels,
		func() map[groupKey]int { return make(map[groupKey]int) },
		func(acc map[groupKey]int, m span) map[groupKey]int {
			for i := m.lo; i < m.hi; i++ {
				v, ok := col.Value(i)
				acc[groupKey{value: v, null: !ok}]++
			}
			return acc
		},
		func(left, right map[groupKey]int) map[groupKey]int {
			if len(left) < len(right) {
				left, right = right, left
			}
			merge(left, right)
			return left
		},
	)
}

func merge(dst, src map[groupKey]int) {
	for k, n := range src {
		dst[k] += n
	}
}
