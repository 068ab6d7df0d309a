package frame

import (
	"slices"
	"strings"

	"github.com/baxromumarov/forkjoin"
)

// sequentialCutoff is the slice length below which Sort stops splitting.
const sequentialCutoff = 2048

// Sort orders the groups by count, descending or ascending. Equal counts
// are ordered by key, with the null group last, so the result does not
// depend on how the rows were partitioned.
func (c *Counts) Sort(descending bool) *Counts {
	cmp := func(a, b Group) int {
		if a.Count != b.Count {
			if descending {
				return b.Count - a.Count
			}
			return a.Count - b.Count
		}
		if a.Null != b.Null {
			if a.Null {
				return 1
			}
			return -1
		}
		return strings.Compare(a.Key, b.Key)
	}

	buf := make([]Group, len(c.Groups))
	mergeSort(c.Groups, buf, cmp)
	return c
}

// mergeSort sorts s using buf as scratch space of the same length. The two
// halves are sorted with forkjoin.Join and merged sequentially.
func mergeSort(s, buf []Group, cmp func(a, b Group) int) {
	if len(s) <= sequentialCutoff {
		slices.SortStableFunc(s, cmp)
		return
	}

	mid := len(s) / 2
	forkjoin.Join(
		func() struct{} {
			mergeSort(s[:mid], buf[:mid], cmp)
			return struct{}{}
		},
		func() struct{} {
			mergeSort(s[mid:], buf[mid:], cmp)
			return struct{}{}
		},
	)

	copy(buf, s)
	left, right := buf[:mid], buf[mid:len(s)]
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if cmp(right[j], left[i]) < 0 {
			s[k] = right[j]
			j++
		} else {
			s[k] = left[i]
			i++
		}
		k++
	}
	k += copy(s[k:], left[i:])
	copy(s[k:], right[j:])
}
