package frame

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortLargeMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	groups := make([]Group, 3*sequentialCutoff+5)
	for i := range groups {
		groups[i] = Group{Key: fmt.Sprintf("k%05d", i), Count: rng.Intn(50)}
	}
	groups[10] = Group{Null: true, Count: groups[11].Count}

	want := append([]Group(nil), groups...)
	sort.SliceStable(want, func(i, j int) bool {
		a, b := want[i], want[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Null != b.Null {
			return !a.Null
		}
		return a.Key < b.Key
	})

	c := &Counts{Groups: groups}
	c.Sort(true)
	assert.Equal(t, want, c.Groups)
}

func TestSortEmpty(t *testing.T) {
	c := &Counts{}
	c.Sort(true)
	assert.Empty(t, c.Groups)
}
