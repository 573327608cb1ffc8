package tart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIteratorOrderedAcrossTiers(t *testing.T) {
	tree := New[int]()
	words := []string{"banana", "apple", "cherry", "date", "elderberry", "fig"}
	for i, w := range words {
		tree, _, _, _ = tree.Insert(KeyFromString(w), i, uint64(i+1))
	}

	var got []string
	it := tree.Iter()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, string(e.Key.Bytes()))
	}

	for i := 1; i < len(got); i++ {
		require.Less(t, got[i-1], got[i], "iteration must be strictly ascending lexicographically")
	}
	require.Len(t, got, len(words))
}

func TestIteratorEmptyTree(t *testing.T) {
	tree := New[int]()
	it := tree.Iter()
	_, ok := it.Next()
	require.False(t, ok)
}

func TestIteratorYieldsEveryTimestampedValue(t *testing.T) {
	// Build a twig with accumulated history directly, so the test does not
	// depend on the tree-level insert path.
	tw := newTwig[int]()
	tw.values = append(tw.values,
		leafValue[int]{key: KeyFromString("foo"), value: 1, ts: 10},
		leafValue[int]{key: KeyFromString("foo"), value: 2, ts: 20},
	)
	tree := &Tree[int]{root: newTwigNode[int](newPrefix([]byte("foo")), tw), size: 1}

	var tsSeq []uint64
	it := tree.Iter()
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		tsSeq = append(tsSeq, e.TS)
	}
	require.Equal(t, []uint64{10, 20}, tsSeq)
}
