package tart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode16BinarySearchInsertAndFind(t *testing.T) {
	n := &node16[string]{}
	order := []byte{'m', 'a', 'z', 'c', 'k'}
	for _, b := range order {
		n.addChild(b, testLeaf(t, string(b), 1))
	}
	require.Equal(t, []byte{'a', 'c', 'k', 'm', 'z'}, n.keys[:n.n])

	for _, b := range order {
		c, ok := n.findChild(b)
		require.True(t, ok)
		require.Equal(t, string(b), c.twig.values[0].value)
	}
}

func TestNode16GrowAndShrink(t *testing.T) {
	n := &node16[string]{}
	for i := 0; i < 16; i++ {
		n.addChild(byte(i), testLeaf(t, string(rune('a'+i)), 1))
	}
	n48 := n.grow()
	require.Equal(t, 16, n48.numChildren())

	small := &node16[string]{}
	for i := 0; i < 4; i++ {
		small.addChild(byte(i), testLeaf(t, "x", 1))
	}
	n4 := small.shrink()
	require.Equal(t, 4, n4.numChildren())
}

func TestNode16DeleteChild(t *testing.T) {
	n := &node16[string]{}
	n.addChild('a', testLeaf(t, "a", 1))
	n.addChild('b', testLeaf(t, "b", 1))
	n.deleteChild('a')
	require.Equal(t, 1, n.numChildren())
	_, ok := n.findChild('a')
	require.False(t, ok)
	_, ok = n.findChild('b')
	require.True(t, ok)
}
