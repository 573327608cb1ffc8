package tart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode256DirectIndexing(t *testing.T) {
	n := newNode256[string]()
	n.addChild(0, testLeaf(t, "zero", 1))
	n.addChild(255, testLeaf(t, "max", 1))

	c, ok := n.findChild(0)
	require.True(t, ok)
	require.Equal(t, "zero", c.twig.values[0].value)

	c, ok = n.findChild(255)
	require.True(t, ok)
	require.Equal(t, "max", c.twig.values[0].value)

	_, ok = n.findChild(128)
	require.False(t, ok)

	require.Equal(t, 2, n.numChildren())
}

func TestNode256DeleteChild(t *testing.T) {
	n := newNode256[string]()
	n.addChild(10, testLeaf(t, "x", 1))
	n.deleteChild(10)
	require.Equal(t, 0, n.numChildren())
	_, ok := n.findChild(10)
	require.False(t, ok)
}

func TestNode256ShrinkToNode48(t *testing.T) {
	n := newNode256[string]()
	for i := 0; i < 48; i++ {
		n.addChild(byte(i), testLeaf(t, "v", 1))
	}
	n48 := n.shrink()
	require.Equal(t, 48, n48.numChildren())
}

func TestNode256MinMaxChild(t *testing.T) {
	n := newNode256[string]()
	n.addChild(50, testLeaf(t, "a", 1))
	n.addChild(10, testLeaf(t, "b", 1))
	n.addChild(200, testLeaf(t, "c", 1))

	minB, _ := n.minChild()
	maxB, _ := n.maxChild()
	require.Equal(t, byte(10), minB)
	require.Equal(t, byte(200), maxB)
}
