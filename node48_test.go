package tart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode48AddFindDelete(t *testing.T) {
	n := newNode48[string]()
	for i := 0; i < 40; i++ {
		n.addChild(byte(i), testLeaf(t, string(rune('a'+i%26)), uint64(i)))
	}
	require.Equal(t, 40, n.numChildren())

	c, ok := n.findChild(5)
	require.True(t, ok)
	require.NotNil(t, c)

	n.deleteChild(5)
	require.Equal(t, 39, n.numChildren())
	_, ok = n.findChild(5)
	require.False(t, ok)
}

func TestNode48GrowToNode256(t *testing.T) {
	n := newNode48[string]()
	for i := 0; i < 48; i++ {
		n.addChild(byte(i), testLeaf(t, "v", 1))
	}
	n256 := n.grow()
	require.Equal(t, 48, n256.numChildren())
	for i := 0; i < 48; i++ {
		_, ok := n256.findChild(byte(i))
		require.True(t, ok)
	}
}

func TestNode48ShrinkToNode16(t *testing.T) {
	n := newNode48[string]()
	for i := 0; i < 10; i++ {
		n.addChild(byte(i), testLeaf(t, "v", 1))
	}
	n16 := n.shrink()
	require.Equal(t, 10, n16.numChildren())
}

func TestNode48IterAscendingByByte(t *testing.T) {
	n := newNode48[string]()
	n.addChild(200, testLeaf(t, "x", 1))
	n.addChild(5, testLeaf(t, "y", 1))
	n.addChild(100, testLeaf(t, "z", 1))

	var bytes []byte
	n.iter(func(b byte, _ *node[string]) { bytes = append(bytes, b) })
	require.Equal(t, []byte{5, 100, 200}, bytes)
}
