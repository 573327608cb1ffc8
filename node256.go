package tart

import "github.com/surrealdb/tart/internal/vecarray"

// node256 is the top tier: direct byte indexing into a 256-slot sparse
// child vector. It never grows further.
type node256[V any] struct {
	children *vecarray.Array[*node[V]]
	n        uint16
}

func newNode256[V any]() *node256[V] {
	return &node256[V]{children: vecarray.New[*node[V]](256)}
}

func (n *node256[V]) numChildren() int { return int(n.n) }

func (n *node256[V]) clone() *node256[V] {
	return &node256[V]{n: n.n, children: n.children.Clone()}
}

func (n *node256[V]) findChild(b byte) (*node[V], bool) {
	return n.children.Get(int(b))
}

func (n *node256[V]) addChild(b byte, child *node[V]) {
	if _, ok := n.children.Get(int(b)); !ok {
		n.n++
	}
	n.children.Set(int(b), child)
}

func (n *node256[V]) replaceChild(b byte, child *node[V]) {
	if _, ok := n.children.Get(int(b)); !ok {
		panic("tart: node256 replaceChild: no existing mapping for byte")
	}
	n.children.Set(int(b), child)
}

func (n *node256[V]) deleteChild(b byte) {
	if _, ok := n.children.Erase(int(b)); ok {
		n.n--
	}
}

func (n *node256[V]) iter(fn func(byte, *node[V])) {
	n.children.Iter(func(i int, c *node[V]) { fn(byte(i), c) })
}

func (n *node256[V]) minChild() (byte, *node[V]) {
	var rb byte
	var rc *node[V]
	n.children.Iter(func(i int, c *node[V]) {
		if rc == nil {
			rb, rc = byte(i), c
		}
	})
	return rb, rc
}

func (n *node256[V]) maxChild() (byte, *node[V]) {
	var rb byte
	var rc *node[V]
	n.children.Iter(func(i int, c *node[V]) {
		rb, rc = byte(i), c
	})
	return rb, rc
}

func (n *node256[V]) maxChildTS() uint64 {
	var max uint64
	n.children.Iter(func(_ int, c *node[V]) {
		if c.ts > max {
			max = c.ts
		}
	})
	return max
}

// shrink demotes to a Node48, used when occupancy falls to 48 or below.
func (n *node256[V]) shrink() *node48[V] {
	n48 := newNode48[V]()
	n.iter(func(b byte, c *node[V]) { n48.addChild(b, c) })
	return n48
}
