package tart

import "github.com/surrealdb/tart/internal/vecarray"

// node48 stores a 256-entry byte->slot index into a 48-slot sparse child
// vector, per spec.md §4.1/§4.3 and original_source's Node48<P,N>.
type node48[V any] struct {
	index    [256]uint8 // 1 + slot index; 0 means "no child"
	children *vecarray.Array[*node[V]]
	n        uint8
}

func newNode48[V any]() *node48[V] {
	return &node48[V]{children: vecarray.New[*node[V]](48)}
}

func (n *node48[V]) numChildren() int { return int(n.n) }

func (n *node48[V]) clone() *node48[V] {
	nn := &node48[V]{n: n.n, children: n.children.Clone()}
	nn.index = n.index
	return nn
}

func (n *node48[V]) findChild(b byte) (*node[V], bool) {
	slot := n.index[b]
	if slot == 0 {
		return nil, false
	}
	return n.children.Get(int(slot - 1))
}

func (n *node48[V]) addChild(b byte, child *node[V]) {
	if n.n == 48 {
		panic("tart: node48 overflow: caller must grow before addChild")
	}
	slot := n.children.Push(child)
	n.index[b] = uint8(slot + 1)
	n.n++
}

func (n *node48[V]) replaceChild(b byte, child *node[V]) {
	slot := n.index[b]
	if slot == 0 {
		panic("tart: node48 replaceChild: no existing mapping for byte")
	}
	n.children.Set(int(slot-1), child)
}

func (n *node48[V]) deleteChild(b byte) {
	slot := n.index[b]
	if slot == 0 {
		return
	}
	n.children.Erase(int(slot - 1))
	n.index[b] = 0
	n.n--
}

// iter walks child_ptr_indexes in ascending byte order.
func (n *node48[V]) iter(fn func(byte, *node[V])) {
	for b := 0; b < 256; b++ {
		slot := n.index[b]
		if slot == 0 {
			continue
		}
		child, ok := n.children.Get(int(slot - 1))
		if ok {
			fn(byte(b), child)
		}
	}
}

func (n *node48[V]) minChild() (byte, *node[V]) {
	var rb byte
	var rc *node[V]
	for b := 0; b < 256; b++ {
		if n.index[b] != 0 {
			rb = byte(b)
			rc, _ = n.children.Get(int(n.index[b] - 1))
			break
		}
	}
	return rb, rc
}

func (n *node48[V]) maxChild() (byte, *node[V]) {
	var rb byte
	var rc *node[V]
	for b := 255; b >= 0; b-- {
		if n.index[b] != 0 {
			rb = byte(b)
			rc, _ = n.children.Get(int(n.index[b] - 1))
			break
		}
	}
	return rb, rc
}

func (n *node48[V]) maxChildTS() uint64 {
	var max uint64
	n.iter(func(_ byte, c *node[V]) {
		if c.ts > max {
			max = c.ts
		}
	})
	return max
}

func (n *node48[V]) grow() *node256[V] {
	n256 := newNode256[V]()
	n.iter(func(b byte, c *node[V]) { n256.addChild(b, c) })
	return n256
}

// shrink demotes to a Flat16, used when occupancy falls to 16 or below.
func (n *node48[V]) shrink() *node16[V] {
	n16 := &node16[V]{}
	n.iter(func(b byte, c *node[V]) { n16.addChild(b, c) })
	return n16
}
