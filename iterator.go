package tart

// Entry is one (key, value, ts) triple yielded by iteration.
type Entry[V any] struct {
	Key   Key
	Value V
	TS    uint64
}

// nodeCursor walks one node's children (and its embedded exact value, if
// any) in ascending byte order, the way original_source/src/iter.rs's
// NodeIter wraps a single node's child iterator.
type nodeCursor[V any] struct {
	pairs []childPair[V]
	pos   int
	path  []byte
}

type childPair[V any] struct {
	b     byte
	child *node[V]
}

func newNodeCursor[V any](n *node[V], path []byte) *nodeCursor[V] {
	c := &nodeCursor[V]{path: path}
	n.iter(func(b byte, ch *node[V]) {
		c.pairs = append(c.pairs, childPair[V]{b, ch})
	})
	return c
}

func (c *nodeCursor[V]) next() (childPair[V], bool) {
	if c.pos >= len(c.pairs) {
		return childPair[V]{}, false
	}
	p := c.pairs[c.pos]
	c.pos++
	return p, true
}

// Iterator performs an in-order, depth-first traversal of a Tree's
// snapshot, yielding (key, value, ts) triples. Grounded on
// original_source/src/iter.rs's IterState: an explicit stack of per-node
// cursors plus a queue of pending leaf values flushed one twig at a time.
type Iterator[V any] struct {
	stack []*nodeCursor[V]
	queue []Entry[V]
}

// Iter returns an Iterator over every entry currently reachable from the
// Tree's root, in ascending key order; a key holding several timestamped
// values is yielded once per value.
func (t *Tree[V]) Iter() *Iterator[V] {
	it := &Iterator[V]{}
	if t.root == nil {
		return it
	}
	it.seedRoot(t.root, append([]byte{}, t.root.prefix.bytes()...))
	return it
}

func (it *Iterator[V]) seedRoot(n *node[V], path []byte) {
	if n.isTwig() {
		it.flushTwig(n.twig, path)
		return
	}
	if n.exact != nil {
		it.flushTwig(n.exact, path)
	}
	it.stack = append(it.stack, newNodeCursor(n, path))
}

func (it *Iterator[V]) flushTwig(tw *twig[V], path []byte) {
	tw.iter(func(lv leafValue[V]) {
		it.queue = append(it.queue, Entry[V]{Key: KeyFromBytes(path), Value: lv.value, TS: lv.ts})
	})
}

// Next returns the next entry, or ok=false once exhausted.
func (it *Iterator[V]) Next() (Entry[V], bool) {
	for len(it.queue) == 0 {
		if len(it.stack) == 0 {
			return Entry[V]{}, false
		}
		top := it.stack[len(it.stack)-1]
		pair, ok := top.next()
		if !ok {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		childPath := append(append([]byte{}, top.path...), pair.b)
		childPath = append(childPath, pair.child.prefix.bytes()...)
		if pair.child.isTwig() {
			it.flushTwig(pair.child.twig, childPath)
			continue
		}
		if pair.child.exact != nil {
			it.flushTwig(pair.child.exact, childPath)
		}
		it.stack = append(it.stack, newNodeCursor(pair.child, childPath))
	}
	e := it.queue[0]
	it.queue = it.queue[1:]
	return e, true
}

// Bound describes a range endpoint, mirroring original_source's
// std::ops::Bound usage in iter.rs.
type Bound struct {
	Kind BoundKind
	Key  Key
}

// BoundKind discriminates a Bound.
type BoundKind uint8

const (
	Unbounded BoundKind = iota
	Included
	Excluded
)

// Range returns entries from the in-order traversal up to end, implementing
// spec.md §4.4's documented (not the source's ambiguous) semantics:
// Included yields the matching key then stops; Excluded stops without
// yielding it. Per spec.md §9 Open Question 3, iteration is seeded by
// descending the tree along lower's path, pruning every subtree that
// cannot hold a key >= lower (rather than iterating from the beginning and
// discarding entries below it).
func (t *Tree[V]) Range(lower, upper Bound) []Entry[V] {
	var out []Entry[V]
	it := t.iterFrom(lower)
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		if upper.Kind != Unbounded {
			cmp := e.Key.Compare(upper.Key)
			if upper.Kind == Included && cmp == 0 {
				out = append(out, e)
				break
			}
			if (upper.Kind == Included && cmp > 0) || (upper.Kind == Excluded && cmp >= 0) {
				break
			}
		}
		out = append(out, e)
	}
	return out
}

// iterFrom returns an Iterator seeded at lower: for Unbounded it is
// identical to Iter(); otherwise it descends the tree once, skipping
// subtrees that cannot contain a key >= lower (or > lower for Excluded),
// so the first call to Next() returns the smallest qualifying entry
// directly rather than scanning past smaller ones.
func (t *Tree[V]) iterFrom(lower Bound) *Iterator[V] {
	it := &Iterator[V]{}
	if t.root == nil {
		return it
	}
	if lower.Kind == Unbounded {
		it.seedRoot(t.root, append([]byte{}, t.root.prefix.bytes()...))
		return it
	}
	seedLowerBound(it, t.root, nil, lower)
	return it
}

// seedLowerBound populates it with exactly the entries of the subtree
// rooted at n (reached via path, not yet including n's own prefix) that
// are >= lower (Included) or > lower (Excluded), in ascending order.
func seedLowerBound[V any](it *Iterator[V], n *node[V], path []byte, lower Bound) {
	depth := len(path)
	p := n.prefix.longestCommonPrefix(lower.Key, depth)
	fullDepth := depth + p
	fullPath := append(append([]byte{}, path...), n.prefix.bytes()...)

	switch {
	case p < n.prefix.len() && fullDepth < lower.Key.Len():
		// Genuine divergence with bytes left on both sides: either this
		// whole subtree sorts above lower, or entirely below it.
		if n.prefix.byteAt(p) > lower.Key.ByteAt(fullDepth) {
			it.seedRoot(n, fullPath)
		}
		return

	case p < n.prefix.len():
		// lower is exhausted mid-prefix: every key here extends lower, so
		// the whole subtree sorts above it regardless of bound kind.
		it.seedRoot(n, fullPath)
		return

	case fullDepth == lower.Key.Len():
		// n's own prefix ends exactly where lower ends: fullPath == lower.
		if n.isTwig() {
			if lower.Kind == Included {
				it.flushTwig(n.twig, fullPath)
			}
			return
		}
		if lower.Kind == Included && n.exact != nil {
			it.flushTwig(n.exact, fullPath)
		}
		it.stack = append(it.stack, newNodeCursor(n, fullPath))
		return
	}

	// n's entire prefix matched and lower continues past it: n's own twig
	// or exact value (if any) is a proper prefix of lower and sorts before
	// it, so neither is ever taken here.
	if n.isTwig() {
		return
	}

	b := lower.Key.ByteAt(fullDepth)
	cursor := &nodeCursor[V]{path: fullPath}
	var matched *node[V]
	n.iter(func(c byte, child *node[V]) {
		switch {
		case c < b:
		case c == b:
			matched = child
		default:
			cursor.pairs = append(cursor.pairs, childPair[V]{c, child})
		}
	})
	if len(cursor.pairs) > 0 {
		it.stack = append(it.stack, cursor)
	}
	if matched != nil {
		childPath := append(append([]byte{}, fullPath...), b)
		seedLowerBound(it, matched, childPath, lower)
	}
}
