package tart

// Tree is a persistent, timestamped Adaptive Radix Tree. Every mutating
// method returns a Tree value wrapping a new root; except for InsertInPlace,
// the receiver is left untouched and remains a valid, independently readable
// snapshot
// (spec.md §3 Lifecycle, §5 Concurrency — single writer, many readers, no
// intrinsic synchronization needed in the core).
type Tree[V any] struct {
	root *node[V]
	size int
}

// New returns an empty Tree.
func New[V any]() *Tree[V] {
	return &Tree[V]{}
}

// Len returns the number of distinct keys stored.
func (t *Tree[V]) Len() int { return t.size }

// Get returns the latest value stored for key.
func (t *Tree[V]) Get(key Key) (V, uint64, bool) {
	return lookup(t.root, key, 0, 0)
}

// GetAsOf returns the value stored for key with the greatest ts <= bound.
func (t *Tree[V]) GetAsOf(key Key, bound uint64) (V, uint64, bool) {
	return lookup(t.root, key, 0, bound)
}

func lookup[V any](n *node[V], key Key, depth int, tsBound uint64) (V, uint64, bool) {
	var zero V
	if n == nil {
		return zero, 0, false
	}
	p := n.prefix.longestCommonPrefix(key, depth)
	if p < n.prefix.len() {
		return zero, 0, false
	}
	depth += p

	if n.isTwig() {
		if depth != key.Len() {
			return zero, 0, false
		}
		if tsBound > 0 {
			return n.twig.getValueByTS(key, tsBound)
		}
		return n.twig.getLatestValue(key)
	}

	if depth == key.Len() {
		if n.exact == nil {
			return zero, 0, false
		}
		if tsBound > 0 {
			return n.exact.getValueByTS(key, tsBound)
		}
		return n.exact.getLatestValue(key)
	}

	child, ok := n.findChild(key.ByteAt(depth))
	if !ok {
		return zero, 0, false
	}
	return lookup(child, key, depth+1, tsBound)
}

// Insert returns a new Tree with (key, value, ts) upserted, and the
// previous value for key if one existed.
func (t *Tree[V]) Insert(key Key, value V, ts uint64) (*Tree[V], V, uint64, bool) {
	newRoot, oldVal, oldTS, replaced := insertRec(t.root, key, value, ts, 0, false)
	size := t.size
	if !replaced {
		size++
	}
	return &Tree[V]{root: newRoot, size: size}, oldVal, oldTS, replaced
}

// InsertInPlace is the mutating counterpart grounded on original_source's
// insert_mut: it still returns a Tree (the size may change), but mutates
// every existing node on the descent path in place instead of copying it;
// it does not check whether a node is shared with another root. It must
// only be used when the caller knows
// the receiver Tree is not observed elsewhere (e.g. a builder accumulating
// inserts before the first call to Get/snapshot exposes intermediate
// roots) — spec.md §3 Lifecycle's optimisation clause.
func (t *Tree[V]) InsertInPlace(key Key, value V, ts uint64) (*Tree[V], V, uint64, bool) {
	newRoot, oldVal, oldTS, replaced := insertRec(t.root, key, value, ts, 0, true)
	size := t.size
	if !replaced {
		size++
	}
	return &Tree[V]{root: newRoot, size: size}, oldVal, oldTS, replaced
}

func insertRec[V any](n *node[V], key Key, value V, ts uint64, depth int, mut bool) (*node[V], V, uint64, bool) {
	var zero V
	if n == nil {
		nt := newTwig[V]()
		nt.insertInPlace(key, value, ts)
		return newTwigNode[V](newPrefix(key.Bytes()[depth:]), nt), zero, 0, false
	}

	p := n.prefix.longestCommonPrefix(key, depth)

	if n.isTwig() {
		keyRemaining := key.Len() - depth
		if p == n.prefix.len() && p == keyRemaining {
			var twigCopy *twig[V]
			if mut {
				twigCopy = n.twig
			} else {
				twigCopy = n.twig.clone()
			}
			oldLV, hadOld := twigCopy.getLatestLeaf(key)
			twigCopy.insertInPlace(key, value, ts)
			nn := n
			if !mut {
				nn = &node[V]{prefix: n.prefix, kind: kindTwig}
			}
			nn.twig = twigCopy
			nn.ts = twigCopy.ts
			if hadOld {
				return nn, oldLV.value, oldLV.ts, true
			}
			return nn, zero, 0, false
		}
		return splitNode(n, key, value, ts, depth, p), zero, 0, false
	}

	if p < n.prefix.len() {
		return splitNode(n, key, value, ts, depth, p), zero, 0, false
	}

	depth += p
	if depth == key.Len() {
		nn := n
		if !mut {
			nn = n.clone()
		}
		var oldLV leafValue[V]
		hadOld := false
		if nn.exact != nil {
			exactCopy := nn.exact
			if !mut {
				exactCopy = nn.exact.clone()
			}
			oldLV, hadOld = exactCopy.getLatestLeaf(key)
			exactCopy.insertInPlace(key, value, ts)
			nn.exact = exactCopy
		} else {
			nt := newTwig[V]()
			nt.insertInPlace(key, value, ts)
			nn.exact = nt
		}
		nn.recomputeTS()
		if hadOld {
			return nn, oldLV.value, oldLV.ts, true
		}
		return nn, zero, 0, false
	}

	b := key.ByteAt(depth)
	if child, ok := n.findChild(b); ok {
		newChild, oldVal, oldTS, replaced := insertRec(child, key, value, ts, depth+1, mut)
		nn := n
		if !mut {
			nn = n.clone()
		}
		nn.replaceChildInPlace(b, newChild)
		nn.raiseTS(newChild.ts)
		return nn, oldVal, oldTS, replaced
	}

	nt := newTwig[V]()
	nt.insertInPlace(key, value, ts)
	childNode := newTwigNode[V](newPrefix(key.Bytes()[depth+1:]), nt)
	nn := n
	if !mut {
		nn = n.clone()
	}
	nn.addChildGrowing(b, childNode)
	nn.raiseTS(childNode.ts)
	return nn, zero, 0, false
}

// splitNode implements spec.md §4.4 Case C (prefix split), Case B (new key
// exhausted mid-prefix), and the symmetric case where an existing twig's
// key is a strict prefix of the inserted key (spec.md §9 Open Question 2:
// the existing node becomes a routed child, the new/old exhausted side's
// value is held as the new interior node's embedded "exact" twig).
func splitNode[V any](old *node[V], key Key, value V, ts uint64, depth, p int) *node[V] {
	commonPrefix := newPrefix(old.prefix.bytes()[:p])
	m := &node[V]{prefix: commonPrefix, kind: kindFlat4, n4: &node4[V]{}}

	oldExhausted := p == old.prefix.len()
	keyExhausted := depth+p == key.Len()

	switch {
	case keyExhausted && oldExhausted:
		panic("tart: internal invariant violation: splitNode called for an exact key match")

	case keyExhausted:
		nt := newTwig[V]()
		nt.insertInPlace(key, value, ts)
		m.exact = nt
		routingByte := old.prefix.byteAt(p)
		reparented := old.withPrefix(old.prefix.subPrefixFrom(p + 1))
		m.n4.addChild(routingByte, reparented)
		m.ts = maxU64(nt.ts, reparented.ts)

	case oldExhausted:
		if !old.isTwig() {
			panic("tart: internal invariant violation: non-twig node exhausted mid-split")
		}
		m.exact = old.twig
		nb := key.ByteAt(depth + p)
		nt := newTwig[V]()
		nt.insertInPlace(key, value, ts)
		newChild := newTwigNode[V](newPrefix(key.Bytes()[depth+p+1:]), nt)
		m.n4.addChild(nb, newChild)
		m.ts = maxU64(old.twig.ts, nt.ts)

	default:
		oldRoutingByte := old.prefix.byteAt(p)
		reparentedOld := old.withPrefix(old.prefix.subPrefixFrom(p + 1))
		newRoutingByte := key.ByteAt(depth + p)
		nt := newTwig[V]()
		nt.insertInPlace(key, value, ts)
		newChild := newTwigNode[V](newPrefix(key.Bytes()[depth+p+1:]), nt)
		m.n4.addChild(oldRoutingByte, reparentedOld)
		m.n4.addChild(newRoutingByte, newChild)
		m.ts = maxU64(reparentedOld.ts, newChild.ts)
	}
	return m
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// Remove returns a new Tree with key's entry removed (every timestamped
// value for it — spec.md §4.4 Delete removes the whole twig), and the
// latest removed value if key was present.
func (t *Tree[V]) Remove(key Key) (*Tree[V], V, uint64, bool) {
	newRoot, val, ts, removed := removeRec(t.root, key, 0)
	size := t.size
	if removed {
		size--
	}
	return &Tree[V]{root: newRoot, size: size}, val, ts, removed
}

func removeRec[V any](n *node[V], key Key, depth int) (*node[V], V, uint64, bool) {
	var zero V
	if n == nil {
		return nil, zero, 0, false
	}
	p := n.prefix.longestCommonPrefix(key, depth)
	if p < n.prefix.len() {
		return n, zero, 0, false
	}
	depth += p

	if n.isTwig() {
		if depth != key.Len() {
			return n, zero, 0, false
		}
		lv, ok := n.twig.getLatestLeaf(key)
		if !ok {
			return n, zero, 0, false
		}
		return nil, lv.value, lv.ts, true
	}

	if depth == key.Len() {
		if n.exact == nil {
			return n, zero, 0, false
		}
		lv, ok := n.exact.getLatestLeaf(key)
		if !ok {
			return n, zero, 0, false
		}
		nn := n.clone()
		nn.exact = nil
		collapsed := maybeCollapse(nn)
		return collapsed, lv.value, lv.ts, true
	}

	b := key.ByteAt(depth)
	child, ok := n.findChild(b)
	if !ok {
		return n, zero, 0, false
	}
	newChild, val, ts, removed := removeRec(child, key, depth+1)
	if !removed {
		return n, zero, 0, false
	}

	nn := n.clone()
	if newChild == nil {
		nn.deleteChildInPlace(b)
		nn.shrinkIfNeeded()
	} else {
		nn.replaceChildInPlace(b, newChild)
	}
	nn.recomputeTS()
	return maybeCollapse(nn), val, ts, true
}

// maybeCollapse folds an interior node with 0 children (and no exact value)
// away entirely, turns one with 0 children but an exact value into a plain
// twig, and merges a node with exactly 1 child (and no exact value) into
// that child per spec.md §4.4 Delete.
func maybeCollapse[V any](n *node[V]) *node[V] {
	count := n.numChildren()
	if count == 0 {
		if n.exact != nil {
			return newTwigNode[V](n.prefix, n.exact)
		}
		return nil
	}
	if count == 1 && n.exact == nil {
		b, child := n.soleChild()
		merged := child.withPrefix(n.prefix.concatByteAndPrefix(b, child.prefix))
		return merged
	}
	return n
}

// DeletePrefix removes every key whose byte sequence begins with prefix,
// returning a new Tree and the number of keys removed. Supplemented from
// original_source's DeletePrefix (spec.md's distillation only stubs it).
func (t *Tree[V]) DeletePrefix(p Key) (*Tree[V], int) {
	newRoot, removed := deletePrefixRec(t.root, p, 0)
	return &Tree[V]{root: newRoot, size: t.size - removed}, removed
}

func deletePrefixRec[V any](n *node[V], p Key, depth int) (*node[V], int) {
	if n == nil {
		return nil, 0
	}
	// How much of the remaining query prefix can still be consumed by n's
	// own prefix before we know whether n lies inside or outside the
	// deleted subtree.
	max := n.prefix.len()
	if rem := p.Len() - depth; rem < max {
		max = rem
	}
	i := 0
	for i < max && n.prefix.byteAt(i) == p.ByteAt(depth+i) {
		i++
	}
	if depth+i >= p.Len() {
		// The whole query prefix has been matched by this node's own
		// prefix (or consumed along the way) — every key beneath n starts
		// with p, so the entire subtree is deleted.
		return nil, countKeys(n)
	}
	if i < n.prefix.len() {
		// Diverged before exhausting the query prefix: nothing under n
		// matches.
		return n, 0
	}
	depth += i
	if n.isTwig() {
		return n, 0
	}
	if depth >= p.Len() {
		return nil, countKeys(n)
	}
	b := p.ByteAt(depth)
	child, ok := n.findChild(b)
	if !ok {
		return n, 0
	}
	newChild, removed := deletePrefixRec(child, p, depth+1)
	if removed == 0 {
		return n, 0
	}
	nn := n.clone()
	if newChild == nil {
		nn.deleteChildInPlace(b)
		nn.shrinkIfNeeded()
	} else {
		nn.replaceChildInPlace(b, newChild)
	}
	nn.recomputeTS()
	return maybeCollapse(nn), removed
}

func countKeys[V any](n *node[V]) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.isTwig() {
		seen := map[string]struct{}{}
		n.twig.iter(func(lv leafValue[V]) { seen[string(lv.key.Bytes())] = struct{}{} })
		return len(seen)
	}
	if n.exact != nil {
		seen := map[string]struct{}{}
		n.exact.iter(func(lv leafValue[V]) { seen[string(lv.key.Bytes())] = struct{}{} })
		count += len(seen)
	}
	n.iter(func(_ byte, c *node[V]) { count += countKeys(c) })
	return count
}

// LongestPrefix returns the longest stored key that is a prefix of key,
// along with its latest value. Supplemented from the hashicorp/go-immutable-
// radix family the teacher forked from.
func (t *Tree[V]) LongestPrefix(key Key) (Key, V, uint64, bool) {
	return longestPrefixRec(t.root, key, 0)
}

func longestPrefixRec[V any](n *node[V], key Key, depth int) (Key, V, uint64, bool) {
	var zero V
	if n == nil {
		return nil, zero, 0, false
	}
	p := n.prefix.longestCommonPrefix(key, depth)
	if p < n.prefix.len() {
		return nil, zero, 0, false
	}
	depth += p

	var best Key
	var bestVal V
	var bestTS uint64
	haveBest := false

	if n.isTwig() {
		if v, ts, ok := n.twig.getLatestValue(key[:depth]); ok {
			return key[:depth], v, ts, true
		}
		return nil, zero, 0, false
	}

	if n.exact != nil {
		if lv, ok := n.exact.getLatestLeaf(key[:depth]); ok {
			best, bestVal, bestTS, haveBest = key[:depth], lv.value, lv.ts, true
		}
	}
	if depth == key.Len() {
		if haveBest {
			return best, bestVal, bestTS, true
		}
		return nil, zero, 0, false
	}
	child, ok := n.findChild(key.ByteAt(depth))
	if !ok {
		if haveBest {
			return best, bestVal, bestTS, true
		}
		return nil, zero, 0, false
	}
	if k, v, ts, found := longestPrefixRec(child, key, depth+1); found {
		return k, v, ts, true
	}
	if haveBest {
		return best, bestVal, bestTS, true
	}
	return nil, zero, 0, false
}

// Minimum returns the lexicographically smallest stored key and its latest
// value.
func (t *Tree[V]) Minimum() (Key, V, uint64, bool) {
	return minimumRec(t.root, nil)
}

func minimumRec[V any](n *node[V], prefixSoFar []byte) (Key, V, uint64, bool) {
	var zero V
	if n == nil {
		return nil, zero, 0, false
	}
	path := append(append([]byte{}, prefixSoFar...), n.prefix.bytes()...)
	if n.isTwig() {
		lv, ok := minLeaf(n.twig)
		if !ok {
			return nil, zero, 0, false
		}
		return Key(path), lv.value, lv.ts, true
	}
	if n.exact != nil {
		lv, ok := minLeaf(n.exact)
		if ok {
			return Key(path), lv.value, lv.ts, true
		}
	}
	b, child := n.minChild()
	return minimumRec(child, append(path, b))
}

// Maximum returns the lexicographically largest stored key and its latest
// value.
func (t *Tree[V]) Maximum() (Key, V, uint64, bool) {
	return maximumRec(t.root, nil)
}

func maximumRec[V any](n *node[V], prefixSoFar []byte) (Key, V, uint64, bool) {
	var zero V
	if n == nil {
		return nil, zero, 0, false
	}
	path := append(append([]byte{}, prefixSoFar...), n.prefix.bytes()...)
	if n.isTwig() {
		lv, ok := minLeaf(n.twig)
		if !ok {
			return nil, zero, 0, false
		}
		return Key(path), lv.value, lv.ts, true
	}
	if n.numChildren() == 0 {
		if n.exact != nil {
			if lv, ok := minLeaf(n.exact); ok {
				return Key(path), lv.value, lv.ts, true
			}
		}
		return nil, zero, 0, false
	}
	b, child := n.maxChild()
	return maximumRec(child, append(path, b))
}

// minLeaf returns any one LeafValue from a twig used purely as a key
// terminator (Minimum/Maximum report a key's latest value, matching Get).
func minLeaf[V any](t *twig[V]) (leafValue[V], bool) {
	if len(t.values) == 0 {
		var zero leafValue[V]
		return zero, false
	}
	best := t.values[0]
	for _, v := range t.values[1:] {
		if v.ts > best.ts {
			best = v
		}
	}
	return best, true
}
