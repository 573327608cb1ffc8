package tart

import (
	"bytes"
	"fmt"
	"strings"
)

// dumper renders an ASCII tree of a Tree's current root for debugging,
// adapted from the teacher's dump.go for the twig/ts-aware node model: a
// leaf line now shows every timestamped value a twig holds, and an interior
// node shows its own embedded "exact" value (if any) alongside its routed
// children.
//
// For a tree holding "aab", "aac", "aad" with values 1, 2, 3 at ts 1, 2, 3
// it renders (each twig's prefix is empty, since the routing byte that
// leads to it is consumed by the parent):
//
//	─── node4 "aa" ts=3
//	    ├── twig "" ts=1
//	    │       [aab]=1 @1
//	    ├── twig "" ts=2
//	    │       [aac]=2 @2
//	    └── twig "" ts=3
//	            [aad]=3 @3
type dumper[V any] struct {
	root        *node[V]
	buf         *bytes.Buffer
	nChildStack []int
}

// Dump returns a debug rendering of t's current root.
func (t *Tree[V]) Dump() string {
	d := &dumper[V]{root: t.root}
	return d.String()
}

func (d *dumper[V]) String() string {
	d.buf = bytes.NewBufferString("")
	if d.root == nil {
		return "(empty)\n"
	}
	d.dumpNode(d.root)
	return d.buf.String()
}

func (d *dumper[V]) padding() (string, string) {
	depth := len(d.nChildStack)
	if depth == 0 {
		return "───", "    "
	}
	pad := "    " + strings.Repeat("│   ", depth-1)
	childrenLeft := d.nChildStack[len(d.nChildStack)-1]
	head := "├──"
	finalPad := "│   "
	if childrenLeft == 1 {
		head = "└──"
		finalPad = "    "
	}
	return pad + head, pad + finalPad
}

func (d *dumper[V]) pushNChildren(n int) {
	d.nChildStack = append(d.nChildStack, n)
}

func (d *dumper[V]) decNChildren() {
	d.nChildStack[len(d.nChildStack)-1]--
}

func (d *dumper[V]) popNChildren() {
	d.nChildStack = d.nChildStack[:len(d.nChildStack)-1]
}

func (d *dumper[V]) dumpTwig(pad string, t *twig[V]) {
	t.iter(func(lv leafValue[V]) {
		fmt.Fprintf(d.buf, "%s[%s]=%v @%d\n", pad, string(lv.key.Bytes()), lv.value, lv.ts)
	})
}

func (d *dumper[V]) dumpNode(n *node[V]) {
	headerPad, pad := d.padding()

	switch n.kind {
	case kindTwig:
		fmt.Fprintf(d.buf, "%s twig %q ts=%d\n", headerPad, string(n.prefix.bytes()), n.ts)
		d.dumpTwig(pad+"    ", n.twig)
		return
	case kindFlat4:
		fmt.Fprintf(d.buf, "%s node4 %q ts=%d\n", headerPad, string(n.prefix.bytes()), n.ts)
	case kindFlat16:
		fmt.Fprintf(d.buf, "%s node16 %q ts=%d\n", headerPad, string(n.prefix.bytes()), n.ts)
	case kindNode48:
		fmt.Fprintf(d.buf, "%s node48 %q ts=%d\n", headerPad, string(n.prefix.bytes()), n.ts)
	case kindNode256:
		fmt.Fprintf(d.buf, "%s node256 %q ts=%d\n", headerPad, string(n.prefix.bytes()), n.ts)
	}

	if n.exact != nil {
		d.dumpTwig(pad+"    ", n.exact)
	}

	count := n.numChildren()
	d.pushNChildren(count)
	n.iter(func(_ byte, child *node[V]) {
		d.dumpNode(child)
		d.decNChildren()
	})
	d.popNChildren()
}
