package imprint

import (
	"fmt"

	"github.com/0xcert/framework-sub004/crypto/hasher"
)

// Tree is an imprint tree whose shape mirrors the certified data.
// A Tree is read-only once built and safe for concurrent reads.
// Returned imprints and paths are copies.
type Tree struct {
	hasher hasher.Hasher
	root   *Node
	nodes  map[string]*Node
	order  []*Node // pre-order, root first
}

// Build constructs the imprint tree of a traversal.
//
// entries must list every node exactly once in pre-order: a container
// comes before its children, which follow it contiguously in declaration
// order. The root container is implicit; a leading entry with the empty
// path is accepted if it is a container. Array elements must carry their
// position as key.
//
// Build fails with ErrMalformedTraversal if the ordering contract is
// violated and with ErrInvalidValue if a leaf value cannot be
// canonicalized.
func Build(h hasher.Hasher, entries []Entry) (*Tree, error) {
	if h == nil {
		return nil, ErrNoHasher
	}
	root := &Node{path: Path{}, kind: KindContainer}
	t := &Tree{
		hasher: h,
		root:   root,
		nodes:  map[string]*Node{root.id: root},
		order:  make([]*Node, 1, len(entries)+1),
	}
	t.order[0] = root

	if len(entries) > 0 && len(entries[0].Path) == 0 {
		if entries[0].Kind != KindContainer {
			return nil, malformedTraversal("the root must be a container")
		}
		entries = entries[1:]
	}

	// first pass: the shape, with a stack of open containers
	stack := []*Node{root}
	for _, e := range entries {
		if len(e.Path) == 0 {
			return nil, malformedTraversal("duplicated root")
		}
		if e.Kind != KindLeaf && e.Kind != KindContainer {
			return nil, malformedTraversal("unknown kind %d at %s", e.Kind, e.Path)
		}
		id := e.Path.id()
		if _, ok := t.nodes[id]; ok {
			return nil, malformedTraversal("duplicated path %s", e.Path)
		}
		parentID := e.Path.Parent().id()
		for len(stack) > 0 && stack[len(stack)-1].id != parentID {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			p, ok := t.nodes[parentID]
			switch {
			case !ok:
				return nil, malformedTraversal("orphaned path %s", e.Path)
			case p.IsLeaf():
				return nil, malformedTraversal("parent of %s is a leaf", e.Path)
			default:
				return nil, malformedTraversal("children of %s are not contiguous", p.path)
			}
		}
		parent := stack[len(stack)-1]
		key := e.Path[len(e.Path)-1]
		if key.isIndex && key.index != len(parent.children) {
			return nil, malformedTraversal("array element %s out of order", e.Path)
		}
		n := &Node{
			path:   append(Path(nil), e.Path...),
			key:    key,
			index:  len(parent.children),
			kind:   e.Kind,
			id:     id,
			parent: parent,
		}
		if e.Kind == KindLeaf {
			n.value = e.Value
		}
		parent.children = append(parent.children, n)
		t.nodes[id] = n
		t.order = append(t.order, n)
		if n.kind == KindContainer {
			stack = append(stack, n)
		}
	}

	// second pass: imprints in reverse pre-order, so that every
	// container is reached after all of its children
	for i := len(t.order) - 1; i >= 0; i-- {
		n := t.order[i]
		if n.IsLeaf() {
			c, err := Canon(n.value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", n.path, err)
			}
			n.imprint = h.HashLeaf([]byte(c))
			continue
		}
		imprints := make([][]byte, len(n.children))
		for j, c := range n.children {
			imprints[j] = c.imprint
		}
		n.imprint = h.HashContainer(imprints...)
	}
	return t, nil
}

// Hasher returns the hasher the tree was built with.
func (t *Tree) Hasher() hasher.Hasher {
	return t.hasher
}

// Root returns the root imprint, the commitment to the whole structure.
func (t *Tree) Root() Imprint {
	return t.root.Imprint()
}

// RootNode returns the root container.
func (t *Tree) RootNode() *Node {
	return t.root
}

// Len returns the number of nodes, the root included.
func (t *Tree) Len() int {
	return len(t.order)
}

// Nodes returns all nodes in pre-order, the root first.
func (t *Tree) Nodes() []*Node {
	return append([]*Node(nil), t.order...)
}

// Lookup returns the node at p.
func (t *Tree) Lookup(p Path) (*Node, error) {
	n, ok := t.nodes[p.id()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, p)
	}
	return n, nil
}

// Imprint returns the imprint of the node at p.
func (t *Tree) Imprint(p Path) (Imprint, error) {
	n, err := t.Lookup(p)
	if err != nil {
		return nil, err
	}
	return n.Imprint(), nil
}

// Siblings returns, for every ancestor level of p from the root down,
// the ordered imprints of all children at that level; p's own imprint is
// at position Index of the last level. The root has no levels.
func (t *Tree) Siblings(p Path) ([][]Imprint, error) {
	n, err := t.Lookup(p)
	if err != nil {
		return nil, err
	}
	chain := n.ancestors()
	levels := make([][]Imprint, len(chain))
	for i, a := range chain {
		level := make([]Imprint, len(a.parent.children))
		for j, s := range a.parent.children {
			level[j] = s.Imprint()
		}
		levels[i] = level
	}
	return levels, nil
}

// Leaves returns the nodes without children at or below p, in pre-order.
// Empty containers are included: they disclose like a leaf holding nil.
func (t *Tree) Leaves(p Path) ([]*Node, error) {
	n, err := t.Lookup(p)
	if err != nil {
		return nil, err
	}
	var leaves []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if len(n.children) == 0 {
			leaves = append(leaves, n)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(n)
	return leaves, nil
}
