package imprint

// Kind tells leaves and containers apart.
type Kind int

const (
	// KindLeaf is a node holding a scalar value.
	KindLeaf Kind = iota
	// KindContainer is a node holding an ordered list of children,
	// i.e. a nested object or array.
	KindContainer
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindContainer:
		return "container"
	}
	return "unknown"
}

// Entry is one element of a traversal: a node's path, its kind and,
// for leaves, its scalar value.
type Entry struct {
	Path  Path
	Kind  Kind
	Value interface{}
}

// Leaf returns the traversal entry of a scalar at p.
func Leaf(p Path, v interface{}) Entry {
	return Entry{Path: p, Kind: KindLeaf, Value: v}
}

// Container returns the traversal entry of an object or array at p.
func Container(p Path) Entry {
	return Entry{Path: p, Kind: KindContainer}
}

// Node is a node of an imprint tree. Nodes are read-only once the tree
// has been built; accessors return copies of mutable state.
type Node struct {
	path    Path
	key     Key
	index   int // position among the parent's children
	kind    Kind
	value   interface{} // nil for containers
	imprint Imprint

	id       string
	parent   *Node
	children []*Node
}

// Path returns the location of n.
func (n *Node) Path() Path {
	return append(Path(nil), n.path...)
}

// Key returns the last element of n's path.
func (n *Node) Key() Key {
	return n.key
}

// Index returns n's position among its parent's children.
func (n *Node) Index() int {
	return n.index
}

func (n *Node) Kind() Kind {
	return n.kind
}

// Value returns the scalar held by a leaf, nil for containers.
func (n *Node) Value() interface{} {
	return n.value
}

// Imprint returns the imprint of n.
func (n *Node) Imprint() Imprint {
	return append(Imprint(nil), n.imprint...)
}

// Parent returns n's parent, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns n's children in declaration order.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// Width returns the number of n's children.
func (n *Node) Width() int {
	return len(n.children)
}

// IsLeaf reports whether n holds a scalar value.
func (n *Node) IsLeaf() bool {
	return n.kind == KindLeaf
}

// ancestors returns the nodes from the root's child down to n.
func (n *Node) ancestors() []*Node {
	var chain []*Node
	for a := n; a.parent != nil; a = a.parent {
		chain = append(chain, a)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
