package imprint

import (
	"bytes"
	"encoding/json"
	"io"
)

// Value is the literal value of a disclosed leaf.
type Value struct {
	Path  Path        `json:"path"`
	Value interface{} `json:"value"`
}

// EvidenceNode carries the imprint of an undisclosed subtree together
// with its position among its siblings.
type EvidenceNode struct {
	Index int     `json:"index"`
	Hash  Imprint `json:"hash"`
}

// EvidenceProof describes one node on a disclosure path: its position
// and key among its siblings, its own imprint, and the number of its
// children. The first proof of every Evidence describes the root.
type EvidenceProof struct {
	Index int     `json:"index"`
	Key   Key     `json:"key"`
	Hash  Imprint `json:"hash"`
	Width int     `json:"width"`
}

// Evidence is the self-contained data needed to recompute a root imprint
// from a disclosed subset of the certified values.
//
// Proofs are emitted root-to-leaf for every disclosed leaf in turn; right
// after the proof of a container come, in Nodes, the imprints of its
// children that lie on no disclosure path. Verify relies on exactly this
// order, so the slices must be kept as generated.
type Evidence struct {
	Hasher string          `json:"hasher"`
	Values []Value         `json:"values"`
	Nodes  []EvidenceNode  `json:"nodes"`
	Proofs []EvidenceProof `json:"proofs"`
}

// Disclose returns the evidence revealing the values at paths.
//
// Disclosing a container discloses every leaf below it. Leaves are
// disclosed in the order given, each at most once, and every proof and
// sibling imprint is emitted at most once across the whole bundle.
// Disclose fails with ErrPathNotFound if a path is not in the tree.
func Disclose(t *Tree, paths ...Path) (*Evidence, error) {
	var leaves []*Node
	seen := make(map[*Node]bool)
	for _, p := range paths {
		ls, err := t.Leaves(p)
		if err != nil {
			return nil, err
		}
		for _, l := range ls {
			if !seen[l] {
				seen[l] = true
				leaves = append(leaves, l)
			}
		}
	}

	// mark every node lying on a disclosure path
	onPath := map[*Node]bool{t.root: true}
	for _, l := range leaves {
		for n := l; !onPath[n]; n = n.parent {
			onPath[n] = true
		}
	}

	ev := &Evidence{
		Hasher: t.hasher.ID(),
		Values: make([]Value, 0, len(leaves)),
		Nodes:  []EvidenceNode{},
		Proofs: []EvidenceProof{},
	}
	emitted := make(map[*Node]bool)
	emit := func(n *Node) {
		emitted[n] = true
		ev.Proofs = append(ev.Proofs, EvidenceProof{
			Index: n.index,
			Key:   n.key,
			Hash:  n.Imprint(),
			Width: len(n.children),
		})
		for _, c := range n.children {
			if !onPath[c] {
				ev.Nodes = append(ev.Nodes, EvidenceNode{
					Index: c.index,
					Hash:  c.Imprint(),
				})
			}
		}
	}

	emit(t.root)
	for _, l := range leaves {
		ev.Values = append(ev.Values, Value{
			Path:  l.Path(),
			Value: l.value,
		})
		for _, n := range l.ancestors() {
			if !emitted[n] {
				emit(n)
			}
		}
	}
	return ev, nil
}

// Marshal returns the JSON encoding of ev. Field and element order are
// preserved, so the encoding of a given Evidence is byte-exact.
func (ev *Evidence) Marshal() ([]byte, error) {
	return json.Marshal(ev)
}

// UnmarshalEvidence parses a JSON-encoded evidence bundle.
// Numbers are kept as json.Number so that integer values survive
// the round trip exactly.
func UnmarshalEvidence(msg []byte) (*Evidence, error) {
	return DecodeEvidence(bytes.NewReader(msg))
}

// DecodeEvidence reads one JSON-encoded evidence bundle from r.
func DecodeEvidence(r io.Reader) (*Evidence, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	ev := new(Evidence)
	if err := dec.Decode(ev); err != nil {
		return nil, err
	}
	return ev, nil
}
