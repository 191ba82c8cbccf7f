package imprint

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/0xcert/framework-sub004/crypto/hasher"
)

// Result is the outcome of a verification.
type Result int

const (
	// Invalid means the evidence does not lead to the expected root.
	Invalid Result = iota
	// Valid means the disclosed values are part of the structure
	// committed to by the expected root.
	Valid
)

func (r Result) String() string {
	if r == Valid {
		return "valid"
	}
	return "invalid"
}

// Verify checks ev against expectedRoot, a root imprint obtained from
// a trusted source.
//
// A hash mismatch anywhere in the reconstruction yields Invalid and a nil
// error: it is the expected outcome of tampered or outdated data.
// Structurally inconsistent evidence fails with ErrMalformedEvidence.
func Verify(h hasher.Hasher, ev *Evidence, expectedRoot Imprint) (Result, error) {
	root, err := Recompute(h, ev)
	switch {
	case errors.Is(err, ErrImprintMismatch):
		return Invalid, nil
	case err != nil:
		return Invalid, err
	}
	if !bytes.Equal(root, expectedRoot) {
		return Invalid, nil
	}
	return Valid, nil
}

// Recompute rebuilds the root imprint committed to by ev. Leaf imprints
// are always recomputed from the disclosed values; every imprint claimed
// by a proof is checked against its recomputed value and a difference
// fails with ErrImprintMismatch.
func Recompute(h hasher.Hasher, ev *Evidence) (Imprint, error) {
	if h == nil {
		return nil, ErrNoHasher
	}
	if ev == nil {
		return nil, malformedEvidence("no evidence")
	}
	if ev.Hasher != "" && ev.Hasher != h.ID() {
		return nil, fmt.Errorf("%w: evidence uses hasher %s, not %s",
			ErrImprintMismatch, ev.Hasher, h.ID())
	}
	r, err := newReplay(h, ev)
	if err != nil {
		return nil, err
	}
	if err := r.run(); err != nil {
		return nil, err
	}
	return r.fold(r.root)
}

// partial is a node reconstructed from evidence.
type partial struct {
	path     Path
	claimed  Imprint
	width    int
	value    interface{}
	hasValue bool
	children []*partial // disclosed children, by position
	siblings [][]byte   // undisclosed children's imprints, by position
}

// replay walks the disclosed values in the order Disclose emitted them
// and consumes proofs and sibling imprints along the way.
type replay struct {
	h         hasher.Hasher
	ev        *Evidence
	nextProof int
	nextNode  int
	root      *partial
	nodes     map[string]*partial
	all       []*partial
	disclosed map[string]int // number of disclosed children per path
}

func newReplay(h hasher.Hasher, ev *Evidence) (*replay, error) {
	r := &replay{
		h:         h,
		ev:        ev,
		nodes:     make(map[string]*partial),
		disclosed: make(map[string]int),
	}
	values := make(map[string]bool, len(ev.Values))
	prefixes := make(map[string]bool)
	for _, v := range ev.Values {
		id := v.Path.id()
		if values[id] {
			return nil, malformedEvidence("value %s disclosed twice", v.Path)
		}
		values[id] = true
		for d := 1; d <= len(v.Path); d++ {
			cid := v.Path[:d].id()
			if !prefixes[cid] {
				prefixes[cid] = true
				r.disclosed[v.Path[:d-1].id()]++
			}
		}
	}
	return r, nil
}

func (r *replay) run() error {
	root, err := r.open(Path{}, nil)
	if err != nil {
		return err
	}
	r.root = root
	for _, v := range r.ev.Values {
		n := root
		for d := 1; d <= len(v.Path); d++ {
			child, ok := r.nodes[v.Path[:d].id()]
			if !ok {
				if child, err = r.open(v.Path[:d], n); err != nil {
					return err
				}
			}
			n = child
		}
		if n.width != 0 {
			return malformedEvidence("disclosed value at %s is not a leaf", v.Path)
		}
		n.value, n.hasValue = v.Value, true
	}
	if r.nextProof != len(r.ev.Proofs) {
		return malformedEvidence("%d unused proofs", len(r.ev.Proofs)-r.nextProof)
	}
	if r.nextNode != len(r.ev.Nodes) {
		return malformedEvidence("%d unused nodes", len(r.ev.Nodes)-r.nextNode)
	}
	for _, n := range r.all {
		for i := 0; i < n.width; i++ {
			if n.children[i] == nil && n.siblings[i] == nil {
				return malformedEvidence("missing imprint at position %d of %s", i, n.path)
			}
		}
		if n.width == 0 && !n.hasValue && len(n.path) > 0 {
			return malformedEvidence("no value for %s", n.path)
		}
	}
	return nil
}

// open consumes the proof of the node at p, a child of parent, followed
// by the imprints of its undisclosed children.
func (r *replay) open(p Path, parent *partial) (*partial, error) {
	if r.nextProof >= len(r.ev.Proofs) {
		return nil, malformedEvidence("missing proof for %s", p)
	}
	pr := r.ev.Proofs[r.nextProof]
	r.nextProof++
	if pr.Width < 0 {
		return nil, malformedEvidence("negative width at %s", p)
	}

	if parent == nil {
		if pr.Index != 0 || pr.Key != (Key{}) {
			return nil, malformedEvidence("first proof does not describe the root")
		}
	} else {
		k := p[len(p)-1]
		switch {
		case pr.Key != k:
			return nil, malformedEvidence("proof key %q does not match %s", pr.Key, p)
		case pr.Index < 0 || pr.Index >= parent.width:
			return nil, malformedEvidence("index %d of %s out of range", pr.Index, p)
		case k.isIndex && k.index != pr.Index:
			return nil, malformedEvidence("index %d inconsistent with key of %s", pr.Index, p)
		case parent.children[pr.Index] != nil || parent.siblings[pr.Index] != nil:
			return nil, malformedEvidence("position %d of %s taken twice", pr.Index, parent.path)
		}
	}

	// Every slot is either disclosed or backed by a remaining node.
	hidden := pr.Width - r.disclosed[p.id()]
	switch {
	case hidden < 0:
		return nil, malformedEvidence("%s has more disclosed children than its width", p)
	case hidden > len(r.ev.Nodes)-r.nextNode:
		return nil, malformedEvidence("width %d of %s exceeds the evidence", pr.Width, p)
	}

	n := &partial{
		path:     p,
		claimed:  pr.Hash,
		width:    pr.Width,
		children: make([]*partial, pr.Width),
		siblings: make([][]byte, pr.Width),
	}
	if parent != nil {
		parent.children[pr.Index] = n
	}

	for i := 0; i < hidden; i++ {
		if r.nextNode >= len(r.ev.Nodes) {
			return nil, malformedEvidence("missing sibling imprint below %s", p)
		}
		en := r.ev.Nodes[r.nextNode]
		r.nextNode++
		switch {
		case en.Index < 0 || en.Index >= pr.Width:
			return nil, malformedEvidence("node index %d below %s out of range", en.Index, p)
		case n.siblings[en.Index] != nil:
			return nil, malformedEvidence("position %d of %s taken twice", en.Index, p)
		case len(en.Hash) != r.h.Size():
			return nil, malformedEvidence("node imprint below %s has %d bytes", p, len(en.Hash))
		}
		n.siblings[en.Index] = en.Hash
	}

	r.nodes[p.id()] = n
	r.all = append(r.all, n)
	return n, nil
}

func (r *replay) fold(n *partial) (Imprint, error) {
	var got Imprint
	switch {
	case n.width == 0 && n.hasValue:
		c, err := Canon(n.value)
		if err != nil {
			return nil, malformedEvidence("value at %s: %v", n.path, err)
		}
		got = r.h.HashLeaf([]byte(c))
	case n.width == 0:
		got = r.h.HashContainer()
	default:
		imprints := make([][]byte, n.width)
		for i := range imprints {
			if c := n.children[i]; c != nil {
				ci, err := r.fold(c)
				if err != nil {
					return nil, err
				}
				imprints[i] = ci
				continue
			}
			imprints[i] = n.siblings[i]
		}
		got = r.h.HashContainer(imprints...)
	}
	if !bytes.Equal(got, n.claimed) {
		return nil, fmt.Errorf("%w: at %s", ErrImprintMismatch, n.path)
	}
	return got, nil
}
