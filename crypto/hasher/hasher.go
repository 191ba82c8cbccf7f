// Package hasher provides the hash functions used to compute imprints.
// Implementations live in subpackages and register themselves under
// their identifier; import them with a blank import name.
package hasher

import (
	"fmt"
	"hash"
	"sort"
)

// Hasher provides hash functions for imprint trees.
// A Hasher is a stateless value: every call allocates its own hash state,
// so one instance may be shared by any number of goroutines.
type Hasher interface {
	// ID returns the name of the cryptographic hash function.
	ID() string
	// Size returns the size of the hash output in bytes.
	Size() int
	// Digest hashes all passed byte slices. The passed slices won't be mutated.
	Digest(ms ...[]byte) []byte
	treeHasher
}

// treeHasher provides hash functions for tree implementations.
type treeHasher interface {
	// HashLeaf computes the imprint of a leaf as: H(canon(value))
	HashLeaf(canon []byte) []byte

	// HashContainer computes the imprint of a container as:
	// H(child_1 || child_2 || ... || child_k)
	HashContainer(children ...[]byte) []byte
}

var hashers = make(map[string]Hasher)

// RegisterHasher registers a hasher for use.
func RegisterHasher(h string, f func() Hasher) {
	if _, ok := hashers[h]; ok {
		panic(fmt.Sprintf("RegisterHasher(%v) is already registered", h))
	}
	hashers[h] = f()
}

// Get returns the Hasher registered under h.
func Get(h string) (Hasher, error) {
	if f, ok := hashers[h]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("Hasher(%v) is unknown hasher", h)
}

// Registered returns the identifiers of all registered hashers, sorted.
func Registered() []string {
	ids := make([]string, 0, len(hashers))
	for id := range hashers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// digestHasher implements Hasher on top of any hash.Hash constructor.
type digestHasher struct {
	id   string
	size int
	new  func() hash.Hash
}

// New returns a Hasher named id which draws a fresh hash.Hash from
// newHash for every digest.
func New(id string, newHash func() hash.Hash) Hasher {
	return &digestHasher{
		id:   id,
		size: newHash().Size(),
		new:  newHash,
	}
}

func (dh *digestHasher) ID() string {
	return dh.id
}

func (dh *digestHasher) Size() int {
	return dh.size
}

func (dh *digestHasher) Digest(ms ...[]byte) []byte {
	h := dh.new()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)
}

func (dh *digestHasher) HashLeaf(canon []byte) []byte {
	return dh.Digest(canon)
}

func (dh *digestHasher) HashContainer(children ...[]byte) []byte {
	return dh.Digest(children...)
}
