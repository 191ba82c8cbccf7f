// Package blake3 registers the BLAKE3 imprint hasher with a 32-byte output.
package blake3

import (
	"hash"

	"github.com/0xcert/framework-sub004/crypto/hasher"
	"lukechampine.com/blake3"
)

func init() {
	hasher.RegisterHasher(Blake3Hasher, New)
}

const (
	// Blake3Hasher is the identity of the BLAKE3 hasher.
	Blake3Hasher = "blake3"

	outputSize = 32
)

// New returns an instance of the BLAKE3 hasher.
func New() hasher.Hasher {
	return hasher.New(Blake3Hasher, func() hash.Hash {
		return blake3.New(outputSize, nil)
	})
}
