// Package sha3 registers the SHA3-256 imprint hasher.
package sha3

import (
	"github.com/0xcert/framework-sub004/crypto/hasher"
	"golang.org/x/crypto/sha3"
)

func init() {
	hasher.RegisterHasher(SHA3Hasher, New)
}

// SHA3Hasher is the identity of the SHA3-256 hasher.
const SHA3Hasher = "sha3-256"

// New returns an instance of the SHA3-256 hasher.
func New() hasher.Hasher {
	return hasher.New(SHA3Hasher, sha3.New256)
}
