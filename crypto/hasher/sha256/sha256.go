// Package sha256 registers the default imprint hasher, SHA-256.
package sha256

import (
	"crypto/sha256"

	"github.com/0xcert/framework-sub004/crypto/hasher"
)

func init() {
	hasher.RegisterHasher(SHA256Hasher, New)
}

// SHA256Hasher is the identity of the SHA-256 hasher.
const SHA256Hasher = "sha256"

// New returns an instance of the SHA-256 hasher.
func New() hasher.Hasher {
	return hasher.New(SHA256Hasher, sha256.New)
}
