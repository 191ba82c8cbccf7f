// Package keccak registers the Keccak-256 imprint hasher, the hash used
// by Ethereum, so imprints can be checked by on-chain contracts.
package keccak

import (
	"hash"

	"github.com/0xcert/framework-sub004/crypto/hasher"
	"github.com/ethereum/go-ethereum/crypto"
)

func init() {
	hasher.RegisterHasher(Keccak256Hasher, New)
}

// Keccak256Hasher is the identity of the Keccak-256 hasher.
const Keccak256Hasher = "keccak256"

// New returns an instance of the Keccak-256 hasher.
func New() hasher.Hasher {
	return hasher.New(Keccak256Hasher, func() hash.Hash {
		return crypto.NewKeccakState()
	})
}
