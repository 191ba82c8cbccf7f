// Package sign signs and verifies published root imprints using ed25519.
package sign

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/ed25519"
)

const (
	// PrivateKeySize is the size of a private signing key in bytes.
	PrivateKeySize = ed25519.PrivateKeySize
	// PublicKeySize is the size of a public verification key in bytes.
	PublicKeySize = ed25519.PublicKeySize
	// SignatureSize is the size of a signature in bytes.
	SignatureSize = ed25519.SignatureSize
)

// ErrBadKeySize indicates that a key read from somewhere
// does not have the expected length.
var ErrBadKeySize = errors.New("[sign] Bad key size")

// PrivateKey is an ed25519 private signing key.
type PrivateKey []byte

// PublicKey is an ed25519 public verification key.
type PublicKey []byte

// GenerateKey creates a new signing key using the entropy from rnd.
// If rnd is nil, crypto/rand.Reader is used.
func GenerateKey(rnd io.Reader) (PrivateKey, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	_, sk, err := ed25519.GenerateKey(rnd)
	return PrivateKey(sk), err
}

// NewPrivateKey checks the length of b and returns it as a PrivateKey.
func NewPrivateKey(b []byte) (PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, ErrBadKeySize
	}
	return PrivateKey(b), nil
}

// NewPublicKey checks the length of b and returns it as a PublicKey.
func NewPublicKey(b []byte) (PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, ErrBadKeySize
	}
	return PublicKey(b), nil
}

// Sign signs message with the private key.
func (key PrivateKey) Sign(message []byte) []byte {
	return ed25519.Sign(ed25519.PrivateKey(key), message)
}

// Public returns the public key corresponding to key.
func (key PrivateKey) Public() (PublicKey, bool) {
	pk, ok := ed25519.PrivateKey(key).Public().(ed25519.PublicKey)
	return PublicKey(pk), ok
}

// Verify reports whether sig is a valid signature of message by pk.
func (pk PublicKey) Verify(message, sig []byte) bool {
	if len(pk) != PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pk), message, sig)
}
