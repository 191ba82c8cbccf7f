package keccak

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func TestHashLeafVectors(t *testing.T) {
	// Keccak-256 of the empty string.
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := hex.EncodeToString(New().HashLeaf(nil)); got != want {
		t.Errorf("HashLeaf(\"\"): %s, want %s", got, want)
	}
}

func TestMatchesGethKeccak(t *testing.T) {
	a, b := []byte("foo"), []byte("bar")
	if !bytes.Equal(New().HashContainer(a, b), crypto.Keccak256(a, b)) {
		t.Error("HashContainer should match crypto.Keccak256 over the concatenation")
	}
}
