package notary

import (
	"github.com/0xcert/framework-sub004/crypto/hasher"
	"github.com/0xcert/framework-sub004/crypto/sign"
)

// Policies contains a notary's certification policies: the name of the
// hash function imprints are computed with and the path to the signing
// private key.
type Policies struct {
	Hasher      string `toml:"hasher" yaml:"hasher"`
	SignKeyPath string `toml:"sign_key_path" yaml:"sign_key_path"`
	signKey     sign.PrivateKey
	hasher      hasher.Hasher
}

// NewPolicies initializes a new Policies struct.
func NewPolicies(hasherID, signKeyPath string, signKey sign.PrivateKey) *Policies {
	return &Policies{
		Hasher:      hasherID,
		SignKeyPath: signKeyPath,
		signKey:     signKey,
	}
}
