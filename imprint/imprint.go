package imprint

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Imprint is the hash committing to a node's content. Its length is
// fixed by the hasher that produced it.
type Imprint []byte

// ParseImprint decodes a 0x-prefixed hex string.
func ParseImprint(s string) (Imprint, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, err
	}
	return Imprint(b), nil
}

// Equal reports whether i and o are the same imprint.
func (i Imprint) Equal(o Imprint) bool {
	return bytes.Equal(i, o)
}

func (i Imprint) String() string {
	return hexutil.Encode(i)
}

// MarshalText encodes i as 0x-prefixed hex.
func (i Imprint) MarshalText() ([]byte, error) {
	return []byte(hexutil.Encode(i)), nil
}

// UnmarshalText decodes 0x-prefixed hex.
func (i *Imprint) UnmarshalText(text []byte) error {
	b, err := hexutil.Decode(string(text))
	if err != nil {
		return err
	}
	*i = Imprint(b)
	return nil
}
