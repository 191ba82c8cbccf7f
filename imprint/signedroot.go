package imprint

import (
	"time"

	"github.com/0xcert/framework-sub004/crypto/sign"
	"github.com/0xcert/framework-sub004/utils"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SignedRoot is the published commitment to one certified asset: the
// root imprint of its data, the hasher that produced it and the time it
// was issued, signed by the certifying authority.
type SignedRoot struct {
	AssetID   string        `json:"assetId"`
	Hasher    string        `json:"hasher"`
	Root      Imprint       `json:"root"`
	Issued    int64         `json:"issued"`
	Signature hexutil.Bytes `json:"signature"`
}

// NewSignedRoot signs the root of t for assetID.
func NewSignedRoot(key sign.PrivateKey, assetID string, t *Tree,
	issued time.Time) *SignedRoot {
	sr := &SignedRoot{
		AssetID: assetID,
		Hasher:  t.Hasher().ID(),
		Root:    t.Root(),
		Issued:  issued.Unix(),
	}
	sr.Signature = key.Sign(sr.Serialize())
	return sr
}

// Serialize returns the bytes covered by the signature.
func (sr *SignedRoot) Serialize() []byte {
	var b []byte
	b = utils.AppendLenPrefixed(b, []byte(sr.AssetID)) // asset
	b = utils.AppendLenPrefixed(b, []byte(sr.Hasher))  // hash function
	b = utils.AppendLenPrefixed(b, sr.Root)            // root imprint
	b = append(b, utils.LongToBytes(sr.Issued)...)     // issuance time
	return b
}

// Verify reports whether sr carries a valid signature by pk.
func (sr *SignedRoot) Verify(pk sign.PublicKey) bool {
	return pk.Verify(sr.Serialize(), sr.Signature)
}

// IssuedAt returns the issuance time.
func (sr *SignedRoot) IssuedAt() time.Time {
	return time.Unix(sr.Issued, 0)
}
