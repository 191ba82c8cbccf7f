package imprintkv

import (
	"encoding/json"

	"github.com/0xcert/framework-sub004/imprint"
	"github.com/0xcert/framework-sub004/storage/kv"
)

// StoreRoot stores sr into the db under the key which is the
// combination of the RootIdentifier and the asset id. Certifying an
// asset again replaces its previous root.
func StoreRoot(db kv.DB, sr *imprint.SignedRoot) error {
	buf, err := json.Marshal(sr)
	if err != nil {
		return err
	}
	wb := db.NewBatch()
	wb.Put(rootKey(sr.AssetID), buf)
	return db.Write(wb)
}

// LoadRoot loads the signed root of assetID. It returns db.ErrNotFound()
// if the asset has never been certified.
func LoadRoot(db kv.DB, assetID string) (*imprint.SignedRoot, error) {
	buf, err := db.Get(rootKey(assetID))
	if err != nil {
		return nil, err
	}
	sr := new(imprint.SignedRoot)
	if err := json.Unmarshal(buf, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

// ListRoots returns all stored signed roots ordered by asset id.
func ListRoots(db kv.DB) ([]*imprint.SignedRoot, error) {
	it := db.NewIterator(kv.BytesPrefix([]byte{RootIdentifier}))
	defer it.Release()
	var roots []*imprint.SignedRoot
	for ok := it.First(); ok; ok = it.Next() {
		sr := new(imprint.SignedRoot)
		if err := json.Unmarshal(it.Value(), sr); err != nil {
			return nil, err
		}
		roots = append(roots, sr)
	}
	return roots, it.Error()
}

func rootKey(assetID string) []byte {
	key := make([]byte, 0, 1+len(assetID))
	key = append(key, RootIdentifier)
	key = append(key, assetID...)
	return key
}
