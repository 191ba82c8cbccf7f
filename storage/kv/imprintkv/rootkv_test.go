package imprintkv

import (
	"bytes"
	"testing"
	"time"

	"github.com/0xcert/framework-sub004/crypto/hasher/sha256"
	"github.com/0xcert/framework-sub004/crypto/sign"
	"github.com/0xcert/framework-sub004/imprint"
	"github.com/0xcert/framework-sub004/storage/kv"
	"github.com/0xcert/framework-sub004/storage/kv/leveldbkv"
	"github.com/0xcert/framework-sub004/traverse"
)

func newTree(t *testing.T, doc string) *imprint.Tree {
	entries, err := traverse.JSON([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	tree, err := imprint.Build(sha256.New(), entries)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestRootStore(t *testing.T) {
	leveldbkv.WithDB(func(db kv.DB) {
		signKey, _ := sign.GenerateKey(nil)
		pk, _ := signKey.Public()
		now := time.Now()

		sr1 := imprint.NewSignedRoot(signKey, "asset-1", newTree(t, `{"name":"foo"}`), now)
		sr2 := imprint.NewSignedRoot(signKey, "asset-2", newTree(t, `{"name":"bar"}`), now)
		if err := StoreRoot(db, sr1); err != nil {
			t.Fatal(err)
		}
		if err := StoreRoot(db, sr2); err != nil {
			t.Fatal(err)
		}

		got, err := LoadRoot(db, "asset-1")
		if err != nil {
			t.Fatal(err)
		}
		if !got.Root.Equal(sr1.Root) || !bytes.Equal(got.Signature, sr1.Signature) ||
			got.Issued != sr1.Issued || got.Hasher != sr1.Hasher {
			t.Fatal("Bad root loading/storing",
				"expect", sr1,
				"got", got)
		}
		if !got.Verify(pk) {
			t.Fatal("Loaded root does not verify")
		}

		// certifying again replaces the root
		sr3 := imprint.NewSignedRoot(signKey, "asset-1", newTree(t, `{"name":"baz"}`), now)
		if err := StoreRoot(db, sr3); err != nil {
			t.Fatal(err)
		}
		got, err = LoadRoot(db, "asset-1")
		if err != nil {
			t.Fatal(err)
		}
		if !got.Root.Equal(sr3.Root) {
			t.Fatal("Expect the latest root")
		}

		roots, err := ListRoots(db)
		if err != nil {
			t.Fatal(err)
		}
		if len(roots) != 2 || roots[0].AssetID != "asset-1" || roots[1].AssetID != "asset-2" {
			t.Fatal("Unexpected root listing", roots)
		}

		if _, err = LoadRoot(db, "asset-3"); err != db.ErrNotFound() {
			t.Fatal("Got unexpected root from db")
		}
	})
}
