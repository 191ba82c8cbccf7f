package notary

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/0xcert/framework-sub004/application"
	"github.com/0xcert/framework-sub004/crypto/hasher/keccak"
	"github.com/0xcert/framework-sub004/crypto/hasher/sha256"
	"github.com/0xcert/framework-sub004/crypto/sign"
	"github.com/0xcert/framework-sub004/imprint"
	"github.com/0xcert/framework-sub004/storage/kv"
	"github.com/0xcert/framework-sub004/storage/kv/leveldbkv"
	"github.com/0xcert/framework-sub004/utils"
)

const bookDoc = `{"name":"foo","book":{"title":"bar","year":1999,"tags":["a","b"]}}`

func newTestNotary(t *testing.T, db kv.DB) (*Notary, sign.PublicKey) {
	sk, err := sign.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	pk, _ := sk.Public()
	n := NewNotary(sha256.New(), sk, db, nil)
	n.now = func() time.Time { return time.Unix(1700000000, 0) }
	return n, pk
}

func TestCertify(t *testing.T) {
	leveldbkv.WithDB(func(db kv.DB) {
		n, pk := newTestNotary(t, db)
		sr, err := n.Certify("book-1", []byte(bookDoc))
		if err != nil {
			t.Fatal(err)
		}
		if !sr.Verify(pk) || sr.Issued != 1700000000 || sr.Hasher != sha256.SHA256Hasher {
			t.Fatal("Unexpected signed root", sr)
		}
		got, err := n.Root("book-1")
		if err != nil {
			t.Fatal(err)
		}
		if !got.Root.Equal(sr.Root) {
			t.Fatal("Stored root differs")
		}

		if _, err := n.Certify("", []byte(bookDoc)); err != ErrEmptyAssetID {
			t.Fatal("Expect ErrEmptyAssetID, got", err)
		}
		if _, err := n.Certify("book-2", []byte(`[1]`)); err == nil {
			t.Fatal("Expect an error for a non-object document")
		}
		if _, err := n.Root("book-2"); !errors.Is(err, ErrNotCertified) {
			t.Fatal("Expect ErrNotCertified, got", err)
		}
	})
}

func TestDisclose(t *testing.T) {
	leveldbkv.WithDB(func(db kv.DB) {
		n, _ := newTestNotary(t, db)
		sr, err := n.Certify("book-1", []byte(bookDoc))
		if err != nil {
			t.Fatal(err)
		}

		ev, id, err := n.Disclose("book-1", []byte(bookDoc),
			[]imprint.Path{imprint.MustPath("book", "year")})
		if err != nil {
			t.Fatal(err)
		}
		res, err := imprint.Verify(sha256.New(), ev, sr.Root)
		if err != nil || res != imprint.Valid {
			t.Fatal("Disclosed evidence does not verify", res, err)
		}

		stored, err := n.Evidence(id)
		if err != nil {
			t.Fatal(err)
		}
		res, err = imprint.Verify(sha256.New(), stored, sr.Root)
		if err != nil || res != imprint.Valid {
			t.Fatal("Stored evidence does not verify", res, err)
		}

		// a different document for the same asset
		_, _, err = n.Disclose("book-1", []byte(`{"name":"foo"}`),
			[]imprint.Path{imprint.MustPath("name")})
		if err != ErrDocumentChanged {
			t.Fatal("Expect ErrDocumentChanged, got", err)
		}
		_, _, err = n.Disclose("book-1", []byte(bookDoc),
			[]imprint.Path{imprint.MustPath("isbn")})
		if !errors.Is(err, imprint.ErrPathNotFound) {
			t.Fatal("Expect ErrPathNotFound, got", err)
		}
		_, _, err = n.Disclose("book-9", []byte(bookDoc), nil)
		if !errors.Is(err, ErrNotCertified) {
			t.Fatal("Expect ErrNotCertified, got", err)
		}
	})
}

func TestDiscloseAfterHasherChange(t *testing.T) {
	leveldbkv.WithDB(func(db kv.DB) {
		n, _ := newTestNotary(t, db)
		if _, err := n.Certify("book-1", []byte(bookDoc)); err != nil {
			t.Fatal(err)
		}
		n.hasher = keccak.New()
		_, _, err := n.Disclose("book-1", []byte(bookDoc), nil)
		if err != ErrDocumentChanged {
			t.Fatal("Expect ErrDocumentChanged, got", err)
		}
	})
}

func TestDiscloseExcludesReaders(t *testing.T) {
	leveldbkv.WithDB(func(db kv.DB) {
		n, _ := newTestNotary(t, db)
		if _, err := n.Certify("book-1", []byte(bookDoc)); err != nil {
			t.Fatal(err)
		}

		n.RLock()
		done := make(chan error, 1)
		go func() {
			_, _, err := n.Disclose("book-1", []byte(bookDoc),
				[]imprint.Path{imprint.MustPath("name")})
			done <- err
		}()
		select {
		case <-done:
			n.RUnlock()
			t.Fatal("Disclose stored evidence under a read lock")
		case <-time.After(50 * time.Millisecond):
		}
		n.RUnlock()
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	})
}

func TestConcurrentCertifyDisclose(t *testing.T) {
	other := `{"name":"baz","book":{"title":"qux"}}`
	leveldbkv.WithDB(func(db kv.DB) {
		n, _ := newTestNotary(t, db)
		if _, err := n.Certify("book-1", []byte(bookDoc)); err != nil {
			t.Fatal(err)
		}
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func(i int) {
				defer wg.Done()
				doc := bookDoc
				if i%2 == 1 {
					doc = other
				}
				if _, err := n.Certify("book-1", []byte(doc)); err != nil {
					t.Error(err)
				}
			}(i)
			go func() {
				defer wg.Done()
				ev, id, err := n.Disclose("book-1", []byte(bookDoc),
					[]imprint.Path{imprint.MustPath("name")})
				if err == ErrDocumentChanged {
					return
				}
				if err != nil {
					t.Error(err)
					return
				}
				if _, err := n.Evidence(id); err != nil || len(ev.Values) != 1 {
					t.Error("Evidence was not stored", err)
				}
			}()
		}
		wg.Wait()
	})
}

func TestRoots(t *testing.T) {
	leveldbkv.WithDB(func(db kv.DB) {
		n, _ := newTestNotary(t, db)
		var wg sync.WaitGroup
		for _, id := range []string{"c", "a", "b"} {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				if _, err := n.Certify(id, []byte(bookDoc)); err != nil {
					t.Error(err)
				}
			}(id)
		}
		wg.Wait()
		roots, err := n.Roots()
		if err != nil {
			t.Fatal(err)
		}
		if len(roots) != 3 || roots[0].AssetID != "a" || roots[2].AssetID != "c" {
			t.Fatal("Unexpected roots", roots)
		}
	})
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notary.toml")
	sk, _ := sign.GenerateKey(nil)
	if err := utils.WriteFile(filepath.Join(dir, "sign.priv"), sk, 0600); err != nil {
		t.Fatal(err)
	}
	conf := NewConfig(file, "toml", nil,
		NewPolicies("", "sign.priv", nil),
		&application.StorageConfig{Backend: application.LevelDBBackend, Path: "imprint.db"})
	if err := conf.Save(); err != nil {
		t.Fatal(err)
	}

	loaded := new(Config)
	if err := loaded.Load(file, "toml"); err != nil {
		t.Fatal(err)
	}
	if loaded.Policies.Hasher != sha256.SHA256Hasher {
		t.Fatal("Expect the default hasher, got", loaded.Policies.Hasher)
	}
	n, err := New(loaded)
	if err != nil {
		t.Fatal(err)
	}
	defer n.Close()
	sr, err := n.Certify("a", []byte(bookDoc))
	if err != nil {
		t.Fatal(err)
	}
	pk, _ := sk.Public()
	if !sr.Verify(pk) {
		t.Fatal("Root not signed with the configured key")
	}
}

func TestConfigUnknownHasher(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notary.yaml")
	sk, _ := sign.GenerateKey(nil)
	if err := utils.WriteFile(filepath.Join(dir, "sign.priv"), sk, 0600); err != nil {
		t.Fatal(err)
	}
	conf := NewConfig(file, "yaml", nil,
		NewPolicies("md5", "sign.priv", nil),
		&application.StorageConfig{Path: "imprint.db"})
	if err := conf.Save(); err != nil {
		t.Fatal(err)
	}
	if err := new(Config).Load(file, "yaml"); err == nil {
		t.Fatal("Expect an error for an unknown hasher")
	}
}
