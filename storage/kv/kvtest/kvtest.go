// Package kvtest checks that a kv.DB backend honours the kv contract.
package kvtest

import (
	"bytes"
	"testing"

	"github.com/0xcert/framework-sub004/storage/kv"
)

// Run exercises db, which must be empty.
func Run(t *testing.T, db kv.DB) {
	t.Helper()

	if _, err := db.Get([]byte("missing")); err != db.ErrNotFound() {
		t.Fatal("Expect ErrNotFound, got", err)
	}

	if err := db.Put([]byte("k1"), []byte("v1")); err != nil {
		t.Fatal(err)
	}
	got, err := db.Get([]byte("k1"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte("v1")) {
		t.Fatalf("Get: got %q, want v1", got)
	}
	if err := db.Put([]byte("k1"), []byte("v1'")); err != nil {
		t.Fatal(err)
	}
	if got, _ := db.Get([]byte("k1")); !bytes.Equal(got, []byte("v1'")) {
		t.Fatal("Put should replace the old value")
	}
	if err := db.Delete([]byte("k1")); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Get([]byte("k1")); err != db.ErrNotFound() {
		t.Fatal("Expect ErrNotFound after Delete, got", err)
	}

	wb := db.NewBatch()
	wb.Put([]byte("a1"), []byte("x"))
	wb.Put([]byte("a2"), []byte("y"))
	wb.Put([]byte("b1"), []byte("z"))
	wb.Put([]byte("a3"), []byte("w"))
	wb.Delete([]byte("a3"))
	if err := db.Write(wb); err != nil {
		t.Fatal(err)
	}
	for k, v := range map[string]string{"a1": "x", "a2": "y", "b1": "z"} {
		got, err := db.Get([]byte(k))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != v {
			t.Fatalf("Batch write: %s = %q, want %q", k, got, v)
		}
	}
	if _, err := db.Get([]byte("a3")); err != db.ErrNotFound() {
		t.Fatal("Batch delete was not applied")
	}

	wb.Reset()
	wb.Put([]byte("c1"), []byte("never"))
	wb.Reset()
	if err := db.Write(wb); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Get([]byte("c1")); err != db.ErrNotFound() {
		t.Fatal("Reset batch should be empty")
	}

	it := db.NewIterator(kv.BytesPrefix([]byte("a")))
	var keys []string
	for ok := it.First(); ok; ok = it.Next() {
		keys = append(keys, string(it.Key())+"="+string(it.Value()))
	}
	it.Release()
	if err := it.Error(); err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "a1=x" || keys[1] != "a2=y" {
		t.Fatal("Unexpected iteration", keys)
	}

	it = db.NewIterator(kv.BytesPrefix([]byte("a")))
	if !it.Last() || string(it.Key()) != "a2" {
		t.Fatal("Last should move to the greatest key in range")
	}
	it.Release()
}
