package leveldbkv

import (
	"os"

	"github.com/0xcert/framework-sub004/storage/kv"
)

// WithDB runs f against a fresh leveldb database in a temporary
// directory, which is removed afterwards. It panics if the database
// cannot be created.
func WithDB(f func(kv.DB)) {
	dir, err := os.MkdirTemp("", "imprintkv")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	db, err := OpenDB(dir)
	if err != nil {
		panic(err)
	}
	defer db.Close()
	f(db)
}
