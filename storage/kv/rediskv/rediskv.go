// Package rediskv implements the kv interface on top of a redis server.
//
// Every key is stored under a configurable namespace prefix, so several
// stores may share one redis database. Batches are applied in a MULTI/EXEC
// transaction. Iteration takes a snapshot of the matching keys with SCAN and
// fetches values lazily; it is meant for the small administrative listings
// of package imprintkv, not for bulk export.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/0xcert/framework-sub004/storage/kv"
	"github.com/redis/go-redis/v9"
)

// Config describes the connection to a redis server.
type Config struct {
	Address   string        `toml:"address" yaml:"address"`
	Password  string        `toml:"password" yaml:"password"`
	DB        int           `toml:"db" yaml:"db"`
	Namespace string        `toml:"namespace" yaml:"namespace"`
	Timeout   time.Duration `toml:"timeout" yaml:"timeout"`
}

const (
	defaultNamespace = "imprint:"
	defaultTimeout   = 5 * time.Second
)

type rediskv struct {
	client  redis.UniversalClient
	prefix  string
	timeout time.Duration
}

// OpenDB connects to the redis server described by cfg and checks that
// it answers.
func OpenDB(cfg Config) (kv.DB, error) {
	if cfg.Address == "" {
		return nil, errors.New("[rediskv] Missing redis address")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	db := Wrap(client, cfg.Namespace, cfg.Timeout).(*rediskv)
	ctx, cancel := db.context()
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[rediskv] Cannot reach %s: %w", cfg.Address, err)
	}
	return db, nil
}

// Wrap uses client as a kv.DB. An empty namespace and a zero timeout
// select the defaults.
func Wrap(client redis.UniversalClient, namespace string, timeout time.Duration) kv.DB {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &rediskv{client: client, prefix: namespace, timeout: timeout}
}

func (db *rediskv) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), db.timeout)
}

func (db *rediskv) key(k []byte) string {
	return db.prefix + string(k)
}

func (db *rediskv) Get(key []byte) ([]byte, error) {
	ctx, cancel := db.context()
	defer cancel()
	return db.client.Get(ctx, db.key(key)).Bytes()
}

func (db *rediskv) Put(key, value []byte) error {
	ctx, cancel := db.context()
	defer cancel()
	return db.client.Set(ctx, db.key(key), value, 0).Err()
}

func (db *rediskv) Delete(key []byte) error {
	ctx, cancel := db.context()
	defer cancel()
	return db.client.Del(ctx, db.key(key)).Err()
}

func (db *rediskv) NewBatch() kv.Batch {
	return new(batch)
}

func (db *rediskv) Write(b kv.Batch) error {
	wb, ok := b.(*batch)
	if !ok {
		return fmt.Errorf("%w: expected *rediskv.batch, got %T", kv.ErrBatchType, b)
	}
	if len(wb.ops) == 0 {
		return nil
	}
	ctx, cancel := db.context()
	defer cancel()
	_, err := db.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, op := range wb.ops {
			if op.del {
				pipe.Del(ctx, db.key(op.key))
			} else {
				pipe.Set(ctx, db.key(op.key), op.value, 0)
			}
		}
		return nil
	})
	return err
}

func (db *rediskv) NewIterator(rg *kv.Range) kv.Iterator {
	it := &iterator{db: db}
	ctx, cancel := db.context()
	defer cancel()
	iter := db.client.Scan(ctx, 0, escapeGlob(db.prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		k := []byte(iter.Val()[len(db.prefix):])
		if rg == nil || rg.Contains(k) {
			it.keys = append(it.keys, k)
		}
	}
	it.err = iter.Err()
	sort.Slice(it.keys, func(i, j int) bool {
		return string(it.keys[i]) < string(it.keys[j])
	})
	it.pos = -1
	return it
}

func (db *rediskv) Close() error {
	return db.client.Close()
}

func (db *rediskv) ErrNotFound() error {
	return redis.Nil
}

type op struct {
	key   []byte
	value []byte
	del   bool
}

type batch struct {
	ops []op
}

func (b *batch) Reset() {
	b.ops = b.ops[:0]
}

func (b *batch) Put(key, value []byte) {
	b.ops = append(b.ops, op{
		key:   append([]byte(nil), key...),
		value: append([]byte(nil), value...),
	})
}

func (b *batch) Delete(key []byte) {
	b.ops = append(b.ops, op{key: append([]byte(nil), key...), del: true})
}

// iterator walks a sorted snapshot of keys. Values are read on demand;
// keys deleted since the snapshot are skipped.
type iterator struct {
	db    *rediskv
	keys  [][]byte
	pos   int
	value []byte
	err   error
}

func (it *iterator) Key() []byte {
	if it.pos < 0 || it.pos >= len(it.keys) {
		return nil
	}
	return it.keys[it.pos]
}

func (it *iterator) Value() []byte {
	return it.value
}

func (it *iterator) First() bool {
	return it.seek(0, 1)
}

func (it *iterator) Last() bool {
	return it.seek(len(it.keys)-1, -1)
}

func (it *iterator) Next() bool {
	return it.seek(it.pos+1, 1)
}

// seek moves to the first live key at or after pos in direction dir.
func (it *iterator) seek(pos, dir int) bool {
	if it.err != nil {
		return false
	}
	for it.pos = pos; it.pos >= 0 && it.pos < len(it.keys); it.pos += dir {
		v, err := it.db.Get(it.keys[it.pos])
		if err == redis.Nil {
			continue
		}
		if err != nil {
			it.err = err
			return false
		}
		it.value = v
		return true
	}
	it.value = nil
	return false
}

func (it *iterator) Release() {
	it.keys = nil
	it.value = nil
}

func (it *iterator) Error() error {
	return it.err
}

// escapeGlob quotes the characters redis treats specially in MATCH
// patterns.
func escapeGlob(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			b = append(b, '\\')
		}
		b = append(b, s[i])
	}
	return string(b)
}
