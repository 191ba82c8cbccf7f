// Package notary implements the certifying side of imprint: it builds
// the imprint tree of an asset's data, signs and stores its root, and
// later discloses selected values of the same data as evidence.
package notary

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/0xcert/framework-sub004/application"
	"github.com/0xcert/framework-sub004/crypto/hasher"
	"github.com/0xcert/framework-sub004/crypto/sign"
	"github.com/0xcert/framework-sub004/imprint"
	"github.com/0xcert/framework-sub004/storage/kv"
	"github.com/0xcert/framework-sub004/storage/kv/imprintkv"
	"github.com/0xcert/framework-sub004/traverse"
	"github.com/google/uuid"
)

var (
	// ErrNotCertified indicates that no root is stored for an asset.
	ErrNotCertified = errors.New("[notary] Asset is not certified")
	// ErrDocumentChanged indicates that the document passed to Disclose
	// is not the one that was certified.
	ErrDocumentChanged = errors.New("[notary] Document does not match the certified root")
	// ErrEmptyAssetID indicates a missing asset id.
	ErrEmptyAssetID = errors.New("[notary] Empty asset id")
)

// A Notary certifies asset documents and discloses parts of them.
// It is safe for concurrent use.
type Notary struct {
	hasher  hasher.Hasher
	signKey sign.PrivateKey
	db      kv.DB
	logger  *application.Logger
	now     func() time.Time

	sync.RWMutex
}

// New opens the store described by conf and returns a Notary using it.
func New(conf *Config) (*Notary, error) {
	logger, err := conf.NewLogger()
	if err != nil {
		return nil, err
	}
	db, err := conf.Storage.Open(conf.Path)
	if err != nil {
		return nil, err
	}
	return NewNotary(conf.Policies.hasher, conf.Policies.signKey, db, logger), nil
}

// NewNotary returns a Notary computing imprints with h, signing roots
// with signKey and keeping its records in db. A nil logger discards
// all log output.
func NewNotary(h hasher.Hasher, signKey sign.PrivateKey, db kv.DB,
	logger *application.Logger) *Notary {
	if logger == nil {
		logger = application.NewNopLogger()
	}
	return &Notary{
		hasher:  h,
		signKey: signKey,
		db:      db,
		logger:  logger,
		now:     time.Now,
	}
}

func (n *Notary) build(doc []byte) (*imprint.Tree, error) {
	entries, err := traverse.JSON(doc)
	if err != nil {
		return nil, err
	}
	return imprint.Build(n.hasher, entries)
}

// Certify builds the imprint tree of the JSON document doc, signs its
// root for assetID and stores the signed root, replacing any previous
// one.
func (n *Notary) Certify(assetID string, doc []byte) (*imprint.SignedRoot, error) {
	if assetID == "" {
		return nil, ErrEmptyAssetID
	}
	logger := n.logger.With("asset", assetID)
	tree, err := n.build(doc)
	if err != nil {
		logger.Warn("Cannot build imprint tree", "error", err)
		return nil, err
	}
	logger.Debug("Built imprint tree", "hasher", n.hasher.ID(), "nodes", tree.Len())

	n.Lock()
	defer n.Unlock()
	sr := imprint.NewSignedRoot(n.signKey, assetID, tree, n.now())
	if err := imprintkv.StoreRoot(n.db, sr); err != nil {
		logger.Error(err.Error())
		return nil, err
	}
	logger.Info("Certified asset",
		"root", sr.Root.String(),
		"nodes", tree.Len())
	return sr, nil
}

// Disclose returns the evidence revealing the values at paths of the
// certified document doc, and the id it was stored under.
// doc must be the document assetID was last certified with.
func (n *Notary) Disclose(assetID string, doc []byte,
	paths []imprint.Path) (*imprint.Evidence, uuid.UUID, error) {
	logger := n.logger.With("asset", assetID)
	tree, err := n.build(doc)
	if err != nil {
		return nil, uuid.Nil, err
	}

	// The root check and the evidence write must not interleave with
	// a Certify of the same asset.
	n.Lock()
	defer n.Unlock()
	sr, err := n.Root(assetID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if !bytes.Equal(sr.Root, tree.Root()) || sr.Hasher != n.hasher.ID() {
		logger.Warn(ErrDocumentChanged.Error())
		return nil, uuid.Nil, ErrDocumentChanged
	}

	ev, err := imprint.Disclose(tree, paths...)
	if err != nil {
		return nil, uuid.Nil, err
	}
	for _, v := range ev.Values {
		logger.Debug("Disclosing value", "path", v.Path.String())
	}
	id, err := imprintkv.StoreEvidence(n.db, ev)
	if err != nil {
		logger.Error(err.Error())
		return nil, uuid.Nil, err
	}
	logger.Info("Disclosed values",
		"evidence", id.String(),
		"values", len(ev.Values))
	return ev, id, nil
}

// Root returns the stored signed root of assetID.
func (n *Notary) Root(assetID string) (*imprint.SignedRoot, error) {
	sr, err := imprintkv.LoadRoot(n.db, assetID)
	if err == n.db.ErrNotFound() {
		return nil, fmt.Errorf("%w: %s", ErrNotCertified, assetID)
	}
	return sr, err
}

// Roots returns all stored signed roots ordered by asset id.
func (n *Notary) Roots() ([]*imprint.SignedRoot, error) {
	return imprintkv.ListRoots(n.db)
}

// Evidence returns the evidence stored under id.
func (n *Notary) Evidence(id uuid.UUID) (*imprint.Evidence, error) {
	return imprintkv.LoadEvidence(n.db, id)
}

// Close closes the underlying store.
func (n *Notary) Close() error {
	n.logger.Sync()
	return n.db.Close()
}
