// Package cert implements the verifying side of imprint: it checks
// evidence bundles against the signed roots a notary published.
package cert

import (
	"errors"
	"fmt"

	"github.com/0xcert/framework-sub004/application"
	"github.com/0xcert/framework-sub004/crypto/hasher"
	"github.com/0xcert/framework-sub004/crypto/sign"
	"github.com/0xcert/framework-sub004/imprint"
	"github.com/0xcert/framework-sub004/storage/kv"
	"github.com/0xcert/framework-sub004/storage/kv/imprintkv"
	"github.com/google/uuid"
)

var (
	// ErrUnknownAsset indicates that no signed root is published for
	// an asset.
	ErrUnknownAsset = errors.New("[cert] Unknown asset")
	// ErrBadSignature indicates that a published root does not carry a
	// valid signature of the notary.
	ErrBadSignature = errors.New("[cert] Bad signed root signature")
)

// A Cert verifies evidence against published signed roots.
type Cert struct {
	pk     sign.PublicKey
	db     kv.DB
	logger *application.Logger
}

// New opens the store described by conf and returns a Cert using it.
func New(conf *Config) (*Cert, error) {
	logger, err := conf.NewLogger()
	if err != nil {
		return nil, err
	}
	db, err := conf.Storage.Open(conf.Path)
	if err != nil {
		return nil, err
	}
	return NewCert(conf.SigningPubKey, db, logger), nil
}

// NewCert returns a Cert trusting roots signed by pk and reading them
// from db. A nil logger discards all log output.
func NewCert(pk sign.PublicKey, db kv.DB, logger *application.Logger) *Cert {
	if logger == nil {
		logger = application.NewNopLogger()
	}
	return &Cert{pk: pk, db: db, logger: logger}
}

// Root returns the published root of assetID after checking its
// signature.
func (c *Cert) Root(assetID string) (*imprint.SignedRoot, error) {
	sr, err := imprintkv.LoadRoot(c.db, assetID)
	if err == c.db.ErrNotFound() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, assetID)
	}
	if err != nil {
		return nil, err
	}
	if sr.AssetID != assetID || !sr.Verify(c.pk) {
		c.logger.Warn(ErrBadSignature.Error(), "asset", assetID)
		return nil, ErrBadSignature
	}
	return sr, nil
}

// Verify checks ev against the published root of assetID, using the
// hash function the root was computed with.
func (c *Cert) Verify(assetID string, ev *imprint.Evidence) (imprint.Result, error) {
	sr, err := c.Root(assetID)
	if err != nil {
		return imprint.Invalid, err
	}
	return c.VerifyRoot(sr, ev)
}

// VerifyRoot checks ev against sr, whose signature must have been
// checked by the caller.
func (c *Cert) VerifyRoot(sr *imprint.SignedRoot, ev *imprint.Evidence) (imprint.Result, error) {
	h, err := hasher.Get(sr.Hasher)
	if err != nil {
		return imprint.Invalid, err
	}
	logger := c.logger.With("asset", sr.AssetID)
	res, err := imprint.Verify(h, ev, sr.Root)
	if err != nil {
		logger.Warn("Malformed evidence", "error", err)
		return imprint.Invalid, err
	}
	if res == imprint.Invalid {
		if got, err := imprint.Recompute(h, ev); err != nil {
			logger.Debug("Evidence does not reconstruct", "error", err)
		} else {
			logger.Debug("Evidence folds to another root",
				"want", sr.Root.String(),
				"got", got.String())
		}
		for _, v := range ev.Values {
			logger.Debug("Rejected value", "path", v.Path.String())
		}
	}
	logger.Info("Verified evidence",
		"result", res.String(),
		"values", len(ev.Values))
	return res, nil
}

// VerifyStored checks the evidence stored under id against the
// published root of assetID.
func (c *Cert) VerifyStored(assetID string, id uuid.UUID) (imprint.Result, error) {
	ev, err := imprintkv.LoadEvidence(c.db, id)
	if err != nil {
		return imprint.Invalid, err
	}
	return c.Verify(assetID, ev)
}

// Close closes the underlying store.
func (c *Cert) Close() error {
	c.logger.Sync()
	return c.db.Close()
}
