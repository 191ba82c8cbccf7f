package imprint

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue indicates that a scalar cannot be canonicalized,
	// e.g. a non-finite number.
	ErrInvalidValue = errors.New("[imprint] Invalid value")

	// ErrMalformedTraversal indicates that the traversal passed to Build
	// violates the pre-order contract.
	ErrMalformedTraversal = errors.New("[imprint] Malformed traversal")

	// ErrPathNotFound indicates that a requested path does not exist
	// in the tree.
	ErrPathNotFound = errors.New("[imprint] Path not found")

	// ErrMalformedEvidence indicates that an evidence bundle is
	// structurally inconsistent.
	ErrMalformedEvidence = errors.New("[imprint] Malformed evidence")

	// ErrImprintMismatch is returned by Recompute when a recomputed
	// imprint differs from the one claimed by the evidence.
	// Verify reports it as the Invalid result.
	ErrImprintMismatch = errors.New("[imprint] Imprint mismatch")

	// ErrNoHasher indicates that an operation was called without a hasher.
	ErrNoHasher = errors.New("[imprint] No hasher")
)

func malformedTraversal(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrMalformedTraversal}, args...)...)
}

func malformedEvidence(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrMalformedEvidence}, args...)...)
}
