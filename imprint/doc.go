/*
Package imprint implements the structural Merkle tree used to certify
nested asset data and to disclose parts of it selectively.

Imprint Tree

An imprint tree mirrors the shape of the certified data exactly: every
object or array becomes a container node, every scalar becomes a leaf.
A leaf's imprint is H(canon(value)), a container's imprint is the hash of
the concatenation of its children's imprints in declaration order, and the
imprint of an empty container is H(""). The root imprint is the single
commitment that gets published.

Trees are built from an ordered traversal (see package traverse) with Build.
The hash function is a hasher.Hasher value passed in explicitly; the package
keeps no global hashing state, so independent trees may be built, disclosed
and verified concurrently.

Evidence

Disclose produces an Evidence bundle for a set of paths: the literal values
of the disclosed leaves, one EvidenceProof for every node on a disclosure
path and one EvidenceNode for every sibling subtree that stays hidden.
Verify replays the same walk over the bundle, folds the imprints back up to
the root and compares the result with a root obtained from a trusted source.
A mismatch is reported as the Invalid result, a structurally broken bundle
as ErrMalformedEvidence.
*/
package imprint
