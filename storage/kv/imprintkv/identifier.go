package imprintkv

const (
	// RootIdentifier is the domain separation for signed roots.
	RootIdentifier = 'R'
	// EvidenceIdentifier is the domain separation for evidence bundles.
	EvidenceIdentifier = 'E'
)
