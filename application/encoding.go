// Defines functions to read and write the JSON documents exchanged
// between the notary, asset holders and verifiers.

package application

import (
	"encoding/json"
	"os"

	"github.com/0xcert/framework-sub004/imprint"
	"github.com/0xcert/framework-sub004/utils"
)

// MarshalRootToFile serializes the given signed root to the given path.
func MarshalRootToFile(sr *imprint.SignedRoot, path string) error {
	buf, err := json.MarshalIndent(sr, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFile(path, buf, 0644)
}

// UnmarshalRootFromFile reads a signed root written by MarshalRootToFile.
func UnmarshalRootFromFile(path string) (*imprint.SignedRoot, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sr := new(imprint.SignedRoot)
	if err := json.Unmarshal(buf, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

// MarshalEvidenceToFile serializes the given evidence to the given path.
func MarshalEvidenceToFile(ev *imprint.Evidence, path string) error {
	buf, err := ev.Marshal()
	if err != nil {
		return err
	}
	return utils.WriteFile(path, buf, 0644)
}

// UnmarshalEvidenceFromFile reads an evidence bundle from the given path.
func UnmarshalEvidenceFromFile(path string) (*imprint.Evidence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return imprint.DecodeEvidence(f)
}
