// Package cmd implements the CLI commands for the imprint notary and
// verifier.
package cmd

import (
	"github.com/0xcert/framework-sub004/cli"
)

// RootCmd represents the base "imprint" command when called without any
// subcommands (certify, disclose, verify, ...).
var RootCmd = cli.NewRootCommand("imprint",
	"Certify structured data and disclose parts of it selectively",
	`imprint computes a Merkle imprint of a JSON document whose tree mirrors
the document's own structure. The notary signs and publishes the root
imprint (certify), later reveals chosen values together with the evidence
linking them to that root (disclose), and anyone holding the notary's
public key can check such evidence (verify).`)
