// Executable imprint notary and verifier. Run "imprint help" for
// usage instructions.
package main

import (
	"github.com/0xcert/framework-sub004/cli"
	"github.com/0xcert/framework-sub004/cli/imprint/internal/cmd"
)

func main() {
	cli.ExecuteRoot(cmd.RootCmd)
}
