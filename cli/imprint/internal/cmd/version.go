package cmd

import (
	"github.com/0xcert/framework-sub004/cli"
)

var versionCmd = cli.NewVersionCommand("imprint")

func init() {
	RootCmd.AddCommand(versionCmd)
}
