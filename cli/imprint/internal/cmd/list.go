package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/0xcert/framework-sub004/application/notary"
	"github.com/0xcert/framework-sub004/cli"
	"github.com/spf13/cobra"
)

var listCmd = cli.NewActionCommand("list",
	"List the certified assets.",
	`List prints the asset id, hash function, issuance time and root
imprint of every signed root in the notary's store.`,
	listRunFunc)

func init() {
	RootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("config", "c", "notary.toml", "Path to the notary configuration file")
}

func listRunFunc(cmd *cobra.Command, args []string) error {
	conf, err := loadNotaryConfig(cmd)
	if err != nil {
		return err
	}
	n, err := notary.New(conf)
	if err != nil {
		return err
	}
	defer n.Close()

	roots, err := n.Roots()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, sr := range roots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sr.AssetID, sr.Hasher,
			sr.IssuedAt().UTC().Format(time.RFC3339), sr.Root)
	}
	return w.Flush()
}
