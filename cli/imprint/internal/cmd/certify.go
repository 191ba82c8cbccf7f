package cmd

import (
	"fmt"

	"github.com/0xcert/framework-sub004/application"
	"github.com/0xcert/framework-sub004/application/notary"
	"github.com/0xcert/framework-sub004/cli"
	"github.com/spf13/cobra"
)

var certifyCmd = cli.NewActionCommand("certify",
	"Certify a JSON document.",
	`Certify computes the imprint tree of a JSON document, signs its root
imprint for the given asset and stores the signed root. Certifying an
asset again replaces its previous root.

The document's root must be an object. Use --file - to read it from
standard input.`,
	certifyRunFunc)

func init() {
	RootCmd.AddCommand(certifyCmd)
	certifyCmd.Flags().StringP("config", "c", "notary.toml", "Path to the notary configuration file")
	certifyCmd.Flags().StringP("asset", "a", "", "Id of the certified asset")
	certifyCmd.Flags().StringP("file", "f", "-", "JSON document to certify")
	certifyCmd.Flags().StringP("out", "o", "", "Also write the signed root to this file")
}

func certifyRunFunc(cmd *cobra.Command, args []string) error {
	assetID, err := requireFlag(cmd, "asset")
	if err != nil {
		return err
	}
	doc, err := readInput(cmd, cmd.Flag("file").Value.String())
	if err != nil {
		return err
	}
	conf, err := loadNotaryConfig(cmd)
	if err != nil {
		return err
	}
	n, err := notary.New(conf)
	if err != nil {
		return err
	}
	defer n.Close()

	sr, err := n.Certify(assetID, doc)
	if err != nil {
		return err
	}
	if out := cmd.Flag("out").Value.String(); out != "" {
		if err := application.MarshalRootToFile(sr, out); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), sr.Root.String())
	return nil
}
