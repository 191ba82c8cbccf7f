package cmd

import (
	"fmt"

	"github.com/0xcert/framework-sub004/application"
	"github.com/0xcert/framework-sub004/application/notary"
	"github.com/0xcert/framework-sub004/cli"
	"github.com/0xcert/framework-sub004/imprint"
	"github.com/spf13/cobra"
)

var discloseCmd = cli.NewActionCommand("disclose",
	"Disclose values of a certified JSON document.",
	`Disclose reveals the values at the given paths of a certified document
together with the evidence linking them to its signed root. Disclosing an
object or an array reveals every value below it.

Paths are written as book.title, books[1].title or as JSON arrays such
as ["books",1,"title"]. The document must be the one last certified for
the asset. The evidence is stored and printed, or written to --out.`,
	discloseRunFunc)

func init() {
	RootCmd.AddCommand(discloseCmd)
	discloseCmd.Flags().StringP("config", "c", "notary.toml", "Path to the notary configuration file")
	discloseCmd.Flags().StringP("asset", "a", "", "Id of the certified asset")
	discloseCmd.Flags().StringP("file", "f", "-", "Certified JSON document")
	discloseCmd.Flags().StringArrayP("path", "p", nil, "Path to disclose (repeatable)")
	discloseCmd.Flags().StringP("out", "o", "", "Write the evidence to this file instead of standard output")
}

func discloseRunFunc(cmd *cobra.Command, args []string) error {
	assetID, err := requireFlag(cmd, "asset")
	if err != nil {
		return err
	}
	rawPaths, err := cmd.Flags().GetStringArray("path")
	if err != nil {
		return err
	}
	if len(rawPaths) == 0 {
		return fmt.Errorf("at least one --path is required")
	}
	paths := make([]imprint.Path, 0, len(rawPaths))
	for _, s := range rawPaths {
		p, err := imprint.ParsePath(s)
		if err != nil {
			return err
		}
		paths = append(paths, p)
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

	ev, id, err := n.Disclose(assetID, doc, paths)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "evidence id:", id)
	if out := cmd.Flag("out").Value.String(); out != "" {
		return application.MarshalEvidenceToFile(ev, out)
	}
	buf, err := ev.Marshal()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(buf))
	return nil
}
