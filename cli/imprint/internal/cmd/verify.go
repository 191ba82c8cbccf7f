package cmd

import (
	"errors"
	"fmt"

	"github.com/0xcert/framework-sub004/application"
	"github.com/0xcert/framework-sub004/application/cert"
	"github.com/0xcert/framework-sub004/cli"
	"github.com/0xcert/framework-sub004/imprint"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var errInvalid = errors.New("evidence is invalid")

var verifyCmd = cli.NewActionCommand("verify",
	"Verify disclosed values against a signed root.",
	`Verify checks an evidence bundle against the signed root published for
the asset. The evidence is read from --evidence (a file, or - for standard
input) or loaded from the store by its --id.

Prints "valid" or "invalid"; invalid evidence also makes the command fail.`,
	verifyRunFunc)

func init() {
	RootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringP("config", "c", "cert.toml", "Path to the verifier configuration file")
	verifyCmd.Flags().StringP("asset", "a", "", "Id of the certified asset")
	verifyCmd.Flags().StringP("evidence", "e", "", "Evidence file")
	verifyCmd.Flags().String("id", "", "Id of stored evidence")
}

func verifyRunFunc(cmd *cobra.Command, args []string) error {
	assetID, err := requireFlag(cmd, "asset")
	if err != nil {
		return err
	}
	evFile := cmd.Flag("evidence").Value.String()
	evID := cmd.Flag("id").Value.String()
	if (evFile == "") == (evID == "") {
		return fmt.Errorf("exactly one of --evidence and --id is required")
	}

	conf, err := loadCertConfig(cmd)
	if err != nil {
		return err
	}
	c, err := cert.New(conf)
	if err != nil {
		return err
	}
	defer c.Close()

	var res imprint.Result
	if evID != "" {
		id, err := uuid.Parse(evID)
		if err != nil {
			return err
		}
		res, err = c.VerifyStored(assetID, id)
		if err != nil {
			return err
		}
	} else {
		var ev *imprint.Evidence
		if evFile == "-" {
			ev, err = imprint.DecodeEvidence(cmd.InOrStdin())
		} else {
			ev, err = application.UnmarshalEvidenceFromFile(evFile)
		}
		if err != nil {
			return err
		}
		if res, err = c.Verify(assetID, ev); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), res)
	if res != imprint.Valid {
		return errInvalid
	}
	return nil
}
