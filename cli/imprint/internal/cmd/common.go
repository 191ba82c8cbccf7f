package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/0xcert/framework-sub004/application"
	"github.com/0xcert/framework-sub004/application/cert"
	"github.com/0xcert/framework-sub004/application/notary"
	"github.com/spf13/cobra"
)

const configMissingUsage = `
Couldn't load the config-file.

To create a valid config, first, run
  imprint init
This will create a notary configuration (notary.toml), a verifier
configuration (cert.toml) and the signing key pair they reference.

If you prefer the config-file to be named or stored somewhere different you can
specify where to look for the config with the --config flag. For example:
  imprint certify --config /etc/imprint/notary.toml ...
`

func loadNotaryConfig(cmd *cobra.Command) (*notary.Config, error) {
	file := cmd.Flag("config").Value.String()
	conf := &notary.Config{}
	if err := conf.Load(file, application.EncodingOf(file)); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), configMissingUsage)
		return nil, err
	}
	return conf, nil
}

func loadCertConfig(cmd *cobra.Command) (*cert.Config, error) {
	file := cmd.Flag("config").Value.String()
	conf := &cert.Config{}
	if err := conf.Load(file, application.EncodingOf(file)); err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), configMissingUsage)
		return nil, err
	}
	return conf, nil
}

// readInput reads the named file, or standard input for "-".
func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

func requireFlag(cmd *cobra.Command, name string) (string, error) {
	v := cmd.Flag(name).Value.String()
	if v == "" {
		return "", fmt.Errorf("--%s is required", name)
	}
	return v, nil
}
