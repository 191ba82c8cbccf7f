package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/0xcert/framework-sub004/application"
	"github.com/0xcert/framework-sub004/application/cert"
	"github.com/0xcert/framework-sub004/application/notary"
	"github.com/0xcert/framework-sub004/cli"
	"github.com/0xcert/framework-sub004/crypto/hasher"
	"github.com/0xcert/framework-sub004/crypto/sign"
	"github.com/0xcert/framework-sub004/storage/kv/rediskv"
	"github.com/0xcert/framework-sub004/utils"
	"github.com/spf13/cobra"
)

const (
	signKeyFile    = "sign.priv"
	signPubKeyFile = "sign.pub"
	dbDir          = "imprint.db"
)

// initCmd represents the init command
var initCmd = cli.NewInitCommand("the imprint notary and verifier", initRunFunc)

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("dir", "d", ".", "Location of directory for storing generated files")
	initCmd.Flags().String("hasher", "sha256", "Hash function of the imprint trees")
	initCmd.Flags().String("encoding", "toml", "Encoding of the config files (toml or yaml)")
	initCmd.Flags().String("redis", "", "Address of a redis server to store roots and evidence in, instead of leveldb")
}

func initRunFunc(cmd *cobra.Command, args []string) error {
	dir := cmd.Flag("dir").Value.String()
	encoding := cmd.Flag("encoding").Value.String()
	hasherID := cmd.Flag("hasher").Value.String()
	if _, err := hasher.Get(hasherID); err != nil {
		return err
	}

	storage := &application.StorageConfig{
		Backend: application.LevelDBBackend,
		Path:    dbDir,
	}
	if addr := cmd.Flag("redis").Value.String(); addr != "" {
		storage = &application.StorageConfig{
			Backend: application.RedisBackend,
			Redis:   &rediskv.Config{Address: addr},
		}
	}
	logger := &application.LoggerConfig{
		EnableStacktrace: true,
		Environment:      "development",
		Path:             "imprint.log",
	}

	notaryConf := notary.NewConfig(filepath.Join(dir, "notary."+encoding), encoding,
		logger, notary.NewPolicies(hasherID, signKeyFile, nil), storage)
	if err := notaryConf.Save(); err != nil {
		return err
	}
	certConf := cert.NewConfig(filepath.Join(dir, "cert."+encoding), encoding,
		logger, signPubKeyFile, storage)
	if err := certConf.Save(); err != nil {
		return err
	}
	if err := mkSigningKey(dir); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Created", notaryConf.GetPath(), "and", certConf.GetPath())
	return nil
}

func mkSigningKey(dir string) error {
	sk, err := sign.GenerateKey(nil)
	if err != nil {
		return err
	}
	pk, _ := sk.Public()
	if err := utils.WriteFile(filepath.Join(dir, signKeyFile), sk, 0600); err != nil {
		return err
	}
	return utils.WriteFile(filepath.Join(dir, signPubKeyFile), pk, 0644)
}
