package cert

import (
	"fmt"

	"github.com/0xcert/framework-sub004/application"
	"github.com/0xcert/framework-sub004/crypto/sign"
)

// Config contains the verifier's configuration: the path to the
// notary's signing public-key file and the actual public-key parsed
// from that file, and the store holding the published signed roots.
type Config struct {
	*application.CommonConfig `yaml:",inline"`

	SignPubkeyPath string         `toml:"sign_pubkey_path" yaml:"sign_pubkey_path"`
	SigningPubKey  sign.PublicKey `toml:"-" yaml:"-"`

	Storage *application.StorageConfig `toml:"storage" yaml:"storage"`
}

var _ application.AppConfig = (*Config)(nil)

// NewConfig initializes a new verifier configuration.
func NewConfig(file, encoding string, logConfig *application.LoggerConfig,
	signPubkeyPath string, storage *application.StorageConfig) *Config {
	var conf = Config{
		CommonConfig:   application.NewCommonConfig(file, encoding, logConfig),
		SignPubkeyPath: signPubkeyPath,
		Storage:        storage,
	}
	return &conf
}

// Load initializes a verifier's configuration from the given file.
// It reads the signing public-key file and parses the actual key.
func (conf *Config) Load(file, encoding string) error {
	conf.CommonConfig = application.NewCommonConfig(file, encoding, nil)
	if err := conf.GetLoader().Decode(conf); err != nil {
		return err
	}
	if conf.Storage == nil {
		return fmt.Errorf("Missing storage section")
	}
	pk, err := application.LoadSigningPubKey(conf.SignPubkeyPath, file)
	if err != nil {
		return err
	}
	conf.SigningPubKey = pk
	return nil
}

// Save writes the configuration to its path.
func (conf *Config) Save() error {
	return conf.GetLoader().Encode(conf)
}
