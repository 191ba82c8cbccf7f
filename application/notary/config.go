package notary

import (
	"fmt"

	"github.com/0xcert/framework-sub004/application"
	"github.com/0xcert/framework-sub004/crypto/hasher"
	"github.com/0xcert/framework-sub004/crypto/hasher/sha256"
)

// A Config contains configuration values
// which are read at initialization time from
// a TOML or YAML format configuration file.
type Config struct {
	*application.CommonConfig `yaml:",inline"`
	// Policies contains the notary's certification policies.
	Policies *Policies `toml:"policies" yaml:"policies"`
	// Storage selects where signed roots and evidence are kept.
	Storage *application.StorageConfig `toml:"storage" yaml:"storage"`
}

var _ application.AppConfig = (*Config)(nil)

// NewConfig initializes a new notary configuration at the given path
// with the given logger configuration, policies and storage.
func NewConfig(file, encoding string, logConfig *application.LoggerConfig,
	policies *Policies, storage *application.StorageConfig) *Config {
	var conf = Config{
		CommonConfig: application.NewCommonConfig(file, encoding, logConfig),
		Policies:     policies,
		Storage:      storage,
	}
	return &conf
}

// Load initializes a notary configuration from the given file using
// the given encoding. It reads the signing key into the Config and
// looks up the configured hasher; an empty hasher selects SHA-256.
func (conf *Config) Load(file, encoding string) error {
	conf.CommonConfig = application.NewCommonConfig(file, encoding, nil)
	if err := conf.GetLoader().Decode(conf); err != nil {
		return err
	}
	if conf.Policies == nil {
		return fmt.Errorf("Missing policies section")
	}
	if conf.Storage == nil {
		return fmt.Errorf("Missing storage section")
	}

	signKey, err := application.LoadSigningKey(conf.Policies.SignKeyPath, file)
	if err != nil {
		return err
	}
	conf.Policies.signKey = signKey

	if conf.Policies.Hasher == "" {
		conf.Policies.Hasher = sha256.SHA256Hasher
	}
	h, err := hasher.Get(conf.Policies.Hasher)
	if err != nil {
		return err
	}
	conf.Policies.hasher = h
	return nil
}

// Save writes the configuration to its path. It refuses to
// overwrite an existing file.
func (conf *Config) Save() error {
	return conf.GetLoader().Encode(conf)
}
