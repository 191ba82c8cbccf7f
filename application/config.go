package application

import (
	"fmt"
	"os"

	"github.com/0xcert/framework-sub004/crypto/sign"
	"github.com/0xcert/framework-sub004/storage/kv"
	"github.com/0xcert/framework-sub004/storage/kv/leveldbkv"
	"github.com/0xcert/framework-sub004/storage/kv/rediskv"
	"github.com/0xcert/framework-sub004/utils"
)

// AppConfig provides an abstraction of the
// underlying encoding format for the configs.
type AppConfig interface {
	Load(file, encoding string) error
	Save() error
	GetPath() string
}

// CommonConfig is the generic type used to specify the configuration of
// any kind of imprint application-level executable (e.g. the notary,
// the verifier etc.). It contains some common configuration
// values including the file path, logger configuration, and config
// loader.
type CommonConfig struct {
	Path     string        `toml:"-" yaml:"-"`
	Logger   *LoggerConfig `toml:"logger" yaml:"logger"`
	Encoding string        `toml:"-" yaml:"-"`
	loader   ConfigLoader
}

// NewCommonConfig initializes an application's config file path,
// its loader for the given encoding, and the logger configuration.
// Note: This constructor must be called in each Load() method
// implementation of an AppConfig.
func NewCommonConfig(file, encoding string, logger *LoggerConfig) *CommonConfig {
	return &CommonConfig{
		Path:     file,
		Logger:   logger,
		Encoding: encoding,
		loader:   newConfigLoader(encoding),
	}
}

// GetLoader returns the config's loader.
func (conf *CommonConfig) GetLoader() ConfigLoader {
	return conf.loader
}

// GetPath returns the path of the config file.
func (conf *CommonConfig) GetPath() string {
	return conf.Path
}

// NewLogger builds the logger described by the config. A config
// without logger section gets a production logger writing to stderr.
func (conf *CommonConfig) NewLogger() (*Logger, error) {
	if conf.Logger == nil {
		return NewLogger(&LoggerConfig{Environment: "production"})
	}
	lc := *conf.Logger
	if lc.Path != "" {
		lc.Path = utils.ResolvePath(lc.Path, conf.Path)
	}
	return NewLogger(&lc)
}

// StorageConfig selects the key-value store holding signed roots and
// evidence: a leveldb directory (the default) or a redis server.
type StorageConfig struct {
	Backend string          `toml:"backend" yaml:"backend"`
	Path    string          `toml:"path,omitempty" yaml:"path,omitempty"`
	Redis   *rediskv.Config `toml:"redis,omitempty" yaml:"redis,omitempty"`
}

// Storage backends.
const (
	LevelDBBackend = "leveldb"
	RedisBackend   = "redis"
)

// Open opens the configured store. A relative leveldb path is
// resolved against the config file.
func (sc *StorageConfig) Open(file string) (kv.DB, error) {
	switch sc.Backend {
	case "", LevelDBBackend:
		if sc.Path == "" {
			return nil, fmt.Errorf("Missing leveldb path")
		}
		return leveldbkv.OpenDB(utils.ResolvePath(sc.Path, file))
	case RedisBackend:
		if sc.Redis == nil {
			return nil, fmt.Errorf("Missing redis section")
		}
		return rediskv.OpenDB(*sc.Redis)
	default:
		return nil, fmt.Errorf("Unknown storage backend %q", sc.Backend)
	}
}

// LoadSigningKey loads a private signing key at the given path
// specified in the given config file.
// If there is any parsing error or the key is malformed,
// LoadSigningKey() returns an error with a nil key.
func LoadSigningKey(path, file string) (sign.PrivateKey, error) {
	signPath := utils.ResolvePath(path, file)
	signKey, err := os.ReadFile(signPath)
	if err != nil {
		return nil, fmt.Errorf("Cannot read signing key: %v", err)
	}
	sk, err := sign.NewPrivateKey(signKey)
	if err != nil {
		return nil, fmt.Errorf("%w: signing key must be %d bytes (got %d)",
			err, sign.PrivateKeySize, len(signKey))
	}
	return sk, nil
}

// LoadSigningPubKey loads a public signing key at the given path
// specified in the given config file.
// If there is any parsing error or the key is malformed,
// LoadSigningPubKey() returns an error with a nil key.
func LoadSigningPubKey(path, file string) (sign.PublicKey, error) {
	signPath := utils.ResolvePath(path, file)
	signPubKey, err := os.ReadFile(signPath)
	if err != nil {
		return nil, fmt.Errorf("Cannot read signing key: %v", err)
	}
	pk, err := sign.NewPublicKey(signPubKey)
	if err != nil {
		return nil, fmt.Errorf("%w: signing public-key must be %d bytes (got %d)",
			err, sign.PublicKeySize, len(signPubKey))
	}
	return pk, nil
}
