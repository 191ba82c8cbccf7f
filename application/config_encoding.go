package application

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xcert/framework-sub004/utils"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ConfigLoader provides an interface for implementing
// different imprint application configuration encodings.
type ConfigLoader interface {
	Encode(conf AppConfig) error
	Decode(conf AppConfig) error
}

// newConfigLoader constructs a new ConfigLoader for the given encoding.
// If the encoding is unsupported, NewConfigLoader() returns a loader
// for the default encoding (TOML).
func newConfigLoader(encoding string) ConfigLoader {
	loader := configEncodings[encoding]
	if loader == nil {
		loader = new(TomlLoader)
	}
	return loader
}

// EncodingOf guesses the encoding of a config file from its extension.
func EncodingOf(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "toml"
}

// TomlLoader implements a ConfigLoader for toml-encoded imprint application
// configurations.
type TomlLoader struct{}

var _ ConfigLoader = (*TomlLoader)(nil)

// Encode saves the given configuration conf in toml encoding.
// If there is any encoding or IO error, Encode() returns an error.
func (ld *TomlLoader) Encode(conf AppConfig) error {
	var confBuf bytes.Buffer

	e := toml.NewEncoder(&confBuf)
	if err := e.Encode(conf); err != nil {
		return err
	}
	return utils.WriteFile(conf.GetPath(), confBuf.Bytes(), 0644)
}

// Decode reads an application configuration from the given toml-encoded
// file. If there is any decoding error, Decode() returns an error.
func (ld *TomlLoader) Decode(conf AppConfig) error {
	if _, err := toml.DecodeFile(conf.GetPath(), conf); err != nil {
		return fmt.Errorf("Failed to load config: %v", err)
	}
	return nil
}

// YamlLoader implements a ConfigLoader for yaml-encoded imprint application
// configurations.
type YamlLoader struct{}

var _ ConfigLoader = (*YamlLoader)(nil)

// Encode saves the given configuration conf in yaml encoding.
func (ld *YamlLoader) Encode(conf AppConfig) error {
	buf, err := yaml.Marshal(conf)
	if err != nil {
		return err
	}
	return utils.WriteFile(conf.GetPath(), buf, 0644)
}

// Decode reads an application configuration from the given yaml-encoded
// file.
func (ld *YamlLoader) Decode(conf AppConfig) error {
	buf, err := os.ReadFile(conf.GetPath())
	if err != nil {
		return fmt.Errorf("Failed to load config: %v", err)
	}
	if err := yaml.Unmarshal(buf, conf); err != nil {
		return fmt.Errorf("Failed to load config: %v", err)
	}
	return nil
}

var configEncodings = map[string]ConfigLoader{
	"toml": new(TomlLoader),
	"yaml": new(YamlLoader),
}
