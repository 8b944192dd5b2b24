package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
)

// SemanticClassPathKey names the directory of semantic-class word lists.
const SemanticClassPathKey = "SEMANTIC_CLASS_PATH"

// EnvPrefix prefixes environment overrides: QFEAT_SEMANTIC_CLASS_PATH.
const EnvPrefix = "QFEAT"

// Settings is a read-only key-value store.
type Settings interface {
	Get(key string) (string, bool)
}

// FileSettings reads settings from a .properties or YAML file, with
// environment overrides.
type FileSettings struct {
	v *viper.Viper
}

// LoadSettings reads path. The format follows the extension: .yaml/.yml/.json
// are parsed as such, anything else as Java-style properties. An empty path
// yields settings backed by the environment only.
func LoadSettings(path string) (*FileSettings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path == "" {
		return &FileSettings{v: v}, nil
	}

	v.SetConfigFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v.SetConfigType("yaml")
	case ".json":
		v.SetConfigType("json")
	default:
		v.SetConfigType("properties")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("load settings from %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}
	return &FileSettings{v: v}, nil
}

// Get returns the value of key, matched case-insensitively.
func (s *FileSettings) Get(key string) (string, bool) {
	if !s.v.IsSet(key) {
		return "", false
	}
	return s.v.GetString(key), true
}

// File returns the settings file in use, or "".
func (s *FileSettings) File() string { return s.v.ConfigFileUsed() }

// MapSettings is an in-memory Settings.
type MapSettings map[string]string

// Get implements Settings.
func (m MapSettings) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
