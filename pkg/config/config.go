// Package config loads adhere's configuration, layered the usual way:
// embedded defaults, then an adhere.toml next to the rule set, then
// ADHERE_* environment variables.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/adhere/pkg/errors"
	"github.com/arthur-debert/adhere/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config is the resolved application configuration
type Config struct {
	Rules  RulesConfig  `koanf:"rules" toml:"rules"`
	Output OutputConfig `koanf:"output" toml:"output"`
}

// RulesConfig locates and filters the rule documents
type RulesConfig struct {
	// Dir is the directory scanned for rule documents
	Dir string `koanf:"dir" toml:"dir"`
	// Extensions lists the file extensions recognized as rule documents
	Extensions []string `koanf:"extensions" toml:"extensions"`
}

// OutputConfig controls CLI rendering
type OutputConfig struct {
	// Format is "text" or "json"
	Format string `koanf:"format" toml:"format"`
	// Color enables styled terminal output when attached to a TTY
	Color bool `koanf:"color" toml:"color"`
}

// configFileNames are tried in order inside the search directory
var configFileNames = []string{".adhere.toml", "adhere.toml"}

// envPrefix namespaces the environment overrides, e.g. ADHERE_RULES_DIR
const envPrefix = "ADHERE_"

// rawBytesProvider implements a koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// Default returns the built-in configuration, ignoring config files
// and the environment
func Default() Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		// The embedded defaults are validated by tests; failing to
		// parse them is unrecoverable.
		panic(err)
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Load resolves configuration for a rule set rooted at searchDir.
// Precedence, lowest first: embedded defaults, config file in
// searchDir, ADHERE_* environment variables.
func Load(searchDir string) (*Config, error) {
	return load(searchDir)
}

func load(searchDir string) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file next to the rule set, if present
	if searchDir != "" {
		for _, name := range configFileNames {
			path := filepath.Join(searchDir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad,
					"failed to load config from %s", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded config file")
			break
		}
	}

	// 3. Environment overrides: ADHERE_RULES_DIR -> rules.dir
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}

// WriteDefault writes a starter config file with the built-in defaults
func WriteDefault(path string) error {
	cfg := Default()
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to marshal default config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to write %s", path)
	}
	return nil
}
