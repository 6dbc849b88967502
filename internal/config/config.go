// Package config loads the engine settings: built-in defaults, then an
// optional YAML file, then a .env file and GOOSE_* environment variables.
// Command line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/Oliverans/GooseEngine/internal/session"
)

// EnvPrefix marks the environment variables that override the file.
const EnvPrefix = "GOOSE_"

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Log      LogConfig      `yaml:"log"`
	Protocol ProtocolConfig `yaml:"protocol"`
	// Options are extra engine options by name, applied like setoption.
	Options map[string]int `yaml:"options"`
}

type EngineConfig struct {
	Hash    int    `yaml:"hash"`
	Threads int    `yaml:"threads"`
	Depth   int    `yaml:"depth"`
	OwnBook bool   `yaml:"own_book"`
	Name    string `yaml:"name"`
	Author  string `yaml:"author"`

	// MovesLeft replaces the estimate of moves remaining in sudden death
	// games, zero keeps the estimate.
	MovesLeft int `yaml:"moves_left"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ProtocolConfig struct {
	// Dialect is "xboard" or "uci"; it only picks the grammar used before
	// the GUI's handshake.
	Dialect string `yaml:"dialect"`
}

func Default() Config {
	return Config{
		Engine: EngineConfig{
			Hash:    session.HashOption.Default,
			Threads: session.ThreadsOption.Default,
			Name:    "GooseEngine",
			Author:  "Goose",
		},
		Log:      LogConfig{Level: "info"},
		Protocol: ProtocolConfig{Dialect: "xboard"},
	}
}

// Load reads the YAML file at path (skipped when path is empty) and the
// .env file of the working directory, then applies the environment.
func Load(path string) (Config, error) {
	return LoadFiles(path, ".env")
}

// LoadFiles is Load with an explicit .env location. A missing .env file is
// not an error, a missing YAML file that was asked for is.
func LoadFiles(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := applyEnv(&cfg, os.Environ()); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// envOverrides are the settings that can come from the environment. Nil
// means not set.
type envOverrides struct {
	Hash      *int    `mapstructure:"hash"`
	Threads   *int    `mapstructure:"threads"`
	Depth     *int    `mapstructure:"depth"`
	MovesLeft *int    `mapstructure:"moves_left"`
	OwnBook   *bool   `mapstructure:"own_book"`
	Name      *string `mapstructure:"name"`
	Author    *string `mapstructure:"author"`
	LogLevel  *string `mapstructure:"log_level"`
	Protocol  *string `mapstructure:"protocol"`
}

func applyEnv(cfg *Config, environ []string) error {
	vars := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		vars[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}
	if len(vars) == 0 {
		return nil
	}

	var env envOverrides
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &env,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(vars); err != nil {
		return fmt.Errorf("%w: environment: %v", ErrInvalid, err)
	}

	if env.Hash != nil {
		cfg.Engine.Hash = *env.Hash
	}
	if env.Threads != nil {
		cfg.Engine.Threads = *env.Threads
	}
	if env.Depth != nil {
		cfg.Engine.Depth = *env.Depth
	}
	if env.MovesLeft != nil {
		cfg.Engine.MovesLeft = *env.MovesLeft
	}
	if env.OwnBook != nil {
		cfg.Engine.OwnBook = *env.OwnBook
	}
	if env.Name != nil {
		cfg.Engine.Name = *env.Name
	}
	if env.Author != nil {
		cfg.Engine.Author = *env.Author
	}
	if env.LogLevel != nil {
		cfg.Log.Level = *env.LogLevel
	}
	if env.Protocol != nil {
		cfg.Protocol.Dialect = *env.Protocol
	}
	return nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	opts := session.Options{Hash: c.Engine.Hash, Threads: c.Engine.Threads}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%w: engine: %v", ErrInvalid, err)
	}
	if c.Engine.Depth < 0 {
		return fmt.Errorf("%w: engine.depth %d is negative", ErrInvalid, c.Engine.Depth)
	}
	if c.Engine.MovesLeft < 0 {
		return fmt.Errorf("%w: engine.moves_left %d is negative", ErrInvalid, c.Engine.MovesLeft)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch strings.ToLower(c.Protocol.Dialect) {
	case "", "xboard", "cecp", "winboard", "uci":
	default:
		return fmt.Errorf("%w: protocol.dialect %q", ErrInvalid, c.Protocol.Dialect)
	}
	return nil
}
