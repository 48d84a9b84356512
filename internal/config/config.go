package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/ignitionstack/wasmboard/pkg/api"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration constants
const (
	// DefaultConfigPath is the default path to the config file
	DefaultConfigPath = "~/.wasmboard/config.yaml"

	// EnvPrefix is the prefix for environment variables
	EnvPrefix = "WASMBOARD_"
)

// Config holds all configuration for wasmboard
type Config struct {
	API     APIConfig     `koanf:"api"`
	Session SessionConfig `koanf:"session"`
	Runtime RuntimeConfig `koanf:"runtime"`
	Log     LogConfig     `koanf:"log"`
	UI      UIConfig      `koanf:"ui"`
}

// APIConfig points at the hosting server
type APIConfig struct {
	BaseURL string `koanf:"base_url"`
}

// SessionConfig holds where session state lives
type SessionConfig struct {
	// Directory holding the session database and stored binaries
	Dir string `koanf:"dir"`
}

// RuntimeConfig holds local execution settings
type RuntimeConfig struct {
	// Deadline for a single function call; zero disables it
	CallTimeout time.Duration `koanf:"call_timeout"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// UIConfig holds terminal output settings
type UIConfig struct {
	// Plain disables colors, highlighting and spinners
	Plain bool `koanf:"plain"`

	// Theme is the chroma style used to highlight JSON
	Theme string `koanf:"theme"`

	// Width wraps long messages; zero disables wrapping
	Width int `koanf:"width"`
}

// DefaultHome returns ~/.wasmboard, or .wasmboard when there is no home.
func DefaultHome() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".wasmboard")
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: api.DefaultBaseURL,
		},
		Session: SessionConfig{
			Dir: DefaultHome(),
		},
		Runtime: RuntimeConfig{
			CallTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "warn",
		},
		UI: UIConfig{
			Theme: "monokai",
			Width: 100,
		},
	}
}

// LoadConfig loads configuration from the specified path and environment
// variables. Later sources override earlier ones: defaults, file, env.
func LoadConfig(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Set default values
	if err := k.Load(newStructProvider(DefaultConfig()), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	known := make(map[string]bool)
	for _, key := range k.Keys() {
		known[key] = true
	}

	// Try to load from config file (if it exists)
	expandedPath := ExpandHome(configPath)
	if _, err := os.Stat(expandedPath); err == nil {
		if err := k.Load(file.Provider(expandedPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// WASMBOARD_API_BASE_URL -> api.base_url. Variables naming no setting
	// are skipped.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.Replace(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".", 1)
		if !known[key] {
			return ""
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var config Config
	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &config,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Session.Dir = ExpandHome(config.Session.Dir)
	return &config, nil
}

// ExpandHome expands a leading ~/ to the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[2:])
}

// structProvider is a provider that loads configuration from a struct
type structProvider struct {
	cfg interface{}
}

func newStructProvider(cfg interface{}) *structProvider {
	return &structProvider{cfg: cfg}
}

// Read converts the struct to a nested map keyed by koanf tags
func (s *structProvider) Read() (map[string]interface{}, error) {
	var out map[string]interface{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "koanf",
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(s.cfg); err != nil {
		return nil, err
	}

	return out, nil
}

// ReadBytes is required by the Provider interface but not used for struct providers
func (s *structProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not supported for struct provider")
}
