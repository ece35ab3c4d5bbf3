// Package config loads the user-level git-mcp configuration file.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KonstantinKhan/git-mcp/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

// SecretString is a string that is redacted when printed.
type SecretString string

func (s SecretString) String() string {
	return "[REDACTED]"
}

func (s SecretString) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// IsEmpty returns true if the secret string is empty.
func (s SecretString) IsEmpty() bool {
	return string(s) == ""
}

const (
	// DefaultAddr is the listen address of the HTTP transport when the
	// config file does not set one.
	DefaultAddr = "localhost:8939"
	// DefaultModel is the Gemini model used for PR summaries.
	DefaultModel = "gemini-3-pro"
)

// Config holds user-level settings that persist across invocations.
type Config struct {
	// DefaultRepo is the repository used when a request omits repo_path.
	// Empty means the process working directory.
	DefaultRepo  string       `yaml:"default_repo"`
	Addr         string       `yaml:"addr"`
	GeminiAPIKey SecretString `yaml:"gemini_api_key"`
	Model        string       `yaml:"model"`

	OutputVerbose bool         `yaml:"-"` // derived from Output.Verbose
	OutputJSON    bool         `yaml:"-"` // derived from Output.JSON
	Output        OutputConfig `yaml:"output"`
}

// OutputConfig holds logging-related user preferences.
type OutputConfig struct {
	Verbose *bool `yaml:"verbose"`
	JSON    *bool `yaml:"json"`
}

// Loader handles loading configuration from the file system.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader with the given file system.
// Uses os.Getenv for environment variable lookups by default.
func NewLoader(fs FileSystem) *Loader {
	return &Loader{fs: fs, getenv: os.Getenv}
}

// NewLoaderWithEnv creates a Loader with a custom getenv function for testability.
func NewLoaderWithEnv(fs FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fs, getenv: getenv}
}

// pathUnder returns the config file location below the given home directory.
func pathUnder(home string) string {
	return filepath.Join(home, ".config", "git-mcp", "config.yaml")
}

// DefaultPath returns the location of the user-level config file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return pathUnder(home), nil
}

// Load reads user-level configuration from ~/.config/git-mcp/config.yaml.
// If the file does not exist, default values are returned (not an error).
// Environment variables override file values.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	home, err := l.fs.UserHomeDir()
	if err != nil {
		// Cannot determine home directory, use defaults.
		cfg := defaultConfig()
		applyEnvOverrides(cfg, l.getenv)
		return cfg, nil
	}
	return l.LoadFrom(ctx, pathUnder(home))
}

// LoadFrom reads user-level configuration from a specific path.
// If the file does not exist, default values are returned (not an error).
// Environment variables override file values.
func (l *Loader) LoadFrom(ctx context.Context, path string) (*Config, error) {
	logger.FromContext(ctx).Debug("loading config", "path", path)
	cfg := defaultConfig()

	path = filepath.Clean(path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if l.fs.IsNotExist(err) {
			applyEnvOverrides(cfg, l.getenv)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// An explicitly empty value means "use the default".
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Output.Verbose != nil {
		cfg.OutputVerbose = *cfg.Output.Verbose
	}
	if cfg.Output.JSON != nil {
		cfg.OutputJSON = *cfg.Output.JSON
	}

	applyEnvOverrides(cfg, l.getenv)

	return cfg, nil
}

// Load reads user-level configuration using the real file system.
func Load(ctx context.Context) (*Config, error) {
	return NewLoader(&RealFileSystem{}).Load(ctx)
}

// LoadFrom reads user-level configuration from a specific path using the real file system.
func LoadFrom(ctx context.Context, path string) (*Config, error) {
	return NewLoader(&RealFileSystem{}).LoadFrom(ctx, path)
}

func defaultConfig() *Config {
	return &Config{
		Addr:  DefaultAddr,
		Model: DefaultModel,
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
// The getenv parameter abstracts os.Getenv for testability.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if key := getenv("GIT_MCP_GEMINI_KEY"); key != "" {
		cfg.GeminiAPIKey = SecretString(key)
	}
	if model := getenv("GIT_MCP_MODEL"); model != "" {
		cfg.Model = model
	}
	if repo := getenv("GIT_MCP_REPO"); repo != "" {
		cfg.DefaultRepo = repo
	}
	if addr := getenv("GIT_MCP_ADDR"); addr != "" {
		cfg.Addr = addr
	}
}
