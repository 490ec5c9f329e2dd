package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the worker configuration loaded from a TOML file.
type Config struct {
	Helper   HelperConfig   `toml:"helper"`
	Worker   WorkerConfig   `toml:"worker"`
	Verify   VerifyConfig   `toml:"verify"`
	Throttle ThrottleConfig `toml:"throttle"`
}

// HelperConfig locates the native Photos helper binary the worker bridges to.
type HelperConfig struct {
	Path string `toml:"path"`
}

// WorkerConfig contains settings for result and deep-link output.
type WorkerConfig struct {
	URLScheme string `toml:"url_scheme"`
}

// VerifyConfig bounds the post-import identifier verification loop.
type VerifyConfig struct {
	Attempts int `toml:"attempts"`
	DelayMS  int `toml:"delay_ms"`
}

// ThrottleConfig paces calls against the photo library, which is known to
// misbehave under rapid repeated invocation.
type ThrottleConfig struct {
	CallsPerSecond float64 `toml:"calls_per_second"`
}

// Delay returns the verification delay as a [time.Duration].
func (v VerifyConfig) Delay() time.Duration {
	return time.Duration(v.DelayMS) * time.Millisecond
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidInput)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
