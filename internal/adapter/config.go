package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// StoreConfig holds entity store configuration
type StoreConfig struct {
	Dir       string `mapstructure:"dir"`        // Empty keeps the store in memory
	ServerURL string `mapstructure:"server_url"` // Selects the per-server directory
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// OutputConfig controls how normalized results are printed
type OutputConfig struct {
	Indent   bool `mapstructure:"indent"`
	Warnings bool `mapstructure:"warnings"` // Print parse warnings to stderr
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Dir: defaultStorePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Output: OutputConfig{
			Indent:   true,
			Warnings: true,
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "plexkit", "plexkit.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "plexkit", "plexkit.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "plexkit")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "plexkit")
	}
}

// defaultStorePath returns the default store directory for the current OS
func defaultStorePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "plexkit", "store")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "plexkit", "store")
	}
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetDefault("store.dir", cfg.Store.Dir)
	v.SetDefault("store.server_url", cfg.Store.ServerURL)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("output.indent", cfg.Output.Indent)
	v.SetDefault("output.warnings", cfg.Output.Warnings)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. PLEXKIT_STORE_DIR
	v.SetEnvPrefix("PLEXKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}
