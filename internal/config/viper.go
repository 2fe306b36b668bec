// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Rules struct {
		File       string `mapstructure:"file" yaml:"file"`
		Categories string `mapstructure:"categories" yaml:"categories"`
	} `mapstructure:"rules" yaml:"rules"`

	Account struct {
		Tag string `mapstructure:"tag" yaml:"tag"`
	} `mapstructure:"account" yaml:"account"`

	Suggest struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"suggest" yaml:"suggest"`

	Server struct {
		Listen string `mapstructure:"listen" yaml:"listen"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig loads configuration from defaults, an optional config
// file, and STMT_*-prefixed environment variables, in that precedence order.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.statement-ledger")
	v.AddConfigPath(".statement-ledger")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STMT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
		// Missing config file is fine, defaults plus env vars apply.
	}

	// API key comes from the conventional unprefixed variable.
	if err := v.BindEnv("suggest.api_key", "GEMINI_API_KEY"); err != nil {
		Logger.Warnf("Failed to bind GEMINI_API_KEY environment variable: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("rules.file", "custom_rules.json")
	v.SetDefault("rules.categories", "categories.yaml")

	v.SetDefault("account.tag", "Checking")

	v.SetDefault("suggest.enabled", false)
	v.SetDefault("suggest.model", "gemini-2.0-flash")

	v.SetDefault("server.listen", ":8080")
}

func validateConfig(config *Config) error {
	switch strings.ToLower(config.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", config.Log.Level)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", config.CSV.Delimiter)
	}

	if config.Rules.File == "" {
		return fmt.Errorf("rules file path must not be empty")
	}

	return nil
}
