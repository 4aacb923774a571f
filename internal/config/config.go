// Package config provides Viper-based configuration management for whoopctl
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete whoopctl configuration
type Config struct {
	Whoop   WhoopConfig   `mapstructure:"whoop"`
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// WhoopConfig contains the account credentials and the auth client id
type WhoopConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
	ClientID string `mapstructure:"client_id"`
}

// APIConfig contains the mobile-backend endpoint settings
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Load reads configuration from file and environment variables.
// A local .env file is loaded first so WHOOP_EMAIL/WHOOP_PASSWORD can
// live next to automation scripts without touching the shell profile.
func Load(cfgFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Search paths for .whoopctl.yaml
		v.SetConfigName(".whoopctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/whoopctl")
	}

	// Environment variables: WHOOPCTL_WHOOP_EMAIL, WHOOPCTL_API_BASE_URL, ...
	v.SetEnvPrefix("WHOOPCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Bare WHOOP_EMAIL/WHOOP_PASSWORD also work, matching the vendor's
	// conventional variable names.
	if cfg.Whoop.Email == "" {
		cfg.Whoop.Email = os.Getenv("WHOOP_EMAIL")
	}
	if cfg.Whoop.Password == "" {
		cfg.Whoop.Password = os.Getenv("WHOOP_PASSWORD")
	}

	return &cfg, nil
}

// ValidateCredentials ensures a usable credential pair is present.
func (c *Config) ValidateCredentials() error {
	if c.Whoop.Email == "" || c.Whoop.Password == "" {
		return fmt.Errorf("missing credentials: set whoop.email and whoop.password in .whoopctl.yaml, or export WHOOP_EMAIL and WHOOP_PASSWORD")
	}
	return nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "")

	// Registering the credential keys lets the WHOOPCTL_-prefixed
	// environment variables reach Unmarshal.
	v.SetDefault("whoop.email", "")
	v.SetDefault("whoop.password", "")
	v.SetDefault("whoop.client_id", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")

	// Output defaults
	v.SetDefault("output.colors", true)
}
