package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application, loaded from file or
// environment variables.
type Config struct {
	DBSource      string        `mapstructure:"DB_SOURCE"`
	ServerAddress string        `mapstructure:"SERVER_ADDRESS"`
	LookupBaseURL string        `mapstructure:"LOOKUP_BASE_URL"`
	PostalCode    string        `mapstructure:"POSTAL_CODE"`
	AddressTable  string        `mapstructure:"ADDRESS_TABLE"`
	HTTPTimeout   time.Duration `mapstructure:"HTTP_TIMEOUT"`
}

var (
	cepPattern   = regexp.MustCompile(`^[0-9]{8}$`)
	tablePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// LoadConfig reads configuration from the given path, applies environment
// overrides and validates the result.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate checks that every recognized option holds a usable value.
func (c Config) Validate() error {
	if c.DBSource == "" {
		return fmt.Errorf("config: DB_SOURCE is required")
	}
	if c.LookupBaseURL == "" {
		return fmt.Errorf("config: LOOKUP_BASE_URL is required")
	}
	if !cepPattern.MatchString(c.PostalCode) {
		return fmt.Errorf("config: POSTAL_CODE must be exactly 8 digits, got %q", c.PostalCode)
	}
	// Bare identifier only; the table name is interpolated into SQL after
	// quoting, schema-qualified names are not supported.
	if !tablePattern.MatchString(c.AddressTable) {
		return fmt.Errorf("config: ADDRESS_TABLE must be a plain SQL identifier, got %q", c.AddressTable)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}
