// Package config loads the application settings from a YAML file, a .env file
// and CARDSTORE_ prefixed environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	store "github.com/likearthian/cardstore"
)

const (
	EnvPrefix         = "CARDSTORE"
	EnvConfigFile     = "CARDSTORE_CONFIG_FILE"
	DefaultConfigFile = "configs/config.yaml"
)

// Config is the main configuration structure
type Config struct {
	Mongo store.MongoSettings `mapstructure:"mongo"`
	HTTP  HTTPConfig          `mapstructure:"http"`
	Log   LogConfig           `mapstructure:"log"`
}

// HTTPConfig holds the API server settings
type HTTPConfig struct {
	ListenAddress  string   `mapstructure:"listen_address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the configuration. When path is empty the file named by
// CARDSTORE_CONFIG_FILE is used, falling back to configs/config.yaml. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mongo.connection_string", "mongodb://localhost:27017")
	v.SetDefault("mongo.database_name", "")

	v.SetDefault("http.listen_address", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate checks that the settings needed to open the store are present.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Mongo.ConnectionString) == "" {
		errs = append(errs, errors.New("mongo.connection_string is required"))
	}

	if strings.TrimSpace(c.Mongo.DatabaseName) == "" {
		errs = append(errs, errors.New("mongo.database_name is required"))
	}

	return errors.Join(errs...)
}
