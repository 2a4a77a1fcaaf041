// Package config loads the command line configuration from an optional file
// and MOFIND_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by [Load]. Underscores
// after the prefix separate nested keys, so MOFIND_MONGO_URI sets mongo.uri.
const EnvPrefix = "MOFIND_"

// Config is the command line configuration.
type Config struct {
	Mongo Mongo `mapstructure:"mongo"`
	Query Query `mapstructure:"query"`
	Log   Log   `mapstructure:"log"`
}

// Mongo locates the queried collection.
type Mongo struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// Query holds the translation and paging settings.
type Query struct {
	PrimaryKey string `mapstructure:"primarykey"`
	RawPrefix  string `mapstructure:"rawprefix"`
	Limit      int64  `mapstructure:"limit"`
}

// Log configures the logger.
type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads the configuration. When path is empty a mofind file in the
// working directory is read if one exists. Environment variables override
// file values.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "test")
	v.SetDefault("query.primarykey", "_id")
	v.SetDefault("query.rawprefix", "this")
	v.SetDefault("log.level", "info")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("mofind")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		prop := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(key, EnvPrefix), "_", "."))
		v.Set(strings.Trim(prop, "."), value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
