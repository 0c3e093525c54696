// Package config loads connection settings from turboindex.toml and the
// TURBOINDEX_* environment. Command-line flags take ultimate precedence and
// are merged by the CLI layer.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config carries the connection settings shared by every command.
type Config struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MySQLVersion string
}

// envBindings maps config keys to their environment overrides.
var envBindings = map[string]string{
	"mysql.host":     "TURBOINDEX_HOST",
	"mysql.port":     "TURBOINDEX_PORT",
	"mysql.user":     "TURBOINDEX_USER",
	"mysql.password": "TURBOINDEX_PASSWORD",
	"mysql.database": "TURBOINDEX_DATABASE",
	"mysql.version":  "TURBOINDEX_MYSQL_VERSION",
}

// Load reads turboindex.toml from the working directory (if present) and
// applies environment overrides. A missing config file is not an error.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads the file at path instead of searching
// the working directory. Unlike the default search, an explicitly named file
// that cannot be read is an error.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("turboindex")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Wrapf(err, "failed to bind environment variable %s", env)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); path != "" || !ok {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	return &Config{
		Host:         v.GetString("mysql.host"),
		Port:         v.GetInt("mysql.port"),
		User:         v.GetString("mysql.user"),
		Password:     v.GetString("mysql.password"),
		Database:     v.GetString("mysql.database"),
		MySQLVersion: v.GetString("mysql.version"),
	}, nil
}

// HasDSN reports whether any connection parameter is set, which is what the
// schema-aware rewrite path keys off.
func (c *Config) HasDSN() bool {
	return c.Host != "" || c.Port != 0 || c.User != "" || c.Password != "" || c.Database != ""
}
