package config

import (
	"errors"

	"github.com/spf13/viper"
)

// DBConfig holds the sqlite DSN, typically a file path like ./data/jobs.db.
type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return errors.New("missing variable: db connection_string")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("db.connection_string", "DB_CONNECTION_STRING")
}
