package config

import (
	"errors"

	"github.com/spf13/viper"
)

type logLevel string

const (
	LevelInfo    logLevel = "INFO"
	LevelDebug   logLevel = "DEBUG"
	LevelWarning logLevel = "WARNING"
	LevelError   logLevel = "ERROR"
	LevelFatal   logLevel = "FATAL"
)

// LoggerConfig controls log level, the error-log file and the optional
// Loki forwarding target. Loki is off when loki_url is empty.
type LoggerConfig struct {
	LogLevel     logLevel `mapstructure:"log_level"`
	AppName      string   `mapstructure:"app_name"`
	LokiURL      string   `mapstructure:"loki_url"`
	LokiUser     string   `mapstructure:"loki_user"`
	LokiPassword string   `mapstructure:"loki_password"`
	OutputFile   string   `mapstructure:"output_file"`
}

func (config LoggerConfig) validate() error {
	var errs []error

	if config.LogLevel == "" {
		errs = append(errs, errors.New("missing variable: log_level"))
	}
	if config.OutputFile == "" {
		errs = append(errs, errors.New("missing variable: output_file"))
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}
	return nil
}

func (config LoggerConfig) bindEnvironmentVariables() error {

	bindings := map[string]string{
		"logger.log_level":     "LOG_LEVEL",
		"logger.app_name":      "APP_NAME",
		"logger.output_file":   "LOG_OUTPUT_FILE",
		"logger.loki_url":      "LOKI_URL",
		"logger.loki_user":     "LOKI_USER",
		"logger.loki_password": "LOKI_PASSWORD",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}
