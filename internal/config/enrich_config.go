package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type EnrichConfig struct {
	APIKey               string        `mapstructure:"api_key"`
	BaseURL              string        `mapstructure:"base_url"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
}

func (config EnrichConfig) validate() error {
	if config.APIKey == "" {
		return fmt.Errorf("missing variable: enrich api key")
	}
	return nil
}

func (config EnrichConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("enrich.api_key", "ENRICH_API_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("enrich.base_url", "ENRICH_BASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
