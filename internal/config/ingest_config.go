package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type IngestConfig struct {
	RowsFile             string `mapstructure:"rows_file"`
	JobExpirationInDays  int    `mapstructure:"job_expiration_days"`
	DisableJobExtraction bool   `mapstructure:"disable_job_extraction"`
}

func (config IngestConfig) validate() error {
	if config.JobExpirationInDays < 0 {
		return fmt.Errorf("job_expiration_days must be non-negative")
	}
	return nil
}

func (config IngestConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("ingest.rows_file", "INGEST_ROWS_FILE"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("ingest.job_expiration_days", "JOB_EXPIRATION_DAYS"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
