package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AIProvider string

const (
	ProviderLlama  AIProvider = "llama"
	ProviderGemini AIProvider = "gemini"
)

type AIConfig struct {
	Provider             AIProvider    `mapstructure:"provider"`
	GeminiKey            string        `mapstructure:"gemini_key"`
	GeminiModel          string        `mapstructure:"gemini_model"`
	LlamaURL             string        `mapstructure:"llama_url"`
	LlamaModel           string        `mapstructure:"llama_model"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	MaxRequestsPerMinute float32       `mapstructure:"max_requests_per_minute"`
	MaxRequestsPerDay    float32       `mapstructure:"max_requests_per_day"`
	HeuristicFallback    bool          `mapstructure:"heuristic_fallback"`
}

func (config AIConfig) validate() error {

	var missingFields []string

	switch config.Provider {
	case ProviderGemini:
		if config.GeminiKey == "" {
			missingFields = append(missingFields, "gemini_key")
		}
	case ProviderLlama:
		if config.LlamaURL == "" {
			missingFields = append(missingFields, "llama_url")
		}
	default:
		return fmt.Errorf("unknown ai provider: %v", config.Provider)
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	return nil
}

func (config AIConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("ai.provider", "AI_PROVIDER"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("ai.gemini_key", "GEMINI_KEY"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("ai.llama_url", "LLAMA_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("ai.llama_model", "LLAMA_MODEL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
