// Package config loads and validates the candidate-board configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "CANDIDATE_BOARD"

	defaultBackendURL   = "http://localhost:8000"
	defaultConcurrency  = 4
	defaultGeminiModel  = "gemini-2.5-pro"
	defaultMaxRetries   = 3
	defaultMaxLogLength = 200
)

type Config struct {
	Backend     BackendConfig `mapstructure:"backend"`
	Filters     FiltersConfig `mapstructure:"filters"`
	Upload      UploadConfig  `mapstructure:"upload"`
	ExcludeFile string        `mapstructure:"exclude-file"`
	AI          AIConfig      `mapstructure:"ai"`
}

type BackendConfig struct {
	URL       string        `mapstructure:"url" validate:"required,url"`
	Token     string        `mapstructure:"token"`
	TokenFile string        `mapstructure:"token-file"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type FiltersConfig struct {
	MinimumScore int      `mapstructure:"minimum-score" validate:"gte=0,lte=100"`
	Top          int      `mapstructure:"top" validate:"gte=0"`
	Disabled     []string `mapstructure:"disabled" validate:"dive,oneof=exclude_file minimum_score top"`
}

type UploadConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"gte=1,lte=16"`
}

type AIConfig struct {
	Enabled      bool         `mapstructure:"enabled"`
	Provider     string       `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Instructions string       `mapstructure:"instructions" validate:"max=2000"`
	Gemini       GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model" validate:"required"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0,lte=10"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) error {
	v.SetDefault("backend.url", defaultBackendURL)
	v.SetDefault("backend.timeout", 2*time.Minute)
	v.SetDefault("upload.concurrency", defaultConcurrency)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini.model", defaultGeminiModel)
	v.SetDefault("ai.gemini.max-retries", defaultMaxRetries)
	v.SetDefault("ai.gemini.max-log-length", defaultMaxLogLength)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindings := map[string][]string{
		"backend.url":           {EnvPrefix + "_URL"},
		"backend.token":         {EnvPrefix + "_TOKEN"},
		"backend.token-file":    {EnvPrefix + "_TOKEN_FILE"},
		"exclude-file":          {EnvPrefix + "_EXCLUDE_FILE"},
		"filters.minimum-score": {EnvPrefix + "_MINIMUM_SCORE"},
		"filters.top":           {EnvPrefix + "_TOP"},
		"ai.gemini.api-key":     {"GEMINI_API_KEY"},
		"ai.gemini.model":       {"GEMINI_MODEL"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("binding %s environment variables: %w", key, err)
		}
	}

	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violation at once.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s: failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
			continue
		}
		problems = append(problems, fmt.Sprintf("%s: failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}

	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}
