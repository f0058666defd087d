package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/trains/pkg/credentials"
	"github.com/travigo/trains/pkg/util"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TransportAPI TransportAPIConfig `yaml:"transport_api"`
	Pipeline     PipelineConfig     `yaml:"pipeline"`
	Enrichment   EnrichmentConfig   `yaml:"enrichment"`
	Stations     StationsConfig     `yaml:"stations"`
	Credentials  CredentialsConfig  `yaml:"credentials"`
	HTTP         HTTPConfig         `yaml:"http"`
	GRPC         GRPCConfig         `yaml:"grpc"`
}

type TransportAPIConfig struct {
	BaseURL   string `yaml:"base_url" validate:"required,url"`
	Timeout   string `yaml:"timeout" validate:"required"`
	UserAgent string `yaml:"user_agent"`
}

type PipelineConfig struct {
	Timeout string `yaml:"timeout" validate:"required"`
}

type EnrichmentConfig struct {
	MaxConcurrency int  `yaml:"max_concurrency" validate:"gte=0"`
	FailFast       bool `yaml:"fail_fast"`
}

type StationsConfig struct {
	// Empty means use the bundled table
	File string `yaml:"file"`
}

type CredentialSourceConfig struct {
	Env  string `yaml:"env"`
	File string `yaml:"file"`
}

type CredentialsConfig struct {
	AppID  CredentialSourceConfig `yaml:"app_id"`
	AppKey CredentialSourceConfig `yaml:"app_key"`
}

type HTTPConfig struct {
	Listen string `yaml:"listen" validate:"required"`
}

type GRPCConfig struct {
	Listen  string `yaml:"listen" validate:"required"`
	Address string `yaml:"address" validate:"required"`
}

func Default() *Config {
	return &Config{
		TransportAPI: TransportAPIConfig{
			BaseURL:   "https://transportapi.com/v3/uk/train",
			Timeout:   "PT10S",
			UserAgent: "travigo-trains/0.1",
		},
		Pipeline: PipelineConfig{
			Timeout: "PT30S",
		},
		Enrichment: EnrichmentConfig{
			MaxConcurrency: 16,
		},
		Credentials: CredentialsConfig{
			AppID: CredentialSourceConfig{
				Env:  "TRANSPORT_APP_ID",
				File: ".transportAppId",
			},
			AppKey: CredentialSourceConfig{
				Env:  "TRANSPORT_APP_KEY",
				File: ".transportAppKey",
			},
		},
		HTTP: HTTPConfig{
			Listen: ":8001",
		},
		GRPC: GRPCConfig{
			Listen:  ":8002",
			Address: "localhost:8002",
		},
	}
}

// Load builds the configuration from the defaults, a .env file, an optional YAML file and then TRAINS_* environment variables
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg := Default()

	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvironment(util.GetEnvironmentVariables()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvironment(env map[string]string) error {
	overrides := map[string]*string{
		"TRAINS_TRANSPORT_API_BASE_URL":   &c.TransportAPI.BaseURL,
		"TRAINS_TRANSPORT_API_TIMEOUT":    &c.TransportAPI.Timeout,
		"TRAINS_TRANSPORT_API_USER_AGENT": &c.TransportAPI.UserAgent,
		"TRAINS_PIPELINE_TIMEOUT":         &c.Pipeline.Timeout,
		"TRAINS_STATIONS_FILE":            &c.Stations.File,
		"TRAINS_HTTP_LISTEN":              &c.HTTP.Listen,
		"TRAINS_GRPC_LISTEN":              &c.GRPC.Listen,
		"TRAINS_GRPC_ADDRESS":             &c.GRPC.Address,
	}

	for name, field := range overrides {
		if value := env[name]; value != "" {
			*field = value
		}
	}

	if value := env["TRAINS_ENRICHMENT_MAX_CONCURRENCY"]; value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("TRAINS_ENRICHMENT_MAX_CONCURRENCY: %w", err)
		}
		c.Enrichment.MaxConcurrency = n
	}

	if value := env["TRAINS_ENRICHMENT_FAIL_FAST"]; value != "" {
		c.Enrichment.FailFast = util.IsEnvironmentTrue(value)
	}

	return nil
}

func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	if _, err := ParseDuration(c.TransportAPI.Timeout); err != nil {
		return fmt.Errorf("transport_api.timeout: %w", err)
	}
	if _, err := ParseDuration(c.Pipeline.Timeout); err != nil {
		return fmt.Errorf("pipeline.timeout: %w", err)
	}

	return nil
}

func (c *Config) UpstreamTimeout() time.Duration {
	d, _ := ParseDuration(c.TransportAPI.Timeout)
	return d
}

func (c *Config) PipelineTimeout() time.Duration {
	d, _ := ParseDuration(c.Pipeline.Timeout)
	return d
}

func (c *Config) CredentialSources() (credentials.Source, credentials.Source) {
	return credentials.Source{
			Name:            "app_id",
			EnvironmentName: c.Credentials.AppID.Env,
			FilePath:        c.Credentials.AppID.File,
		}, credentials.Source{
			Name:            "app_key",
			EnvironmentName: c.Credentials.AppKey.Env,
			FilePath:        c.Credentials.AppKey.File,
		}
}

var durationReference = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseDuration converts an ISO8601 duration such as PT10S
func ParseDuration(value string) (time.Duration, error) {
	parsed, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, err
	}

	d := parsed.Shift(durationReference).Sub(durationReference)
	if d <= 0 {
		return 0, fmt.Errorf("duration %s must be positive", value)
	}

	return d, nil
}
