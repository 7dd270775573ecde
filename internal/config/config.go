// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// ConfigurationError indicates a missing or invalid startup setting.
// It is fatal: the service must not serve requests without credentials.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Config holds all runtime configuration for the service.
type Config struct {
	Stage string `envconfig:"STAGE" default:"local"`
	Port  string `envconfig:"API_PORT" default:"8000"`

	// Settlement provider (Fern) credentials.
	FernAPIKey  string `envconfig:"FERN_API_KEY"`
	FernBaseURL string `envconfig:"FERN_BASE_URL" default:"https://api.fernhq.com"`
	FernOrgID   string `envconfig:"FERN_ORG_ID"`

	// Chat-completion collaborator used by the plan description parser.
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	// Wallet-provisioning collaborator.
	WalletAPIKey        string `envconfig:"WALLET_API_KEY"`
	WalletBaseURL       string `envconfig:"WALLET_BASE_URL" default:"https://app.dynamicauth.com"`
	WalletEnvironmentID string `envconfig:"WALLET_ENVIRONMENT_ID"`

	Testing TestingConfig
}

// TestingConfig controls non-production shortcuts. Bypasses must never be
// honored when Stage is "prod"; Normalize enforces that.
type TestingConfig struct {
	BypassKYC         bool   `envconfig:"BYPASS_KYC"`
	BypassBankAccount bool   `envconfig:"BYPASS_BANK_ACCOUNT"`
	MockKYCStatus     string `envconfig:"MOCK_KYC_STATUS" default:"ACTIVE"`
}

// Load reads configuration from the environment and validates that the
// credentials required to serve any request are present.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.FernAPIKey == "" {
		return nil, &ConfigurationError{Field: "FERN_API_KEY", Reason: "required"}
	}

	cfg.Normalize()
	return &cfg, nil
}

// Normalize disables testing bypasses outside non-production stages.
func (c *Config) Normalize() {
	if c.Stage == "prod" {
		c.Testing.BypassKYC = false
		c.Testing.BypassBankAccount = false
	}
}

// IsTestingMode reports whether any bypass shortcut is active.
func (c *Config) IsTestingMode() bool {
	return c.Testing.BypassKYC || c.Testing.BypassBankAccount
}
