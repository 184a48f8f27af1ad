// Package config handles configuration for the server, layered as defaults,
// then environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

// LLM provider selectors.
const (
	LLMProviderGemini = "gemini"
	LLMProviderOpenAI = "openai"
)

// Startup behavior when the store is unreachable at boot. fail-fast refuses
// to start; degrade starts disconnected and serves 503s until the store comes
// back. Both behaviors exist in the reference deployments, so the choice is a
// flag rather than a constant.
const (
	StartupModeFailFast = "fail-fast"
	StartupModeDegrade  = "degrade"
)

// Config holds runtime settings for the advisor server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - StoreURI / StoreName: document store connection string and database name.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - LLMProvider / LLMModel: which provider SDK answers chat requests.
//   - GeminiAPIKey / OpenAIAPIKey: provider credentials; only the active
//     provider's key is required.
//   - CORSAllowedOrigins: browser origins allowed to call the API.
//   - StartupMode: fail-fast or degrade (see constants above).
type Config struct {
	EndpointAddr                 string
	StoreURI                     string
	StoreName                    string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	LLMProvider                  string
	LLMModel                     string
	GeminiAPIKey                 string
	OpenAIAPIKey                 string
	CORSAllowedOrigins           []string
	StartupMode                  string
}

// LoadDefaults populates Config with development defaults. Secrets and
// credentials have no defaults and must come from the environment or flags.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8000"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.RefreshTokenValidityDuration = 7 * 24 * time.Hour
	c.LLMProvider = LLMProviderGemini
	c.CORSAllowedOrigins = []string{"http://localhost:5173"}
	c.StartupMode = StartupModeFailFast
}

// Validate checks that every required value is present so the process can
// fail fast at startup instead of at first request.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("missing signing secret (SECRET_KEY)")
	}
	if c.StoreURI == "" {
		return errors.New("missing store connection string (MONGO_URI)")
	}
	if c.StoreName == "" {
		return errors.New("missing store name (MONGO_DB)")
	}
	switch c.LLMProvider {
	case LLMProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("missing GEMINI_API_KEY in environment variables")
		}
	case LLMProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("missing OPENAI_API_KEY in environment variables")
		}
	default:
		return fmt.Errorf("unknown llm provider: %q", c.LLMProvider)
	}
	if c.StartupMode != StartupModeFailFast && c.StartupMode != StartupModeDegrade {
		return fmt.Errorf("unknown startup mode: %q", c.StartupMode)
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment and finally from command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
