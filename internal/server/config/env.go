package config

import (
	"os"
	"strings"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset variables
// leave the current value untouched. Durations use Go syntax ("24h", "30m");
// unparsable values are ignored rather than guessed at.
func parseEnv(config *Config) {
	setString(&config.EndpointAddr, "ADDRESS")
	setString(&config.StoreURI, "MONGO_URI")
	setString(&config.StoreName, "MONGO_DB")
	setString(&config.SecretKey, "SECRET_KEY")
	setString(&config.LLMProvider, "LLM_PROVIDER")
	setString(&config.LLMModel, "LLM_MODEL")
	setString(&config.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&config.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&config.StartupMode, "STARTUP_MODE")

	setDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	setDuration(&config.RefreshTokenValidityDuration, "REFRESH_TOKEN_TTL")

	if v, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		config.CORSAllowedOrigins = origins
	}
}

func setString(target *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*target = v
	}
}

func setDuration(target *time.Duration, name string) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*target = d
	}
}
