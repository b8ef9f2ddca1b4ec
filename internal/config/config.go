package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the process-wide settings.
type Config struct {
	Port string // server port (8080)

	APIKey     string // shared API key for X-API-Key
	HMACSecret string // HMAC signing secret for X-Signature

	ToleranceSeconds   int // allowed clock skew for X-Timestamp
	RateLimitMax       int // requests allowed per window per client IP
	RateLimitWindowSec int // rate-limit window length in seconds

	SellerWebhookURL string // outbound notification target, optional

	GoEnv string // dev/prod
	FEURL string // frontend origin for CORS
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		APIKey:     os.Getenv("API_KEY"),
		HMACSecret: os.Getenv("HMAC_SECRET"),

		SellerWebhookURL: os.Getenv("SELLER_WEBHOOK_URL"),

		GoEnv: os.Getenv("GO_ENV"),
		FEURL: os.Getenv("FE_URL"),
	}

	// required
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("API_KEY is required")
	}
	if cfg.HMACSecret == "" {
		return Config{}, fmt.Errorf("HMAC_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	var err error
	cfg.ToleranceSeconds, err = intOrDefault("HMAC_TOLERANCE_SECONDS", 300)
	if err != nil {
		return Config{}, err
	}
	cfg.RateLimitMax, err = intOrDefault("RATE_LIMIT_MAX", 60)
	if err != nil {
		return Config{}, err
	}
	cfg.RateLimitWindowSec, err = intOrDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	if err != nil {
		return Config{}, err
	}

	if cfg.ToleranceSeconds <= 0 {
		return Config{}, fmt.Errorf("HMAC_TOLERANCE_SECONDS must be positive")
	}
	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindowSec <= 0 {
		return Config{}, fmt.Errorf("rate limit settings must be positive")
	}

	return cfg, nil
}

func intOrDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
