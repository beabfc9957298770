// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	DBPath         string `env:"DB_PATH" envDefault:"./lorekeeper.db"`
	CatalogDataDir string `env:"CATALOG_DATA_DIR" envDefault:"./data"`
	ImageBundleDir string `env:"IMAGE_BUNDLE_DIR"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	PricingAPIKey        string        `env:"PRICING_API_KEY"`
	PricingDailyLimit    int           `env:"PRICING_DAILY_LIMIT" envDefault:"500"`
	PriceRefreshInterval time.Duration `env:"PRICE_REFRESH_INTERVAL" envDefault:"15m"`
}

// Load parses the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
