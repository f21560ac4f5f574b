package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/carbo/internal/matcher"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Carbo"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"carbo"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
	}

	Auth struct {
		// JWTSecret enables company scoping; leave empty to run unscoped.
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	Matching struct {
		VATConfidence      float64       `envconfig:"MATCH_VAT_CONFIDENCE" default:"0.95"`
		AccountConfidence  float64       `envconfig:"MATCH_ACCOUNT_CONFIDENCE" default:"0.85"`
		SupplierConfidence float64       `envconfig:"MATCH_SUPPLIER_CONFIDENCE" default:"0.75"`
		Tier2Penalty       float64       `envconfig:"MATCH_TIER2_PENALTY" default:"0.10"`
		Tier3Penalty       float64       `envconfig:"MATCH_TIER3_PENALTY" default:"0.20"`
		Tier4Penalty       float64       `envconfig:"MATCH_TIER4_PENALTY" default:"0.30"`
		TierFloors         []float64     `envconfig:"MATCH_TIER_FLOORS" default:"0.95,0.85,0.75,0.65"`
		LearningEnabled    bool          `envconfig:"MATCH_LEARNING_ENABLED" default:"true"`
		VATCacheEnabled    bool          `envconfig:"MATCH_VAT_CACHE_ENABLED" default:"true"`
		CacheTTL           time.Duration `envconfig:"MATCH_CACHE_TTL" default:"720h"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// MatcherConfig folds the environment overrides into the matcher defaults.
func (c *Config) MatcherConfig() matcher.Config {
	cfg := matcher.DefaultConfig()
	cfg.VATConfidence = c.Matching.VATConfidence
	cfg.AccountConfidence = c.Matching.AccountConfidence
	cfg.SupplierConfidence = c.Matching.SupplierConfidence
	cfg.Tier2Penalty = c.Matching.Tier2Penalty
	cfg.Tier3Penalty = c.Matching.Tier3Penalty
	cfg.Tier4Penalty = c.Matching.Tier4Penalty

	if len(c.Matching.TierFloors) == len(cfg.TierFloors) {
		copy(cfg.TierFloors[:], c.Matching.TierFloors)
	}
	cfg.LearningEnabled = c.Matching.LearningEnabled
	cfg.VATCacheEnabled = c.Matching.VATCacheEnabled
	cfg.CacheTTL = c.Matching.CacheTTL

	return cfg
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
