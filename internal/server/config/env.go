package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors Config with env tags. Parsed separately so that unset
// variables do not clobber values from earlier layers.
type envConfig struct {
	Addr           string        `env:"ADDRESS"`
	DatabaseDSN    string        `env:"DATABASE_DSN"`
	HashSalt       string        `env:"SHA512_SALT"`
	JWTSecret      string        `env:"JWT_SECRET"`
	TokenTTL       time.Duration `env:"TOKEN_TTL"`
	BotToken       string        `env:"TELEGRAM_BOT_TOKEN"`
	WebAppURL      string        `env:"WEB_APP_URL"`
	AllowedOrigins []string      `env:"CORS_ORIGINS" envSeparator:","`
}

func parseEnv(config *Config) error {

	c := envConfig{}
	if err := env.Parse(&c); err != nil {
		return err
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.HashSalt != "" {
		config.HashSalt = c.HashSalt
	}
	if c.JWTSecret != "" {
		config.JWTSecret = c.JWTSecret
	}
	if c.TokenTTL != 0 {
		config.TokenTTL = c.TokenTTL
	}
	if c.BotToken != "" {
		config.BotToken = c.BotToken
	}
	if c.WebAppURL != "" {
		config.WebAppURL = c.WebAppURL
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}

	return nil
}
