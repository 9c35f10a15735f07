package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dkotenko/botgate/internal/flagx"
	"github.com/dkotenko/botgate/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. Interval fields use timex.Duration, which parses
// both string values such as "720h" and integer nanoseconds. After
// unmarshalling, non-zero fields are copied into the runtime Config.
type JsonConfig struct {
	Addr           string         `json:"address"`
	DatabaseDSN    string         `json:"database_dsn"`
	HashSalt       string         `json:"hash_salt"`
	JWTSecret      string         `json:"jwt_secret"`
	TokenTTL       timex.Duration `json:"token_ttl"`
	BotToken       string         `json:"bot_token"`
	WebAppURL      string         `json:"web_app_url"`
	AllowedOrigins []string       `json:"allowed_origins"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flags. If neither flag is set, no file is loaded.
func parseJson(config *Config) error {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return nil
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("config file read error: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("config file parse error: %w", err)
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
	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = time.Duration(c.TokenTTL.Duration)
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
