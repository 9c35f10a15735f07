package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T) {
	t.Helper()
	oldArgs := os.Args
	os.Args = []string{"cmd"}
	t.Cleanup(func() { os.Args = oldArgs })
}

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	assert.Equal(t, ":4000", c.Addr)
	assert.Equal(t, 720*time.Hour, c.TokenTTL)
	assert.NotEmpty(t, c.DatabaseDSN)
	assert.NotEmpty(t, c.AllowedOrigins)
	assert.Empty(t, c.JWTSecret, "secrets must not have defaults")
	assert.Empty(t, c.HashSalt)
	assert.Empty(t, c.BotToken)
}

func TestValidate_RequiresSecrets(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	assert.Error(t, c.Validate())

	c.HashSalt = "salt"
	assert.Error(t, c.Validate())

	c.JWTSecret = "secret"
	assert.Error(t, c.Validate())

	c.BotToken = "bot:token"
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("SHA512_SALT", "env-salt")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-bot-token")
	t.Setenv("ADDRESS", ":5000")
	t.Setenv("TOKEN_TTL", "48h")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "env-salt", cfg.HashSalt)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "env-bot-token", cfg.BotToken)
	assert.Equal(t, 48*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfig_MissingSecretsFail(t *testing.T) {
	resetArgs(t)
	t.Setenv("SHA512_SALT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{
		"address": ":9999",
		"jwt_secret": "file-secret",
		"token_ttl": "24h"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	oldArgs := os.Args
	os.Args = []string{"cmd", "-c", path}
	t.Cleanup(func() { os.Args = oldArgs })

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseJson(c))

	assert.Equal(t, ":9999", c.Addr)
	assert.Equal(t, "file-secret", c.JWTSecret)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	// Untouched fields keep their defaults.
	assert.NotEmpty(t, c.DatabaseDSN)
}

func TestParseJson_NoFileFlag(t *testing.T) {
	resetArgs(t)

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseJson(c))
	assert.Equal(t, ":4000", c.Addr)
}

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	os.Args = []string{"cmd", "-a", ":7777", "-t", "24"}
	t.Cleanup(func() { os.Args = oldArgs })

	c := &Config{}
	c.LoadDefaults()
	parseFlags(c)

	assert.Equal(t, ":7777", c.Addr)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
}
