package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.NotEmpty(t, cfg.Session.File)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "secret", cfg.Sandbox.Password)
	assert.Zero(t, cfg.Sandbox.BcryptCost)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("API_URL", "https://bodegas.example.com/api/")
	v.Set("HTTP_TIMEOUT_SECONDS", "3")
	v.Set("SESSION_FILE", "/tmp/sesion.json")
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("SANDBOX_BCRYPT_COST", "4")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "https://bodegas.example.com/api", cfg.API.BaseURL, "la barra final se elimina")
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/sesion.json", cfg.Session.File)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 4, cfg.Sandbox.BcryptCost)
}

func TestFromViper_TimeoutInvalido(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_TIMEOUT_SECONDS", 0)

	_, err := fromViper(v)
	assert.Error(t, err)
}
