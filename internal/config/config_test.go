package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, "public/uploads", cfg.Storage.PublicRoot)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	t.Setenv("CATALOG_DATABASE_URL", "postgres://example/db")
	t.Setenv("CATALOG_AUTH_TOKEN_TTL", "2h")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "postgres://example/db", cfg.Database.URL)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadFrom_UnknownDriver(t *testing.T) {
	v := viper.New()
	v.Set("storage.driver", "ftp")

	_, err := LoadFrom(v)
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestRedacted(t *testing.T) {
	cfg := GetDefault()
	cfg.Auth.JWTSecret = "secret"

	red := cfg.Redacted()
	assert.Equal(t, "********", red.Auth.JWTSecret)
	assert.Equal(t, "", red.Storage.MinIO.SecretKey)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
}
