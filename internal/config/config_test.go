package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CART_STORAGE", "")
	t.Setenv("CART_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "storefrontCart", cfg.Cart.Namespace)
	require.Equal(t, "redis", cfg.Cart.Storage)
	require.Equal(t, 30*24*time.Hour, cfg.Cart.TTL)
	require.True(t, cfg.UsesRedis())
	require.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CART_STORAGE", "memory")
	t.Setenv("CART_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.UsesRedis())
	require.Equal(t, 2*time.Hour, cfg.Cart.TTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSAllowedOrigins)
	require.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	t.Setenv("CART_STORAGE", "")
	cfg, err := Load()
	require.NoError(t, err)

	bad := *cfg
	bad.JWT.Secret = "short"
	require.Error(t, bad.Validate())

	bad = *cfg
	bad.Cart.Storage = "disk"
	require.Error(t, bad.Validate())

	bad = *cfg
	bad.Cart.Storage = "redis"
	bad.Redis.Host = ""
	require.Error(t, bad.Validate())

	bad = *cfg
	bad.Email.Provider = "pigeon"
	require.Error(t, bad.Validate())

	bad = *cfg
	bad.Cart.Storage = "memory"
	bad.Redis.Host = ""
	require.NoError(t, bad.Validate())
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}}
	require.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())
}
