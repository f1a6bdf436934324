package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.App.BaseURL)
	assert.Equal(t, "local", cfg.Cover.Storage)
	assert.Equal(t, "/api/books/cover/", cfg.Cover.RoutePrefix)
	assert.Equal(t, 3*time.Second, cfg.Cover.ConnectTimeout)
	assert.Equal(t, 3*time.Second, cfg.Cover.ReadTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_BASE_URL", "https://books.example.com")
	t.Setenv("COVER_CONNECT_TIMEOUT", "1500ms")
	t.Setenv("COVER_STORAGE", "minio")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://books.example.com", cfg.App.BaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Cover.ConnectTimeout)
	assert.Equal(t, "minio", cfg.Cover.Storage)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown_storage", func(c *Config) { c.Cover.Storage = "s3" }, true},
		{"empty_prefix", func(c *Config) { c.Cover.RoutePrefix = "/" }, true},
		{"prefix_outside_books", func(c *Config) { c.Cover.RoutePrefix = "/covers/" }, true},
		{"prefix_is_books_root", func(c *Config) { c.Cover.RoutePrefix = "/api/books/" }, true},
		{"zero_timeout", func(c *Config) { c.Cover.ReadTimeout = 0 }, true},
		{"production_default_secret", func(c *Config) {
			c.App.Environment = "production"
			c.Database.Password = "pw"
		}, true},
		{"production_ok", func(c *Config) {
			c.App.Environment = "production"
			c.Database.Password = "pw"
			c.JWT.Secret = "real-secret"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				App:   AppConfig{Environment: "development", BaseURL: "http://localhost:8080"},
				JWT:   JWTConfig{Secret: defaultJWTSecret},
				Cover: CoverConfig{Storage: "local", RoutePrefix: "/api/books/cover/", ConnectTimeout: time.Second, ReadTimeout: time.Second},
			}
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
