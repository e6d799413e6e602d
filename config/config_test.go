package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 20, cfg.Client.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Client.SearchDebounce)
	assert.False(t, cfg.Server.IsDevelopment())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("KOMORA_PAGE_SIZE", "90")
	t.Setenv("KOMORA_SEARCH_DEBOUNCE", "250ms")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("OTEL_STDOUT", "true")

	cfg := LoadEnv()

	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, 90, cfg.Client.PageSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.SearchDebounce)
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns, "invalid ints fall back to the default")
	assert.True(t, cfg.Telemetry.Stdout)
}

func TestPostgresDSN(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "komora", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=komora sslmode=disable", c.DSN())
}
