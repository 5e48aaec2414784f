package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "eventregistration", cfg.Database.Name)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "events_prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "events_prod", cfg.Database.Name)
}

func TestDatabase_DSN(t *testing.T) {
	d := Database{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "secret",
		Name:     "events",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=events sslmode=disable",
		d.DSN())
}
