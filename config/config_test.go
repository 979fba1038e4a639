package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GATEWAY_DRIVER", "memory")
	t.Setenv("ADMIN_EMAIL", " Owner@Sodfaa.com ")
	t.Setenv("ADMIN_EMAILS", "a@sodfaa.com, B@sodfaa.com,,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.GatewayDriver)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, []string{"a@sodfaa.com", "b@sodfaa.com"}, cfg.AdminEmails)

	assert.True(t, cfg.IsAdminEmail("owner@sodfaa.com"))
	assert.True(t, cfg.IsAdminEmail("B@SODFAA.com"))
	assert.False(t, cfg.IsAdminEmail("someone@else.com"))
	assert.False(t, cfg.IsAdminEmail(""))
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("GATEWAY_DRIVER", "firestore")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateProductionSecrets(t *testing.T) {
	cfg := &Config{GatewayDriver: "postgres", Env: "production"}
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "secret"
	cfg.SessionSecret = "session"
	assert.NoError(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "sodfaa"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=sodfaa sslmode=disable", cfg.DSN())
}
