package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"Admins", "Developers", "Auditors"}, cfg.Groups)
	assert.Equal(t, "stackusers", cfg.SecretNamespace)
	assert.Equal(t, 14, cfg.PasswordLength)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("STACKUSERS_SECRET_NAMESPACE", "platform/users")
	t.Setenv("STACKUSERS_PASSWORD_LENGTH", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "platform/users", cfg.SecretNamespace)
	assert.Equal(t, 20, cfg.PasswordLength)
}
