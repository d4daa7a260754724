package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gopayrest "github.com/vikijel/gopayrest"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("GOPAY_CLIENT_ID", "client-1")
	t.Setenv("GOPAY_CLIENT_SECRET", "secret-1")
	t.Setenv("GOPAY_GOID", "8123456789")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	settings, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "client-1", settings.ClientID)
	assert.Equal(t, gopayrest.ModeTest, settings.Mode)
	assert.Equal(t, "EN", settings.Lang)
	assert.Equal(t, "EUR", settings.Currency)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOPAY_MODE", "production")
	t.Setenv("GOPAY_LANG", "cs")
	t.Setenv("GOPAY_CURRENCY", "CZK")

	settings, err := Load()

	require.NoError(t, err)
	assert.Equal(t, gopayrest.ModeProduction, settings.Mode)
	assert.Equal(t, "cs", settings.Lang)
	assert.Equal(t, "CZK", settings.Currency)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("GOPAY_CLIENT_ID", "client-1")
	t.Setenv("GOPAY_CLIENT_SECRET", "")
	t.Setenv("GOPAY_GOID", "")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOPAY_CLIENT_SECRET")
	assert.Contains(t, err.Error(), "GOPAY_GOID")
	assert.NotContains(t, err.Error(), "GOPAY_CLIENT_ID")
}

func TestSettings_Config(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOPAY_LANG", "cs")
	t.Setenv("GOPAY_CURRENCY", "czk")

	settings, err := Load()
	require.NoError(t, err)

	cfg, err := settings.Config()
	require.NoError(t, err)

	assert.Equal(t, "CS", cfg.Lang())
	assert.Equal(t, "CZK", cfg.Currency())
	assert.Equal(t, gopayrest.APIURLTest, cfg.APIURL(""))
}

func TestSettings_Config_InvalidCurrency(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GOPAY_CURRENCY", "EURO")

	settings, err := Load()
	require.NoError(t, err)

	_, err = settings.Config()
	require.Error(t, err)
}
