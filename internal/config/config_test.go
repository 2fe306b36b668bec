package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	config, err := InitializeConfig()

	require.NoError(t, err)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "custom_rules.json", config.Rules.File)
	assert.Equal(t, "categories.yaml", config.Rules.Categories)
	assert.Equal(t, "Checking", config.Account.Tag)
	assert.False(t, config.Suggest.Enabled)
	assert.Equal(t, "gemini-2.0-flash", config.Suggest.Model)
	assert.Equal(t, ":8080", config.Server.Listen)
}

func TestInitializeConfig_EnvironmentOverride(t *testing.T) {
	t.Setenv("STMT_ACCOUNT_TAG", "Savings")
	t.Setenv("STMT_LOG_LEVEL", "debug")

	config, err := InitializeConfig()

	require.NoError(t, err)
	assert.Equal(t, "Savings", config.Account.Tag)
	assert.Equal(t, "debug", config.Log.Level)
}

func TestInitializeConfig_GeminiKeyBinding(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	config, err := InitializeConfig()

	require.NoError(t, err)
	assert.Equal(t, "test-key", config.Suggest.APIKey)
}

func TestInitializeConfig_InvalidLogLevel(t *testing.T) {
	t.Setenv("STMT_LOG_LEVEL", "verbose")

	_, err := InitializeConfig()

	assert.Error(t, err)
}

func TestInitializeConfig_InvalidDelimiter(t *testing.T) {
	t.Setenv("STMT_CSV_DELIMITER", ";;")

	_, err := InitializeConfig()

	assert.Error(t, err)
}

func TestConfigureLogging_Level(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	logger := ConfigureLogging()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestConfigureLogging_JSONFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")

	logger := ConfigureLogging()

	_, ok := logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)
}

func TestConfigureLogging_DefaultsToInfo(t *testing.T) {
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	logger := ConfigureLogging()

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
