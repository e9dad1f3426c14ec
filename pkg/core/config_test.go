package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProductionURL, config.BaseURL)
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, "info", config.LogLevel)
	assert.Nil(t, config.Credentials)

	require.NoError(t, config.Validate())
}

func TestConfig_Validate_MissingBaseURL(t *testing.T) {
	config := DefaultConfig()
	config.BaseURL = ""

	assert.Error(t, config.Validate())
}

func TestConfig_Validate_BadLogLevel(t *testing.T) {
	config := DefaultConfig()
	config.LogLevel = "loud"

	assert.Error(t, config.Validate())
}

func TestConfig_Validate_ZeroTimeout(t *testing.T) {
	config := DefaultConfig()
	config.Timeout = 0

	assert.Error(t, config.Validate())
}

func TestConfig_HasCredentials(t *testing.T) {
	config := DefaultConfig()
	assert.False(t, config.HasCredentials())

	config.WithCredentials(&Credentials{AccessKey: "key"})
	assert.False(t, config.HasCredentials())

	config.WithCredentials(&Credentials{AccessKey: "key", SecretKey: "secret"})
	assert.True(t, config.HasCredentials())
}

func TestConfig_Chaining(t *testing.T) {
	config := DefaultConfig().
		WithBaseURL("https://example.test").
		WithTimeout(5 * time.Second).
		WithCredentials(&Credentials{AccessKey: "a", SecretKey: "s"})

	assert.Equal(t, "https://example.test", config.BaseURL)
	assert.Equal(t, 5*time.Second, config.Timeout)
	require.NotNil(t, config.Credentials)
	assert.Equal(t, "a", config.Credentials.AccessKey)
}
