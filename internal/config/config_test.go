package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "DaDAccounts.txt", cfg.AccountsFile)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 60, cfg.PollAttempts)
	assert.Equal(t, time.Second, cfg.BatchPause)
	assert.Equal(t, 2*time.Minute, cfg.CodeTimeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.Empty(t, cfg.APIKey)
	assert.NotEmpty(t, cfg.MailboxBaseURL)
	assert.NotEmpty(t, cfg.RegistrarBaseURL)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv(envAPIKey, "key-from-env")
	t.Setenv(envPollInterval, "5s")
	t.Setenv(envPollAttempts, "12")
	t.Setenv(envWorkers, "2")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "key-from-env", cfg.APIKey)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 12, cfg.PollAttempts)
	assert.Equal(t, 2, cfg.Workers)
	// Untouched values keep their defaults.
	assert.Equal(t, "DaDAccounts.txt", cfg.AccountsFile)
}

func TestParseEnv_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv(envPollInterval, "not-a-duration")
	t.Setenv(envPollAttempts, "many")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 60, cfg.PollAttempts)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"dadgen", "-k", "key-from-flag", "-i", "3", "-n", "20"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "key-from-flag", cfg.APIKey)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
	assert.Equal(t, 20, cfg.PollAttempts)
}

func TestSaveAPIKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dadgen.env")

	require.NoError(t, SaveAPIKey(path, "first-key"))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "first-key", env[envAPIKey])
}

func TestSaveAPIKey_KeepsOtherEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dadgen.env")
	require.NoError(t, godotenv.Write(map[string]string{
		envPollAttempts: "90",
	}, path))

	require.NoError(t, SaveAPIKey(path, "new-key"))

	env, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "new-key", env[envAPIKey])
	assert.Equal(t, "90", env[envPollAttempts])
}
