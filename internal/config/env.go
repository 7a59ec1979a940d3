package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/dadgen/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment keys. The env file uses the same names.
const (
	envAPIKey       = "TEMPMAIL_API_KEY"
	envAccountsFile = "DADGEN_ACCOUNTS_FILE"
	envMailboxURL   = "DADGEN_MAILBOX_URL"
	envRegistrarURL = "DADGEN_REGISTRAR_URL"
	envPollInterval = "DADGEN_POLL_INTERVAL"
	envPollAttempts = "DADGEN_POLL_ATTEMPTS"
	envBatchPause   = "DADGEN_BATCH_PAUSE"
	envCodeTimeout  = "DADGEN_CODE_TIMEOUT"
	envWorkers      = "DADGEN_WORKERS"
)

// parseEnvFile loads the env file into the process environment. The path
// comes from the -c/-config flags, falling back to DefaultEnvFile. A
// missing file is fine; the first run has nothing to load yet.
func parseEnvFile(cfg *Config) {
	path := flagx.EnvFileFlags()
	if path == "" {
		path = DefaultEnvFile
	}
	cfg.EnvFile = path

	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		panic(err)
	}
}

// parseEnv overlays Config with values from the process environment.
func parseEnv(cfg *Config) {
	cfg.APIKey = getEnvString(envAPIKey, cfg.APIKey)
	cfg.AccountsFile = getEnvString(envAccountsFile, cfg.AccountsFile)
	cfg.MailboxBaseURL = getEnvString(envMailboxURL, cfg.MailboxBaseURL)
	cfg.RegistrarBaseURL = getEnvString(envRegistrarURL, cfg.RegistrarBaseURL)
	cfg.PollInterval = getEnvDuration(envPollInterval, cfg.PollInterval)
	cfg.PollAttempts = getEnvInt(envPollAttempts, cfg.PollAttempts)
	cfg.BatchPause = getEnvDuration(envBatchPause, cfg.BatchPause)
	cfg.CodeTimeout = getEnvDuration(envCodeTimeout, cfg.CodeTimeout)
	cfg.Workers = getEnvInt(envWorkers, cfg.Workers)
}

// SaveAPIKey persists the API key to the env file, keeping any other
// entries the file already has.
func SaveAPIKey(path, key string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		env = map[string]string{}
	}
	env[envAPIKey] = key
	return godotenv.Write(env, path)
}

func getEnvString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(strings.TrimSpace(value))
		if err == nil {
			return parsed
		}
	}
	return fallback
}
