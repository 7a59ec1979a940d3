package config

import (
	"time"

	"github.com/dmitrijs2005/dadgen/internal/credgen"
	"github.com/dmitrijs2005/dadgen/internal/mailbox"
	"github.com/dmitrijs2005/dadgen/internal/registrar"
)

// DefaultEnvFile is the env file consulted when -c/-config is not given.
// The API key prompted for on first run is written back here.
const DefaultEnvFile = "dadgen.env"

// Config holds runtime settings for the dadgen CLI.
type Config struct {
	// APIKey authenticates against the temp-mail provider.
	APIKey string

	// EnvFile is the resolved env file path, kept for API key write-back.
	EnvFile string

	AccountsFile     string
	MailboxBaseURL   string
	RegistrarBaseURL string

	// PollInterval × PollAttempts bounds the verification-email wait.
	PollInterval time.Duration
	PollAttempts int

	BatchPause  time.Duration
	CodeTimeout time.Duration

	LocalPartLength int
	PasswordLength  int

	// Workers caps concurrent background generation jobs.
	Workers int

	HTTPTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EnvFile = DefaultEnvFile
	c.AccountsFile = "DaDAccounts.txt"
	c.MailboxBaseURL = mailbox.DefaultBaseURL
	c.RegistrarBaseURL = registrar.DefaultBaseURL
	c.PollInterval = time.Second
	c.PollAttempts = 60
	c.BatchPause = time.Second
	c.CodeTimeout = 2 * time.Minute
	c.LocalPartLength = credgen.DefaultLocalPartLength
	c.PasswordLength = credgen.MinPasswordLength
	c.Workers = 4
	c.HTTPTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the env file (if present), the process environment and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnvFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
