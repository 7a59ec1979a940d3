package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/dadgen/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-k string   temp-mail API key
//	-f string   accounts file path
//	-i int      verification-email poll interval in seconds
//	-n int      verification-email poll attempts
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-k", "-f", "-i", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "temp-mail API key")
	fs.StringVar(&cfg.AccountsFile, "f", cfg.AccountsFile, "accounts file path")
	pollInterval := fs.Int("i", int(cfg.PollInterval.Seconds()), "poll interval (in seconds)")
	fs.IntVar(&cfg.PollAttempts, "n", cfg.PollAttempts, "poll attempts")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.PollInterval = time.Duration(*pollInterval) * time.Second
}
