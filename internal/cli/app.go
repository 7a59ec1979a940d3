// Package cli is the interactive front end: a small REPL that drives the
// provisioning workflow and the account store. It owns presentation-only
// state (current filter, last rendered listing) and never reaches into the
// core beyond the operation surface.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/dadgen/internal/accounts"
	"github.com/dmitrijs2005/dadgen/internal/config"
	"github.com/dmitrijs2005/dadgen/internal/logging"
	"github.com/dmitrijs2005/dadgen/internal/mailbox"
	"github.com/dmitrijs2005/dadgen/internal/registrar"
	"github.com/dmitrijs2005/dadgen/internal/workflow"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg   *config.Config
	store *accounts.Store
	svc   *workflow.Service
	log   logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// jobs is the background generation pool. Its size cap keeps a pile of
	// "generate" commands from fanning out into unbounded network calls.
	jobs *errgroup.Group

	// filter and view are presentation state. view is the last rendered
	// listing; numeric command arguments index into it and are resolved to
	// the record's (username, email) identity before touching the store.
	filter accounts.Filter
	view   []accounts.Account
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		filter: accounts.ShowAll(),
	}

	if cfg.APIKey == "" {
		key, err := GetSecret(a.reader, "Enter your temp-mail API key", a.out)
		if err != nil {
			return nil, fmt.Errorf("read api key: %w", err)
		}
		if key == "" {
			return nil, fmt.Errorf("no api key provided")
		}
		cfg.APIKey = key
		if err := config.SaveAPIKey(cfg.EnvFile, key); err != nil {
			log.Warn(context.Background(), "could not save api key", "file", cfg.EnvFile, "error", err)
		} else {
			fmt.Fprintf(a.out, "API key saved to %s\n", cfg.EnvFile)
		}
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	mb, err := mailbox.NewClient(httpClient, mailbox.Settings{
		BaseURL: cfg.MailboxBaseURL,
		APIKey:  cfg.APIKey,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("mailbox client: %w", err)
	}

	reg := registrar.NewClient(httpClient, registrar.Settings{
		BaseURL: cfg.RegistrarBaseURL,
	}, log)

	a.store = accounts.NewStore(cfg.AccountsFile, log)
	if err := a.store.Load(); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	a.svc = workflow.NewService(mb, reg, a.store, workflow.Options{
		PollInterval:    cfg.PollInterval,
		PollAttempts:    cfg.PollAttempts,
		BatchPause:      cfg.BatchPause,
		LocalPartLength: cfg.LocalPartLength,
		PasswordLength:  cfg.PasswordLength,
	}, log)

	a.jobs = &errgroup.Group{}
	a.jobs.SetLimit(cfg.Workers)

	return a, nil
}

// Run starts the REPL and blocks until the user exits or ctx is cancelled.
// In-flight generation jobs are awaited before returning.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)

	fmt.Fprintln(a.out, "Waiting for running jobs...")
	_ = a.jobs.Wait()
	fmt.Fprintln(a.out, "Bye!")
}

// selectRecord resolves a 1-based listing number to the record's identity
// and re-reads it from the store. Listing positions shift with filtering
// and deletion, so they are never used as store indices.
func (a *App) selectRecord(arg string) (accounts.Account, error) {
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil {
		return accounts.Account{}, fmt.Errorf("not a listing number: %q", arg)
	}
	if n < 1 || n > len(a.view) {
		return accounts.Account{}, fmt.Errorf("no row %d in the last listing (run 'list' first)", n)
	}
	picked := a.view[n-1]
	return a.store.Get(picked.Username, picked.Email)
}

func maskEmail(email string) string {
	if len(email) <= 5 {
		return email
	}
	return email[:5] + strings.Repeat("*", len(email)-5)
}

func maskPassword(password string) string {
	return strings.Repeat("*", len(password))
}
