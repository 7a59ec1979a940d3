// Package workflow orchestrates the end-to-end provisioning state machine:
// credential generation, domain selection, registration request,
// verification-email polling, code submission and finalization.
package workflow

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dmitrijs2005/dadgen/internal/accounts"
	"github.com/dmitrijs2005/dadgen/internal/common"
	"github.com/dmitrijs2005/dadgen/internal/credgen"
	"github.com/dmitrijs2005/dadgen/internal/logging"
	"github.com/dmitrijs2005/dadgen/internal/mailbox"
	"github.com/dmitrijs2005/dadgen/internal/registrar"
)

// Mailbox is the slice of the temp-mail client the workflow consumes.
type Mailbox interface {
	Domains(ctx context.Context) ([]string, error)
	Messages(ctx context.Context, digest string) ([]mailbox.Message, error)
}

// Registrar is the slice of the registration client the workflow consumes.
type Registrar interface {
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (bool, error)
	Finalize(ctx context.Context, email, username, password string) (registrar.Registration, error)
}

// Store receives the finalized record. A record is written exactly once,
// only on full success.
type Store interface {
	Add(a accounts.Account) error
}

// Options tunes the polling and batch policy. The zero value gets the
// defaults applied by NewService.
type Options struct {
	// PollInterval and PollAttempts bound the verification-email wait;
	// the total wait is their product.
	PollInterval time.Duration
	PollAttempts int

	// BatchPause is the delay between attempts of GenerateMany.
	BatchPause time.Duration

	LocalPartLength int
	PasswordLength  int
}

const (
	DefaultPollInterval = time.Second
	DefaultPollAttempts = 60
	DefaultBatchPause   = time.Second
)

func (o *Options) applyDefaults() {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.PollAttempts <= 0 {
		o.PollAttempts = DefaultPollAttempts
	}
	if o.BatchPause <= 0 {
		o.BatchPause = DefaultBatchPause
	}
	if o.LocalPartLength <= 0 {
		o.LocalPartLength = credgen.DefaultLocalPartLength
	}
	if o.PasswordLength <= 0 {
		o.PasswordLength = credgen.MinPasswordLength
	}
}

// randomLocalPart is a test seam for credgen.RandomLocalPart.
var randomLocalPart = credgen.RandomLocalPart

// Service runs provisioning attempts against a mailbox provider and a
// registration endpoint, persisting successful results.
type Service struct {
	mailbox   Mailbox
	registrar Registrar
	store     Store
	opts      Options
	log       logging.Logger

	now func() time.Time
}

// NewService constructs a workflow service. Zero fields of opts fall back
// to defaults.
func NewService(m Mailbox, r Registrar, store Store, opts Options, log logging.Logger) *Service {
	opts.applyDefaults()
	return &Service{
		mailbox:   m,
		registrar: r,
		store:     store,
		opts:      opts,
		log:       log,
		now:       time.Now,
	}
}

// Generate provisions one account end to end and persists it. On failure it
// returns a *Error naming the stage; nothing is written to the store and
// the half-built session is discarded.
func (s *Service) Generate(ctx context.Context) (*accounts.Account, error) {
	domains, err := s.mailbox.Domains(ctx)
	if err != nil {
		return nil, failed(StageDomains, err)
	}
	if len(domains) == 0 {
		return nil, failed(StageDomains, common.ErrNoDomains)
	}

	domain := domains[rand.IntN(len(domains))]
	local := randomLocalPart(s.opts.LocalPartLength)
	email := local + domain
	digest := credgen.MailboxDigest(email)

	s.log.Info(ctx, "composed address", "email", email, "digest", digest)

	if err := s.registrar.RequestCode(ctx, email); err != nil {
		return nil, failed(StageRequestCode, err)
	}

	code, err := s.awaitCode(ctx, digest)
	if err != nil {
		return nil, failed(StageAwaitEmail, err)
	}
	s.log.Info(ctx, "verification code received", "email", email)

	ok, err := s.registrar.VerifyCode(ctx, email, code)
	if err != nil {
		return nil, failed(StageVerify, err)
	}
	if !ok {
		return nil, failed(StageVerify, fmt.Errorf("%w: code rejected", common.ErrRequestFailed))
	}

	password, err := credgen.StrongPassword(s.opts.PasswordLength)
	if err != nil {
		return nil, failed(StageFinalize, err)
	}

	reg, err := s.registrar.Finalize(ctx, email, local, password)
	if err != nil {
		return nil, failed(StageFinalize, err)
	}

	username := reg.Username
	if username == "" {
		username = local
	}

	account := accounts.Account{
		Username:         username,
		Email:            email,
		Password:         password,
		VerificationCode: code,
		Cookie:           reg.Cookie,
		MailboxHash:      digest,
		CreatedAt:        s.now().Format(accounts.CreatedAtLayout),
	}

	if err := s.store.Add(account); err != nil {
		return nil, failed(StageFinalize, fmt.Errorf("persist account: %w", err))
	}

	s.log.Info(ctx, "account provisioned", "username", username, "email", email)
	return &account, nil
}

// awaitCode polls the mailbox until a message with the verification subject
// yields a six-character code, for at most PollAttempts attempts. Fetch
// errors count as empty polls; the provider regularly answers late.
func (s *Service) awaitCode(ctx context.Context, digest string) (string, error) {
	for attempt := 1; attempt <= s.opts.PollAttempts; attempt++ {
		msgs, err := s.mailbox.Messages(ctx, digest)
		if err != nil {
			s.log.Warn(ctx, "mailbox poll failed", "attempt", attempt, "error", err)
		}

		for _, m := range msgs {
			if m.Subject != mailbox.VerificationSubject {
				continue
			}
			if code := mailbox.ExtractCode(m.Text); code != "" {
				return code, nil
			}
		}

		if attempt == s.opts.PollAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.opts.PollInterval):
		}
	}
	return "", common.ErrPollTimeout
}

// LatestCode recomputes the mailbox digest for an address the caller
// already owns and polls until any message yields a code, returning the
// most recent one per poll. Messages are not filtered by subject here; the
// newest code wins regardless of which email carried it.
//
// There is no attempt limit: the caller's context is the only exit, so
// always pass one with a deadline or cancellation.
func (s *Service) LatestCode(ctx context.Context, email string) (string, error) {
	digest := credgen.MailboxDigest(email)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		msgs, err := s.mailbox.Messages(ctx, digest)
		if err != nil {
			s.log.Warn(ctx, "mailbox poll failed", "email", email, "error", err)
		}

		var last string
		for _, m := range msgs {
			if code := mailbox.ExtractCode(m.Text); code != "" {
				last = code
			}
		}
		if last != "" {
			return last, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.opts.PollInterval):
		}
	}
}
