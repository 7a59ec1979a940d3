package workflow

import (
	"context"
	"time"

	"github.com/dmitrijs2005/dadgen/internal/accounts"
	"github.com/google/uuid"
)

// Result is the outcome of one attempt of a batch run. Exactly one of
// Account and Err is set.
type Result struct {
	// ID correlates the attempt across log lines and reports.
	ID      uuid.UUID
	Attempt int

	Account *accounts.Account
	Err     error
}

// GenerateMany runs the single-account workflow n times sequentially with a
// pause between attempts. Attempts are independent: a failure is recorded
// and the batch moves on. Cancelling ctx stops the batch after the current
// attempt; completed attempts keep their results.
func (s *Service) GenerateMany(ctx context.Context, n int) []Result {
	results := make([]Result, 0, n)

	for i := 1; i <= n; i++ {
		id := uuid.New()
		log := s.log.With("batch_id", id.String(), "attempt", i)
		log.Info(ctx, "starting attempt", "total", n)

		account, err := s.Generate(ctx)
		if err != nil {
			log.Error(ctx, "attempt failed", "error", err)
		} else {
			log.Info(ctx, "attempt succeeded", "username", account.Username)
		}
		results = append(results, Result{ID: id, Attempt: i, Account: account, Err: err})

		if ctx.Err() != nil || i == n {
			break
		}
		select {
		case <-ctx.Done():
			return results
		case <-time.After(s.opts.BatchPause):
		}
	}

	return results
}
