package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/dadgen/internal/accounts"
	"github.com/dmitrijs2005/dadgen/internal/common"
	"github.com/dmitrijs2005/dadgen/internal/workflow"
)

// list renders the filtered view when a filter is active, the full
// collection otherwise, and remembers what was rendered for numeric
// selection.
func (a *App) list() {
	if a.filter.Active() {
		a.view = a.store.Search(a.filter)
		fmt.Fprintf(a.out, "Filtered view (%d of %d accounts):\n", len(a.view), a.store.Len())
	} else {
		a.view = a.store.All()
		fmt.Fprintf(a.out, "Accounts (%d):\n", len(a.view))
	}

	if len(a.view) == 0 {
		fmt.Fprintln(a.out, "  (none)")
		return
	}

	for i, acc := range a.view {
		var tags []string
		if acc.IsLegendary {
			tags = append(tags, "legendary")
		}
		if acc.IsBanned {
			tags = append(tags, "banned")
		}
		if acc.IsTempBanned {
			tags = append(tags, "temp-banned")
		}
		tagText := ""
		if len(tags) > 0 {
			tagText = " [" + strings.Join(tags, ",") + "]"
		}
		fmt.Fprintf(a.out, "  %2d. %-16s %-28s %-12s %s%s\n",
			i+1, acc.Username, maskEmail(acc.Email), maskPassword(acc.Password), acc.CreatedAt, tagText)
	}
}

func (a *App) search(args []string) {
	a.filter.Term = strings.Join(args, " ")
	a.list()
}

func (a *App) toggleCategory(cmd string, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(a.out, "Usage: %s <legendary|banned|tempban|free>\n", cmd)
		return
	}
	visible := cmd == "show"
	switch args[0] {
	case "legendary":
		a.filter.ShowLegendary = visible
	case "banned":
		a.filter.ShowBanned = visible
	case "tempban":
		a.filter.ShowTempBanned = visible
	case "free":
		a.filter.ShowFree = visible
	default:
		fmt.Fprintln(a.out, "Unknown category:", args[0])
		return
	}
	a.list()
}

// generate queues n provisioning jobs onto the worker pool. A single job
// runs one workflow; n > 1 runs as one sequential batch, matching the
// workflow's batch semantics.
func (a *App) generate(ctx context.Context, args []string) {
	n := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			fmt.Fprintln(a.out, "Usage: generate [n]")
			return
		}
		n = parsed
	}

	if n == 1 {
		// TryGo keeps the REPL responsive when all workers are taken.
		queued := a.jobs.TryGo(func() error {
			account, err := a.svc.Generate(ctx)
			if err != nil {
				fmt.Fprintf(a.out, "\ngeneration failed: %s\n", describeFailure(err))
				return nil
			}
			fmt.Fprintf(a.out, "\naccount ready: %s (%s)\n", account.Username, account.Email)
			return nil
		})
		if !queued {
			fmt.Fprintln(a.out, "All workers are busy; try again when a job finishes.")
			return
		}
		fmt.Fprintln(a.out, "Generation queued.")
		return
	}

	queued := a.jobs.TryGo(func() error {
		results := a.svc.GenerateMany(ctx, n)
		ok := 0
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(a.out, "\nattempt %d (%s) failed: %s\n", res.Attempt, res.ID, describeFailure(res.Err))
				continue
			}
			ok++
			fmt.Fprintf(a.out, "\nattempt %d (%s): account %s ready\n", res.Attempt, res.ID, res.Account.Username)
		}
		fmt.Fprintf(a.out, "\nbatch done: %d/%d succeeded\n", ok, n)
		return nil
	})
	if !queued {
		fmt.Fprintln(a.out, "All workers are busy; try again when a job finishes.")
		return
	}
	fmt.Fprintf(a.out, "Batch of %d queued.\n", n)
}

// grabCode polls for the newest verification code of an address the user
// already owns. The poll has no attempt limit, so it runs under the
// configured deadline; a second of patience is the user's, not ours.
func (a *App) grabCode(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: code <email>")
		return
	}
	email := args[0]

	pollCtx, cancel := context.WithTimeout(ctx, a.cfg.CodeTimeout)
	defer cancel()

	fmt.Fprintf(a.out, "Polling for the newest code (up to %s)...\n", a.cfg.CodeTimeout)
	code, err := a.svc.LatestCode(pollCtx, email)
	if err != nil {
		fmt.Fprintf(a.out, "No code retrieved: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Latest code for %s: %s\n", email, code)

	// Refresh the stored record when the address is one of ours.
	for _, acc := range a.store.All() {
		if acc.Email == email {
			if err := a.store.SetVerificationCode(acc.Username, acc.Email, code); err != nil {
				fmt.Fprintf(a.out, "Could not update stored code: %v\n", err)
			}
			return
		}
	}
}

func (a *App) toggleStatus(args []string, flag string) {
	if len(args) != 1 {
		fmt.Fprintf(a.out, "Usage: %s <#>\n", flag)
		return
	}
	acc, err := a.selectRecord(args[0])
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}

	var st accounts.Status
	var next bool
	switch flag {
	case "legendary":
		next = !acc.IsLegendary
		st.Legendary = &next
	case "ban":
		next = !acc.IsBanned
		st.Banned = &next
	case "tempban":
		next = !acc.IsTempBanned
		st.TempBanned = &next
	}

	if err := a.store.SetStatus(acc.Username, acc.Email, st); err != nil {
		fmt.Fprintln(a.out, err)
		return
	}
	fmt.Fprintf(a.out, "%s: %s = %v\n", acc.Username, flag, next)
	a.list()
}

func (a *App) editNotes(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: notes <#>")
		return
	}
	acc, err := a.selectRecord(args[0])
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}

	if acc.Notes != "" {
		fmt.Fprintf(a.out, "Current notes:\n%s\n", acc.Notes)
	}
	notes, err := GetMultiline(a.reader, "Enter new notes", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}
	if err := a.store.SetNotes(acc.Username, acc.Email, notes); err != nil {
		fmt.Fprintln(a.out, err)
		return
	}
	fmt.Fprintln(a.out, "Notes updated.")
}

func (a *App) reveal(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: reveal <#>")
		return
	}
	acc, err := a.selectRecord(args[0])
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}

	fmt.Fprintf(a.out, "Username:          %s\n", acc.Username)
	fmt.Fprintf(a.out, "Email:             %s\n", acc.Email)
	fmt.Fprintf(a.out, "Password:          %s\n", acc.Password)
	fmt.Fprintf(a.out, "Verification code: %s\n", acc.VerificationCode)
	fmt.Fprintf(a.out, "Cookie:            %s\n", acc.Cookie)
	fmt.Fprintf(a.out, "Mailbox hash:      %s\n", acc.MailboxHash)
	fmt.Fprintf(a.out, "Created:           %s\n", acc.CreatedAt)
	if acc.Notes != "" {
		fmt.Fprintf(a.out, "Notes:\n%s\n", acc.Notes)
	}
}

func (a *App) deleteRecord(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete <#>")
		return
	}
	acc, err := a.selectRecord(args[0])
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete %s (%s)? [y/N]", acc.Username, acc.Email), a.out)
	if err != nil || !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}
	if err := a.store.Delete(acc.Username, acc.Email); err != nil {
		fmt.Fprintln(a.out, err)
		return
	}
	fmt.Fprintln(a.out, "Deleted.")
	a.list()
}

func (a *App) reload() {
	if err := a.store.Load(); err != nil {
		fmt.Fprintln(a.out, err)
		return
	}
	fmt.Fprintf(a.out, "Reloaded %d accounts.\n", a.store.Len())
}

// describeFailure maps a workflow error to the stage wording shown to the
// user.
func describeFailure(err error) string {
	var stageErr *workflow.Error
	if !errors.As(err, &stageErr) {
		return err.Error()
	}
	switch {
	case errors.Is(err, common.ErrNoDomains):
		return "no mailbox domains available"
	case errors.Is(err, common.ErrPollTimeout):
		return "verification email never arrived"
	default:
		return fmt.Sprintf("failed at stage %s: %v", stageErr.Stage, stageErr.Err)
	}
}
