package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "dadgen CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "dadgen (%d accounts)> ", a.store.Len())
		// Commands and follow-up prompts (confirmations, notes) share one
		// reader so buffered input is never lost between them.
		line, err := a.reader.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return
		}
		if ctx.Err() != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "list", "l":
			a.list()
		case "search":
			a.search(args)
		case "clear":
			a.filter.Term = ""
			a.list()
		case "show", "hide":
			a.toggleCategory(cmd, args)
		case "generate", "g":
			a.generate(ctx, args)
		case "code":
			a.grabCode(ctx, args)
		case "legendary":
			a.toggleStatus(args, "legendary")
		case "ban":
			a.toggleStatus(args, "ban")
		case "tempban":
			a.toggleStatus(args, "tempban")
		case "notes":
			a.editNotes(args)
		case "reveal":
			a.reveal(args)
		case "delete":
			a.deleteRecord(args)
		case "reload":
			a.reload()
		case "exit", "quit":
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	fmt.Fprintln(a.out, `Available commands:
  list                       show accounts (current filter applied)
  search <term>              filter by substring (username/email/password/notes)
  clear                      drop the search term
  show|hide <category>       toggle a category: legendary, banned, tempban, free
  generate [n]               provision n accounts in the background (default 1)
  code <email>               grab the newest verification code for an address
  legendary|ban|tempban <#>  toggle a status flag on listing row #
  notes <#>                  edit notes of listing row #
  reveal <#>                 print full credentials of listing row #
  delete <#>                 delete listing row # (asks for confirmation)
  reload                     re-read the accounts file
  exit                       quit (waits for running jobs)`)
}
