package accounts

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Account file format: one block of "Label: value" lines per record in a
// fixed order, closed by a delimiter line and a blank line. The format
// predates this tool; existing files must keep loading, so the reader
// ignores unknown labels and missing status fields default to false.
const (
	labelUsername    = "Username: "
	labelEmail       = "Email: "
	labelPassword    = "Password: "
	labelCode        = "Verification Code: "
	labelCookie      = "Cookie: "
	labelMailboxHash = "MD5 Hash of Email: "
	labelCreatedAt   = "Creation Time: "
	labelLegendary   = "Legendary: "
	labelBanned      = "Banned: "
	labelTempBanned  = "Temp Banned: "
	labelNotes       = "Notes: "
)

var recordDelimiter = strings.Repeat("_", 69)

// encodeAccounts writes the full collection to w, one block per record.
func encodeAccounts(w io.Writer, list []Account) error {
	bw := bufio.NewWriter(w)
	for _, a := range list {
		fmt.Fprintf(bw, "%s%s\n", labelUsername, a.Username)
		fmt.Fprintf(bw, "%s%s\n", labelEmail, a.Email)
		fmt.Fprintf(bw, "%s%s\n", labelPassword, a.Password)
		fmt.Fprintf(bw, "%s%s\n", labelCode, a.VerificationCode)
		fmt.Fprintf(bw, "%s%s\n", labelCookie, a.Cookie)
		fmt.Fprintf(bw, "%s%s\n", labelMailboxHash, a.MailboxHash)
		fmt.Fprintf(bw, "%s%s\n", labelCreatedAt, a.CreatedAt)
		fmt.Fprintf(bw, "%s%s\n", labelLegendary, formatBool(a.IsLegendary))
		fmt.Fprintf(bw, "%s%s\n", labelBanned, formatBool(a.IsBanned))
		fmt.Fprintf(bw, "%s%s\n", labelTempBanned, formatBool(a.IsTempBanned))
		fmt.Fprintf(bw, "%s%s\n", labelNotes, escapeNotes(a.Notes))
		fmt.Fprintf(bw, "%s\n\n", recordDelimiter)
	}
	return bw.Flush()
}

// decodeAccounts parses the persisted collection, preserving on-disk order.
// A Username line starts a new record.
func decodeAccounts(r io.Reader) ([]Account, error) {
	var (
		list    []Account
		current Account
		open    bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, labelUsername):
			if open {
				list = append(list, current)
			}
			current = Account{Username: strings.TrimPrefix(line, labelUsername)}
			open = true
		case strings.HasPrefix(line, labelEmail):
			current.Email = strings.TrimPrefix(line, labelEmail)
		case strings.HasPrefix(line, labelPassword):
			current.Password = strings.TrimPrefix(line, labelPassword)
		case strings.HasPrefix(line, labelCode):
			current.VerificationCode = strings.TrimPrefix(line, labelCode)
		case strings.HasPrefix(line, labelCookie):
			current.Cookie = strings.TrimPrefix(line, labelCookie)
		case strings.HasPrefix(line, labelMailboxHash):
			current.MailboxHash = strings.TrimPrefix(line, labelMailboxHash)
		case strings.HasPrefix(line, labelCreatedAt):
			current.CreatedAt = strings.TrimPrefix(line, labelCreatedAt)
		case strings.HasPrefix(line, labelLegendary):
			current.IsLegendary = parseBool(strings.TrimPrefix(line, labelLegendary))
		case strings.HasPrefix(line, labelBanned):
			current.IsBanned = parseBool(strings.TrimPrefix(line, labelBanned))
		case strings.HasPrefix(line, labelTempBanned):
			current.IsTempBanned = parseBool(strings.TrimPrefix(line, labelTempBanned))
		case strings.HasPrefix(line, labelNotes):
			current.Notes = unescapeNotes(strings.TrimPrefix(line, labelNotes))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan accounts file: %w", err)
	}
	if open {
		list = append(list, current)
	}
	return list, nil
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// parseBool also accepts the older true/1 spellings found in files written
// by earlier versions.
func parseBool(s string) bool {
	switch strings.TrimSpace(s) {
	case "Yes", "true", "1":
		return true
	default:
		return false
	}
}

// escapeNotes keeps multi-line notes on a single file line by replacing
// each newline with the two-character literal `\n`. Nothing else needs
// escaping.
func escapeNotes(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

func unescapeNotes(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
