// Package accounts holds the durable collection of provisioned accounts:
// the record model, the line-oriented file codec and a mutex-guarded store
// with substring search and structured status filters.
package accounts

import "time"

// CreatedAtLayout is the timestamp layout used in the account file for
// creation times and temp-ban note lines.
const CreatedAtLayout = time.ANSIC

// Account is one provisioned account. A record is identified by its
// (Username, Email) pair; MailboxHash is always the digest of Email and is
// never recomputed independently of it.
type Account struct {
	Username         string
	Email            string
	Password         string
	VerificationCode string
	Cookie           string
	MailboxHash      string
	CreatedAt        string

	IsLegendary  bool
	IsBanned     bool
	IsTempBanned bool

	// Notes is free text and may contain embedded newlines.
	Notes string
}

// Is reports whether the record is identified by the given pair.
func (a *Account) Is(username, email string) bool {
	return a.Username == username && a.Email == email
}
