// Package credgen produces the throwaway credentials a provisioning run
// needs: random mailbox local parts, strong passwords and the deterministic
// digest the temp-mail provider uses to address a mailbox.
//
// Everything here is pure and stateless; no I/O, no shared state.
package credgen

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/dmitrijs2005/dadgen/internal/common"
)

const (
	localAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	special   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// DefaultLocalPartLength is the local-part length used for generated
// mailbox addresses.
const DefaultLocalPartLength = 10

// MinPasswordLength is the smallest length StrongPassword accepts.
const MinPasswordLength = 8

// RandomLocalPart returns a random string of exactly length characters drawn
// uniformly from the 36-symbol lowercase-alphanumeric alphabet.
func RandomLocalPart(length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(localAlphabet[rand.IntN(len(localAlphabet))])
	}
	return b.String()
}

// StrongPassword returns a random password of the given length containing at
// least one lowercase letter, one uppercase letter, one digit and one special
// character. The remaining characters are drawn uniformly from the union of
// those classes and the result is shuffled so the guaranteed characters do
// not sit at fixed positions.
//
// Lengths below MinPasswordLength fail with common.ErrInvalidArgument.
func StrongPassword(length int) (string, error) {
	if length < MinPasswordLength {
		return "", fmt.Errorf("%w: password length must be at least %d", common.ErrInvalidArgument, MinPasswordLength)
	}

	all := lowercase + uppercase + digits + special

	pw := make([]byte, 0, length)
	pw = append(pw, lowercase[rand.IntN(len(lowercase))])
	pw = append(pw, uppercase[rand.IntN(len(uppercase))])
	pw = append(pw, digits[rand.IntN(len(digits))])
	pw = append(pw, special[rand.IntN(len(special))])
	for i := len(pw); i < length; i++ {
		pw = append(pw, all[rand.IntN(len(all))])
	}

	rand.Shuffle(len(pw), func(i, j int) {
		pw[i], pw[j] = pw[j], pw[i]
	})

	return string(pw), nil
}

// MailboxDigest returns the lowercase hex MD5 digest of the email address.
// The provider uses it as an opaque mailbox lookup key; it is not a security
// primitive, and it must stay stable or existing mailboxes become
// unreachable.
func MailboxDigest(email string) string {
	sum := md5.Sum([]byte(email))
	return hex.EncodeToString(sum[:])
}
