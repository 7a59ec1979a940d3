package credgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dadgen/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomLocalPart_LengthAndAlphabet(t *testing.T) {
	for _, length := range []int{1, 5, 10, 32} {
		s := RandomLocalPart(length)
		require.Len(t, s, length)
		for _, r := range s {
			assert.Contains(t, localAlphabet, string(r))
		}
	}
}

func TestRandomLocalPart_Varies(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 20; i++ {
		seen[RandomLocalPart(DefaultLocalPartLength)] = struct{}{}
	}
	// 20 draws from 36^10 colliding down to one value would mean a broken source.
	assert.Greater(t, len(seen), 1)
}

func TestStrongPassword_TooShort(t *testing.T) {
	for _, length := range []int{0, 1, 7} {
		_, err := StrongPassword(length)
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrInvalidArgument))
	}
}

func TestStrongPassword_CharacterClasses(t *testing.T) {
	for _, length := range []int{8, 12, 64} {
		pw, err := StrongPassword(length)
		require.NoError(t, err)
		require.Len(t, pw, length)

		assert.True(t, strings.ContainsAny(pw, lowercase), "missing lowercase: %q", pw)
		assert.True(t, strings.ContainsAny(pw, uppercase), "missing uppercase: %q", pw)
		assert.True(t, strings.ContainsAny(pw, digits), "missing digit: %q", pw)
		assert.True(t, strings.ContainsAny(pw, special), "missing special: %q", pw)

		for _, r := range pw {
			assert.Contains(t, lowercase+uppercase+digits+special, string(r))
		}
	}
}

func TestMailboxDigest_KnownVector(t *testing.T) {
	// Pinned: changing the digest would orphan every existing mailbox.
	assert.Equal(t, "931934bd02298bbdef21efedaf649bb2", MailboxDigest("abc123xyz0@test.com"))
}

func TestMailboxDigest_Deterministic(t *testing.T) {
	a := MailboxDigest("hello@example.com")
	b := MailboxDigest("hello@example.com")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, MailboxDigest("hello2@example.com"))
}
