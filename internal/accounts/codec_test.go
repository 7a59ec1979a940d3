package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAccounts() []Account {
	return []Account{
		{
			Username:         "abc123xyz0",
			Email:            "abc123xyz0@test.com",
			Password:         "Aa1!xyzw",
			VerificationCode: "XY78ZQ",
			Cookie:           "session=tok123",
			MailboxHash:      "931934bd02298bbdef21efedaf649bb2",
			CreatedAt:        "Mon Jan  2 15:04:05 2006",
			IsLegendary:      true,
			Notes:            "first line\nsecond line",
		},
		{
			Username:    "qq9rr8tt77",
			Email:       "qq9rr8tt77@mail.test",
			Password:    "Bb2@qrst",
			MailboxHash: "cb8419c1d471d55fbca0d63d1fb2b6ac",
			CreatedAt:   "Tue Jan  3 10:00:00 2006",
			IsBanned:    true,
		},
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	want := sampleAccounts()

	var buf bytes.Buffer
	require.NoError(t, encodeAccounts(&buf, want))

	got, err := decodeAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCodec_RoundTripTwice(t *testing.T) {
	// save(load(X)) == X: the textual form must be stable, not just the values.
	var first bytes.Buffer
	require.NoError(t, encodeAccounts(&first, sampleAccounts()))

	decoded, err := decodeAccounts(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, encodeAccounts(&second, decoded))
	assert.Equal(t, first.String(), second.String())
}

func TestEncode_NotesStayOnOneLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encodeAccounts(&buf, []Account{{
		Username: "u", Email: "e@x.y", Notes: "a\nb\nc",
	}}))

	assert.Contains(t, buf.String(), `Notes: a\nb\nc`+"\n")
}

func TestDecode_LegacyFileWithoutStatusFields(t *testing.T) {
	// Files written before banned/temp-banned/notes existed.
	in := strings.Join([]string{
		"Username: olduser",
		"Email: olduser@mail.test",
		"Password: secret",
		"Verification Code: AB12CD",
		"Cookie: ",
		"MD5 Hash of Email: 2f9b47a992c5e4e20fdb25f021aa3de8",
		"Creation Time: Wed Jun  4 09:30:00 2025",
		"Legendary: Yes",
		recordDelimiter,
		"",
	}, "\n")

	got, err := decodeAccounts(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)

	a := got[0]
	assert.Equal(t, "olduser", a.Username)
	assert.True(t, a.IsLegendary)
	assert.False(t, a.IsBanned)
	assert.False(t, a.IsTempBanned)
	assert.Empty(t, a.Notes)
}

func TestDecode_BoolSpellings(t *testing.T) {
	for _, spelling := range []string{"Yes", "true", "1"} {
		in := "Username: u\nEmail: e@x.y\nLegendary: " + spelling + "\n"
		got, err := decodeAccounts(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].IsLegendary, "spelling %q", spelling)
	}

	in := "Username: u\nEmail: e@x.y\nLegendary: No\n"
	got, err := decodeAccounts(strings.NewReader(in))
	require.NoError(t, err)
	assert.False(t, got[0].IsLegendary)
}

func TestDecode_MultipleRecordsKeepOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, encodeAccounts(&buf, sampleAccounts()))

	got, err := decodeAccounts(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "abc123xyz0", got[0].Username)
	assert.Equal(t, "qq9rr8tt77", got[1].Username)
}

func TestDecode_Empty(t *testing.T) {
	got, err := decodeAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
