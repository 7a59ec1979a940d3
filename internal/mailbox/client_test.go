package mailbox

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/dadgen/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(&http.Client{Timeout: 5 * time.Second}, Settings{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	}, testLogger())
	require.NoError(t, err)
	return c, srv
}

func TestDomains(t *testing.T) {
	var gotKey, gotHost string
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/request/domains/", r.URL.Path)
		gotKey = r.Header.Get("x-rapidapi-key")
		gotHost = r.Header.Get("x-rapidapi-host")
		w.Write([]byte(`["@test.com","@mail.test"]`))
	}))

	domains, err := c.Domains(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"@test.com", "@mail.test"}, domains)
	assert.Equal(t, "test-key", gotKey)

	u := srv.Listener.Addr().String()
	assert.Equal(t, u, gotHost)
}

func TestDomains_ErrorPayloadMeansEmpty(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"You are not subscribed to this API."}`))
	}))

	domains, err := c.Domains(context.Background())
	require.NoError(t, err)
	assert.Empty(t, domains)
}

func TestDomains_RelaxedTLSRetry(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["@test.com"]`))
	}))
	t.Cleanup(srv.Close)

	// The strict client does not trust the server's self-signed certificate,
	// so the first attempt fails the handshake and the relaxed retry must
	// recover the payload.
	c, err := NewClient(&http.Client{Timeout: 5 * time.Second}, Settings{
		BaseURL: srv.URL,
		APIKey:  "k",
	}, testLogger())
	require.NoError(t, err)

	domains, err := c.Domains(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"@test.com"}, domains)
}

func TestDomains_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(&http.Client{Timeout: time.Second}, Settings{
		BaseURL: url,
		APIKey:  "k",
	}, testLogger())
	require.NoError(t, err)

	_, err = c.Domains(context.Background())
	require.Error(t, err)
}

func TestMessages_List(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/request/mail/id/931934bd02298bbdef21efedaf649bb2/", r.URL.Path)
		w.Write([]byte(`[
			{"mail_subject":"Welcome","mail_text":"hi there"},
			{"mail_subject":"Verify email","mail_text":"your code is XY78ZQ."}
		]`))
	}))

	msgs, err := c.Messages(context.Background(), "931934bd02298bbdef21efedaf649bb2")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Verify email", msgs[1].Subject)
	assert.Equal(t, "your code is XY78ZQ.", msgs[1].Text)
}

func TestMessages_SingleObject(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"mail_subject":"Verify email","mail_text":"code AB12CD"}`))
	}))

	msgs, err := c.Messages(context.Background(), "abc")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Verify email", msgs[0].Subject)
}

func TestMessages_EmptyMailbox(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"There are no emails yet"}`))
	}))

	msgs, err := c.Messages(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
