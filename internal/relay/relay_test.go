package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/splshield/splshield-web/internal/config"
)

func testMessage() Message {
	return Message{
		ID:         "3f1c2a9e-0000-4000-8000-000000000001",
		Name:       "Ada",
		Email:      "ada@example.com",
		Subject:    "Listing",
		Message:    "When does the exchange listing happen?",
		ReceivedAt: time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestNewHTTPRelay_Validation(t *testing.T) {
	tests := []struct {
		name    string
		apiURL  string
		want    string
		wantErr string
	}{
		{"HTTPS", "https://api.example.com", "https://api.example.com/v1/contact", ""},
		{"TrailingSlash", "https://api.example.com/", "https://api.example.com/v1/contact", ""},
		{"FTP", "ftp://api.example.com", "", config.ErrProtocol},
		{"NoHost", "https://", "", config.ErrInvalidURL},
		{"Garbage", "://bad", "", config.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewHTTPRelay(tt.apiURL, "", "")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Endpoint)
		})
	}
}

func TestHTTPRelay_Send(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, config.RelayContactPath, r.URL.Path)
		assert.Equal(t, config.MimeJSON, r.Header.Get(config.HeaderContentType))
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "relay", user)
		assert.Equal(t, "s3cret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	r, err := NewHTTPRelay(srv.URL, "relay", "s3cret")
	require.NoError(t, err)

	require.NoError(t, r.Send(context.Background(), testMessage()))
	assert.Equal(t, testMessage(), got)
}

func TestHTTPRelay_NoAuthWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
	}))
	defer srv.Close()

	r, err := NewHTTPRelay(srv.URL, "", "")
	require.NoError(t, err)
	assert.NoError(t, r.Send(context.Background(), testMessage()))
}

func TestHTTPRelay_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "mailbox full", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r, err := NewHTTPRelay(srv.URL, "", "")
	require.NoError(t, err)

	err = r.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrRelayStatus)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "mailbox full")
}

func TestHTTPRelay_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	r, err := NewHTTPRelay(srv.URL, "", "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = r.Send(ctx, testMessage())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLogRelay(t *testing.T) {
	assert.NoError(t, LogRelay{}.Send(context.Background(), testMessage()))
}

func TestResolvePassword(t *testing.T) {
	keyring.MockInit()

	assert.Equal(t, "explicit", ResolvePassword("relay", "explicit"), "explicit value wins")
	assert.Empty(t, ResolvePassword("relay", ""), "no keyring entry yet")
	assert.Empty(t, ResolvePassword("", ""), "no user, no lookup")

	require.NoError(t, SavePassword("relay", "from-keyring"))
	assert.Equal(t, "from-keyring", ResolvePassword("relay", ""))
}
