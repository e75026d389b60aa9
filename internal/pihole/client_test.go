package pihole

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base     string
		endpoint string
		expected string
	}{
		{"http://pi.hole", "/api/auth", "http://pi.hole/api/auth"},
		{"http://pi.hole/", "/api/auth", "http://pi.hole/api/auth"},
		{"http://pi.hole/", "api/auth", "http://pi.hole/api/auth"},
		{"http://pi.hole", "api/auth", "http://pi.hole/api/auth"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, JoinURL(tt.base, tt.endpoint))
	}
}

func newLoginServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClientBuilder(zerolog.Nop()).
		WithBaseURL(server.URL).
		WithPassword("secret").
		Build()
	return server, client
}

func TestClient_Login(t *testing.T) {
	_, client := newLoginServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "secret", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"session": map[string]any{"sid": "abc123", "validity": 300},
		})
	})

	session, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", session.SID)
	assert.Equal(t, float64(300), session.Validity)
	assert.Equal(t, "abc123", client.SID())
}

func TestClient_LoginFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "missing session",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"other": true}`))
			},
		},
		{
			name: "empty sid",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"session":{"sid":"","validity":300}}`))
			},
		},
		{
			name: "missing validity",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"session":{"sid":"abc123"}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newLoginServer(t, tt.handler)
			_, err := client.Login(context.Background())
			assert.Error(t, err)
			assert.Empty(t, client.SID())
		})
	}
}

func TestClient_FetchJSONSendsSIDHeader(t *testing.T) {
	var gotSID string
	_, client := newLoginServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotSID = r.Header.Get(SIDHeader)
		_, _ = w.Write([]byte(`{"config":{"dns":true}}`))
	})
	client.SetSID("cached-sid")

	payload, err := client.FetchJSON(context.Background(), "/api/config")
	require.NoError(t, err)
	assert.Equal(t, "cached-sid", gotSID)

	asMap, ok := payload.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, asMap, "config")
}

func TestClient_FetchJSONErrors(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		_, client := newLoginServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
		_, err := client.FetchJSON(context.Background(), "/api/config")
		assert.Error(t, err)
	})

	t.Run("non-parseable body", func(t *testing.T) {
		_, client := newLoginServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		})
		_, err := client.FetchJSON(context.Background(), "/api/config")
		assert.Error(t, err)
	})
}
