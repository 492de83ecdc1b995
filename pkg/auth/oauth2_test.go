package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blackcoderx/pigeon/pkg/errdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenServer(t *testing.T, wantGrant string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("grant_type") != wantGrant {
			http.Error(w, `{"error":"unsupported_grant_type"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc123","token_type":"bearer","expires_in":3600}`))
	}))
}

func TestFetchToken_ClientCredentials(t *testing.T) {
	server := tokenServer(t, "client_credentials")
	defer server.Close()

	token, err := FetchToken(context.Background(), OAuth2Params{
		TokenURL:     server.URL,
		ClientID:     "id",
		ClientSecret: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", token.AccessToken)
	assert.Contains(t, Describe(token), "type=Bearer")
	assert.NotContains(t, Describe(token), "abc123")
}

func TestFetchToken_Password(t *testing.T) {
	server := tokenServer(t, "password")
	defer server.Close()

	token, err := FetchToken(context.Background(), OAuth2Params{
		Flow:     FlowPassword,
		TokenURL: server.URL,
		ClientID: "id",
		Username: "user",
		Password: "pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", token.AccessToken)
}

func TestFetchToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params OAuth2Params
	}{
		{"missing token url", OAuth2Params{ClientID: "id"}},
		{"missing client id", OAuth2Params{TokenURL: "http://x"}},
		{"unknown flow", OAuth2Params{Flow: "implicit", TokenURL: "http://x", ClientID: "id"}},
		{"password without credentials", OAuth2Params{Flow: FlowPassword, TokenURL: "http://x", ClientID: "id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FetchToken(context.Background(), tt.params)
			require.Error(t, err)
			assert.True(t, errdef.Is(err, errdef.CodeConfig))
		})
	}
}
