// Package auth obtains credentials that are stored as global secrets.
package auth

import (
	"context"
	"fmt"

	"github.com/blackcoderx/pigeon/pkg/errdef"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Grant types supported by FetchToken.
const (
	FlowClientCredentials = "client_credentials"
	FlowPassword          = "password"
)

// OAuth2Params defines the parameters for an OAuth2 token request.
type OAuth2Params struct {
	// Flow is the grant type: "client_credentials" (default) or "password"
	Flow         string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// Username and Password are required for the password flow
	Username string
	Password string
}

// FetchToken runs the configured grant against the token endpoint.
func FetchToken(ctx context.Context, params OAuth2Params) (*oauth2.Token, error) {
	if params.TokenURL == "" {
		return nil, errdef.New(errdef.CodeConfig, "'token_url' is required")
	}
	if params.ClientID == "" {
		return nil, errdef.New(errdef.CodeConfig, "'client_id' is required")
	}

	switch params.Flow {
	case "", FlowClientCredentials:
		return clientCredentialsFlow(ctx, params)
	case FlowPassword:
		return passwordFlow(ctx, params)
	default:
		return nil, errdef.New(errdef.CodeConfig, "unsupported flow %q (use %s or %s)", params.Flow, FlowClientCredentials, FlowPassword)
	}
}

// clientCredentialsFlow performs the OAuth2 client credentials grant.
func clientCredentialsFlow(ctx context.Context, params OAuth2Params) (*oauth2.Token, error) {
	config := clientcredentials.Config{
		ClientID:     params.ClientID,
		ClientSecret: params.ClientSecret,
		TokenURL:     params.TokenURL,
		Scopes:       params.Scopes,
	}

	token, err := config.Token(ctx)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHTTP, err, "client_credentials flow failed")
	}
	return token, nil
}

// passwordFlow performs the OAuth2 resource owner password grant.
func passwordFlow(ctx context.Context, params OAuth2Params) (*oauth2.Token, error) {
	if params.Username == "" || params.Password == "" {
		return nil, errdef.New(errdef.CodeConfig, "'username' and 'password' are required for password flow")
	}

	config := oauth2.Config{
		ClientID:     params.ClientID,
		ClientSecret: params.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: params.TokenURL,
		},
		Scopes: params.Scopes,
	}

	token, err := config.PasswordCredentialsToken(ctx, params.Username, params.Password)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHTTP, err, "password flow failed")
	}
	return token, nil
}

// Describe summarizes a token for display without printing the token itself.
func Describe(token *oauth2.Token) string {
	desc := fmt.Sprintf("type=%s", token.Type())
	if !token.Expiry.IsZero() {
		desc += fmt.Sprintf(" expires=%s", token.Expiry.Format("2006-01-02 15:04:05"))
	}
	if token.RefreshToken != "" {
		desc += " refresh=yes"
	}
	return desc
}
