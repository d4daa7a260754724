// Package auth fetches and caches OAuth2 client-credentials tokens,
// one per requested scope.
package auth

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	"github.com/vikijel/gopayrest/internal/transport"
	pkgerrors "github.com/vikijel/gopayrest/pkg/errors"
	"github.com/vikijel/gopayrest/pkg/observability"
	"github.com/vikijel/gopayrest/ports"
)

// TokenSource caches bearer tokens per scope for the lifetime of the
// owning client instance. There is no expiry tracking; callers needing
// a fresh token must create a new client instance.
//
// TokenSource is not safe for concurrent use. The client model is
// single-threaded per instance; share instances only with external
// synchronization.
type TokenSource struct {
	transport    *transport.Adapter
	tokenURL     string
	clientID     string
	clientSecret string
	logger       ports.Logger
	tokens       map[string]string
}

// NewTokenSource creates a token source for the given credentials.
// apiURL is the gateway API base, without a trailing slash.
func NewTokenSource(t *transport.Adapter, apiURL, clientID, clientSecret string, logger ports.Logger) *TokenSource {
	return &TokenSource{
		transport:    t,
		tokenURL:     apiURL + "/oauth2/token",
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       logger,
		tokens:       map[string]string{},
	}
}

// Token returns the cached token for scope, fetching one on a miss.
// A failed fetch is not cached, so the next call retries.
func (s *TokenSource) Token(ctx context.Context, scope string) (string, error) {
	if token, ok := s.tokens[scope]; ok {
		return token, nil
	}

	observability.ObserveTokenFetch(scope)

	body := url.Values{
		"grant_type": {"client_credentials"},
		"scope":      {scope},
	}
	headers := map[string]string{
		"Accept":        "application/json",
		"Content-Type":  `application/x-www-form-urlencoded; charset="utf-8"`,
		"Authorization": "Basic " + basicCredentials(s.clientID, s.clientSecret),
	}

	resp, err := s.transport.Execute(ctx, s.tokenURL, http.MethodPost, body, headers)
	if err != nil {
		return "", err
	}

	token, _ := resp.JSON["access_token"].(string)
	if strings.TrimSpace(token) == "" {
		return "", pkgerrors.NewAuthError(scope, "missing access_token in response: "+string(resp.Body))
	}

	s.tokens[scope] = token
	s.logger.Debug("token cached", ports.String("scope", scope))

	return token, nil
}

func basicCredentials(clientID, clientSecret string) string {
	return base64.StdEncoding.EncodeToString([]byte(clientID + ":" + clientSecret))
}
