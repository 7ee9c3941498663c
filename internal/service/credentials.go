package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/crownweb/contact-relay/internal/config"
	"github.com/crownweb/contact-relay/internal/logging"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrAuthRefresh marks an invalid or expired refresh token. This is
// operator-actionable: the service must be re-authenticated out-of-band.
var ErrAuthRefresh = errors.New("refresh token invalid or expired")

// Gmail scopes requested during the original consent flow
var gmailScopes = []string{
	"https://mail.google.com/",
	"https://www.googleapis.com/auth/gmail.send",
}

const (
	// Cached access tokens are refreshed when closer than this to expiry
	tokenExpirySkew = 30 * time.Second

	// Both network calls (token refresh, mail send) are bounded
	networkTimeout = 10 * time.Second
)

// Credentials holds the OAuth2 app credentials and the long-lived refresh
// token, and exchanges the refresh token for short-lived access tokens.
// The cached token and the refresh token are mutex-guarded; a rotated
// refresh token returned by the provider replaces the stored one in memory
// only and is lost on restart.
type Credentials struct {
	mu           sync.Mutex
	config       *oauth2.Config
	refreshToken string
	cached       *oauth2.Token
	client       *http.Client
}

// NewCredentials creates a credential provider from the app configuration.
func NewCredentials(cfg *config.Config) *Credentials {
	return &Credentials{
		config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURI,
			Endpoint:     google.Endpoint,
			Scopes:       gmailScopes,
		},
		refreshToken: cfg.GoogleRefreshToken,
		client:       &http.Client{Timeout: networkTimeout},
	}
}

// Token returns a valid access token, exchanging the refresh token when the
// cached one is absent or within the expiry skew.
func (c *Credentials) Token(ctx context.Context) (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.cached.Expiry.After(time.Now().Add(tokenExpirySkew)) {
		return c.cached, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	src := c.config.TokenSource(ctx, &oauth2.Token{RefreshToken: c.refreshToken})

	token, err := src.Token()
	if err != nil {
		if isInvalidGrant(err) {
			logging.GetLogger().Error("Refresh token is invalid or expired. Please re-authenticate.")
			return nil, fmt.Errorf("%w: %v", ErrAuthRefresh, err)
		}
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	if token.RefreshToken != "" && token.RefreshToken != c.refreshToken {
		logging.GetLogger().Info("New refresh token received from provider")
		c.refreshToken = token.RefreshToken
	}

	c.cached = token
	return token, nil
}

func isInvalidGrant(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return retrieveErr.ErrorCode == "invalid_grant" ||
			strings.Contains(string(retrieveErr.Body), "invalid_grant")
	}
	return false
}
