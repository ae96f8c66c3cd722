package identity

import (
	"context"
	"sync"
	"time"
)

// refreshLeeway is how long before expiry a token is considered stale.
const refreshLeeway = 30 * time.Second

// Refresher performs a silent token refresh. *Provider satisfies it.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*TokenSet, error)
}

// CachedTokenSource hands out the cached access token until it nears expiry,
// then refreshes it silently. Concurrent callers suspend behind a single
// refresh; nobody ever sees a stale token and a fresh one in the same call.
type CachedTokenSource struct {
	mu        sync.Mutex
	refresher Refresher
	tokens    TokenSet
	now       func() time.Time
}

// NewCachedTokenSource seeds the source with the token set obtained at login.
func NewCachedTokenSource(refresher Refresher, initial TokenSet) *CachedTokenSource {
	return &CachedTokenSource{
		refresher: refresher,
		tokens:    initial,
		now:       time.Now,
	}
}

// AccessToken implements ports.TokenSource.
func (s *CachedTokenSource) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens.AccessToken != "" && s.now().Add(refreshLeeway).Before(s.tokens.Expiry) {
		return s.tokens.AccessToken, nil
	}

	refreshed, err := s.refresher.Refresh(ctx, s.tokens.RefreshToken)
	if err != nil {
		return "", err
	}
	// Providers may rotate the refresh token; keep the old one when absent.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = s.tokens.RefreshToken
	}
	s.tokens = *refreshed
	return s.tokens.AccessToken, nil
}

// Current returns a copy of the token set held by the source.
func (s *CachedTokenSource) Current() TokenSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}
