// Package session replaces the original ambient auth context with an
// explicit session object, injected into every page that needs it. The
// session owns the user profile, the role list read from the identity
// claims, and the token set used for silent refresh.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/spendflow/spend-console/internal/core/domain"
	"github.com/spendflow/spend-console/internal/infrastructure/identity"
)

var ErrNotFound = errors.New("session not found")

// Session is the authenticated state of one browser session.
type Session struct {
	ID        string            `json:"id"`
	User      domain.User       `json:"user"`
	Roles     []string          `json:"roles"`
	Tokens    identity.TokenSet `json:"tokens"`
	CreatedAt time.Time         `json:"created_at"`
}

// IsApprover reports whether the session's roles permit deciding on spends.
func (s *Session) IsApprover() bool {
	return domain.IsApprover(s.Roles)
}

// NewID returns an opaque session identifier.
func NewID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// TokenSource returns a token source bound to this session: the cached access
// token is handed out until stale, then silently refreshed through the
// provider, and the rotated token set is written back to the store so later
// requests reuse it.
func (s *Session) TokenSource(refresher identity.Refresher, store *Store) *StoredTokenSource {
	return &StoredTokenSource{
		session:   s,
		refresher: refresher,
		store:     store,
		inner:     identity.NewCachedTokenSource(refresher, s.Tokens),
	}
}

// StoredTokenSource wraps the cached source with persistence of rotated tokens.
type StoredTokenSource struct {
	session   *Session
	refresher identity.Refresher
	store     *Store
	inner     *identity.CachedTokenSource
}

// AccessToken implements ports.TokenSource.
func (t *StoredTokenSource) AccessToken(ctx context.Context) (string, error) {
	before := t.inner.Current().AccessToken
	token, err := t.inner.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	if token != before && t.store != nil {
		t.session.Tokens = t.inner.Current()
		if err := t.store.Save(ctx, t.session); err != nil {
			// The refreshed token is still valid for this request; losing the
			// persisted copy only costs one extra refresh later.
			return token, nil
		}
	}
	return token, nil
}
