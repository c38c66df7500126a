// Package session owns the process's single access token: where it comes
// from, when it changes, and how it reaches the broker gateway. There is no
// proactive expiry; Kite invalidates tokens server-side around 6:00 AM IST
// the next day and the store simply reports whatever it holds.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jayra/tradebot/pkg/kite"
)

// TokenExpiryNote is the documented token lifetime, surfaced to callers as
// text only.
const TokenExpiryNote = "Token expires at 6:00 AM IST tomorrow"

// Authenticator is the slice of the gateway the store drives.
type Authenticator interface {
	GenerateSession(ctx context.Context, requestToken string) (kite.UserSession, error)
	SetAccessToken(token string)
}

// Store holds the current access token for one broker connection.
type Store struct {
	gateway Authenticator

	mu    sync.RWMutex
	token string
}

// NewStore creates a store bound to gateway. The store starts empty; an
// empty token is a valid state, rejected lazily by the gateway when an
// authenticated call is attempted.
func NewStore(gateway Authenticator) *Store {
	return &Store{gateway: gateway}
}

// SetToken unconditionally replaces the current token and propagates it to
// the gateway so subsequent calls authenticate with it.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.gateway.SetAccessToken(token)
	log.Info().Msg("Access token updated")
}

// Exchange trades a request token for an access token via the gateway, then
// stores and propagates the result. Returns the session's user identity
// metadata. A rejected exchange surfaces the gateway's AuthError unchanged.
func (s *Store) Exchange(ctx context.Context, requestToken string) (kite.UserSession, error) {
	session, err := s.gateway.GenerateSession(ctx, requestToken)
	if err != nil {
		return kite.UserSession{}, err
	}

	s.mu.Lock()
	s.token = session.AccessToken
	s.mu.Unlock()

	// GenerateSession already set the token on the gateway; set again so the
	// store works with gateways that do not self-propagate.
	s.gateway.SetAccessToken(session.AccessToken)

	return session, nil
}

// Token returns the current token and whether one is set.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}
