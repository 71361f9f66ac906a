//go:generate mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Gateway=Gateway"
package auth

import (
	"context"
	"sync"
	"time"

	"github.com/roomdesk/dashboard-client/pkg/clock"
	"github.com/roomdesk/dashboard-client/pkg/log"
)

const DefaultVerifyTimeout = 5 * time.Second

type (
	// Gateway is the backend surface the session controller needs. Login and
	// Register return the issued bearer token; Register returns an empty token
	// when the backend does not auto-login the new account.
	Gateway interface {
		Login(ctx context.Context, email, password string) (token string, err error)
		Register(ctx context.Context, registration Registration) (token string, err error)
		Verify(ctx context.Context, token string) (valid bool, err error)
	}

	Credentials struct {
		Email    string
		Password string
	}

	Registration struct {
		Name     string
		Username string
		Email    string
		Password string
	}

	// State is the session snapshot exposed to consumers. IsAuthenticated is
	// strictly derived: true iff Token is set and passes the local expiry
	// heuristic. The derivation happens on every transition, never on input
	// flags, so no reachable state reports an authenticated session over an
	// absent or locally expired token.
	State struct {
		Token           string
		IsAuthenticated bool
		IsLoading       bool
	}

	SessionOption func(*Session)

	// Session orchestrates login, registration, logout and token verification
	// over a single stored token.
	Session struct {
		gateway       Gateway
		storage       Storage
		clock         clock.Clock
		logger        log.Logger
		verifyTimeout time.Duration

		mu      sync.Mutex
		state   State
		subs    map[int]func(State)
		nextSub int
	}
)

func NewSession(gateway Gateway, storage Storage, opts ...SessionOption) *Session {
	s := &Session{
		gateway:       gateway,
		storage:       storage,
		clock:         clock.New(),
		logger:        log.New(log.LevelDisabled),
		verifyTimeout: DefaultVerifyTimeout,
		state:         State{IsLoading: true},
		subs:          map[int]func(State){},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func WithSessionClock(clk clock.Clock) SessionOption {
	return func(s *Session) {
		s.clock = clk
	}
}

func WithSessionLogger(logger log.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

func WithVerifyTimeout(timeout time.Duration) SessionOption {
	return func(s *Session) {
		s.verifyTimeout = timeout
	}
}

// State returns the current session snapshot. IsAuthenticated reflects the
// token's validity as of the last transition; callers that need it re-checked
// against the clock or the backend use CheckAuth.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener notified on every state change and returns
// an unsubscribe func.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Bootstrap hydrates the session from storage and verifies the stored token
// against the backend. When ctx is cancelled before completion the resulting
// state update is discarded entirely, so a torn-down consumer never observes
// a late write.
func (s *Session) Bootstrap(ctx context.Context) {
	token, err := s.storage.Get()
	if err != nil || token == "" || !IsLocallyValid(ctx, s.clock, token) {
		_ = s.storage.Remove()
		s.settle(ctx, State{})
		return
	}

	if !s.verifyWithFallback(ctx, token) {
		_ = s.storage.Remove()
		s.logger.Warn(ctx, "stored token rejected by backend, session cleared")
		s.settle(ctx, State{})
		return
	}

	s.settle(ctx, State{Token: token})
}

// CheckAuth re-runs the local-validity and backend-verification sequence on
// demand and reports whether the session is currently valid. Invalidation
// clears the stored token and the session state.
func (s *Session) CheckAuth(ctx context.Context) bool {
	token, err := s.storage.Get()
	if err != nil || token == "" || !IsLocallyValid(ctx, s.clock, token) {
		_ = s.storage.Remove()
		s.setState(ctx, State{})
		return false
	}

	if !s.verifyWithFallback(ctx, token) {
		_ = s.storage.Remove()
		s.setState(ctx, State{})
		return false
	}

	s.setState(ctx, State{Token: token})
	return true
}

// Login authenticates against the backend and persists the returned token.
func (s *Session) Login(ctx context.Context, credentials Credentials) error {
	token, err := s.gateway.Login(ctx, credentials.Email, credentials.Password)
	if err != nil {
		return err
	}

	if err = s.storage.Set(token); err != nil {
		return err
	}

	s.setState(ctx, State{Token: token})
	s.logger.Info(ctx, "session authenticated")
	return nil
}

// Register creates an account. When the backend includes a token in the
// response the session is authenticated immediately; otherwise it stays
// unauthenticated and the caller must log in explicitly.
func (s *Session) Register(ctx context.Context, registration Registration) error {
	token, err := s.gateway.Register(ctx, registration)
	if err != nil {
		return err
	}

	if token == "" {
		return nil
	}

	if err = s.storage.Set(token); err != nil {
		return err
	}

	s.setState(ctx, State{Token: token})
	return nil
}

// Logout clears the stored token and the session state. It never fails and
// does not call the backend.
func (s *Session) Logout(ctx context.Context) {
	_ = s.storage.Remove()
	s.setState(ctx, State{})
	s.logger.Info(ctx, "session logged out")
}

// verifyWithFallback asks the backend whether the token is valid, bounded by
// the verify timeout. Connectivity failures fall back to the local expiry
// heuristic rather than invalidating the session.
func (s *Session) verifyWithFallback(ctx context.Context, token string) bool {
	verifyCtx, cancel := context.WithTimeout(ctx, s.verifyTimeout)
	defer cancel()

	valid, err := s.gateway.Verify(verifyCtx, token)
	if err != nil {
		s.logger.WithError(err).Warn(ctx, "token verification unreachable, using local expiry heuristic")
		return IsLocallyValid(ctx, s.clock, token)
	}

	return valid
}

// settle applies a bootstrap result unless the consuming context has been
// torn down. IsLoading always ends up false on an applied update.
func (s *Session) settle(ctx context.Context, state State) {
	if ctx.Err() != nil {
		return
	}

	s.setState(ctx, state)
}

func (s *Session) setState(ctx context.Context, state State) {
	state.IsLoading = false
	state.IsAuthenticated = state.Token != "" && IsLocallyValid(ctx, s.clock, state.Token)

	s.mu.Lock()
	s.state = state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
