// Package session owns the authenticated-customer lifecycle: token
// persistence, startup revalidation and forced logout on any
// unauthorized backend response.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/PedroLucas003/virada-brewery-store/apperrors"
	"github.com/PedroLucas003/virada-brewery-store/models"
	"github.com/PedroLucas003/virada-brewery-store/tokenstore"
)

// AuthAPI is the slice of the backend gateway the session needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Register(ctx context.Context, payload models.RegisterPayload) (string, *models.User, error)
	ValidateToken(ctx context.Context) (bool, *models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.User, error)
}

type EventKind string

const (
	EventSignedIn       EventKind = "signed_in"
	EventSignedOut      EventKind = "signed_out"
	EventProfileUpdated EventKind = "profile_updated"
	EventSessionExpired EventKind = "session_expired"
)

// Event describes one completed session state change.
type Event struct {
	Kind EventKind
	User *models.User
}

// RegisterInput is the raw registration form. The confirmation
// password is validated locally and stripped before transmission.
type RegisterInput struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Password        string          `json:"password"`
	ConfirmPassword string          `json:"confirm_password"`
	Address         *models.Address `json:"address,omitempty"`
}

// Manager holds the single current-user slot. The slot and the token
// store are mutated only here; the backend is never called while the
// internal lock is held.
type Manager struct {
	mu      sync.Mutex
	user    *models.User
	loading bool

	tokens tokenstore.Store
	api    AuthAPI
	logger *zap.Logger
	subs   []func(Event)
}

func NewManager(tokens tokenstore.Store, api AuthAPI, logger *zap.Logger) *Manager {
	return &Manager{tokens: tokens, api: api, logger: logger}
}

// Subscribe registers a change listener, called after each completed
// state transition.
func (m *Manager) Subscribe(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) notify(ev Event) {
	m.mu.Lock()
	subs := make([]func(Event), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// Initialize resolves a persisted token into either an authenticated
// user or a clean anonymous state. Loading reports true only while
// this resolution is in flight; callers gating on authentication must
// wait for it to finish.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	token, err := m.tokens.Get(ctx)
	if err != nil {
		m.logger.Error("Failed to read persisted token", zap.Error(err))
		return
	}
	if token == "" {
		return
	}

	valid, user, err := m.api.ValidateToken(ctx)
	if err != nil || !valid || user == nil {
		if err != nil {
			m.logger.Warn("Token validation failed", zap.Error(err))
		}
		if rmErr := m.tokens.Remove(ctx); rmErr != nil {
			m.logger.Error("Failed to remove rejected token", zap.Error(rmErr))
		}
		return
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.logger.Info("Session restored", zap.String("user_id", user.ID))
	m.notify(Event{Kind: EventSignedIn, User: user})
}

// Login authenticates against the backend. On success the token is
// persisted and the current user set; every failure leaves both the
// token store and the current user untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	token, user, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := m.tokens.Set(ctx, token); err != nil {
		m.logger.Error("Failed to persist token", zap.Error(err))
		return nil, apperrors.Backend(500, "Failed to persist session", err)
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.logger.Info("Customer signed in", zap.String("user_id", user.ID))
	m.notify(Event{Kind: EventSignedIn, User: user})
	return user, nil
}

// Register validates the form locally, then creates the account with
// the same persistence contract as Login. The confirmation password
// never leaves the process.
func (m *Manager) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if len(input.Password) < 6 {
		return nil, apperrors.ErrPasswordTooShort
	}
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	payload := models.RegisterPayload{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
		Address:  input.Address,
	}

	token, user, err := m.api.Register(ctx, payload)
	if err != nil {
		return nil, err
	}

	if err := m.tokens.Set(ctx, token); err != nil {
		m.logger.Error("Failed to persist token", zap.Error(err))
		return nil, apperrors.Backend(500, "Failed to persist session", err)
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.logger.Info("Customer registered", zap.String("user_id", user.ID))
	m.notify(Event{Kind: EventSignedIn, User: user})
	return user, nil
}

// Logout removes the token and clears the current user under one lock
// hold, so the two effects are only ever observed together.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	err := m.tokens.Remove(ctx)
	if err != nil {
		m.mu.Unlock()
		m.logger.Error("Failed to remove token on logout", zap.Error(err))
		return apperrors.Backend(500, "Failed to end session", err)
	}
	m.user = nil
	m.mu.Unlock()

	m.logger.Info("Customer signed out")
	m.notify(Event{Kind: EventSignedOut})
	return nil
}

// UpdateProfile patches the current user's profile. On success the
// slot is replaced with the backend's record; on failure it is left
// unchanged.
func (m *Manager) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.User, error) {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return nil, apperrors.ErrUnauthenticated
	}
	userID := m.user.ID
	m.mu.Unlock()

	updated, err := m.api.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	// A forced logout may have raced the update; do not resurrect the
	// session with a stale profile.
	if m.user != nil && m.user.ID == userID {
		m.user = updated
	}
	m.mu.Unlock()

	m.notify(Event{Kind: EventProfileUpdated, User: updated})
	return updated, nil
}

// HandleUnauthorized is the global reaction to any unauthorized
// backend response: drop the token and the current user together and
// tell subscribers to route back to the login entry point.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	if err := m.tokens.Remove(context.Background()); err != nil {
		m.logger.Error("Failed to remove token after unauthorized response", zap.Error(err))
	}
	m.user = nil
	m.mu.Unlock()

	m.logger.Warn("Session invalidated by unauthorized response")
	m.notify(Event{Kind: EventSessionExpired})
}

// CurrentUser returns a copy of the current user, or nil when
// anonymous.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a validated user occupies the slot.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

// Loading reports whether startup validation is still resolving.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// DefaultAddress returns the stored address of the authenticated
// user, or a zero address for anonymous visitors.
func (m *Manager) DefaultAddress() models.Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil || m.user.Address == nil {
		return models.Address{}
	}
	return *m.user.Address
}
