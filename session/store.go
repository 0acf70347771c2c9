// Package session owns authentication state. All reads go through
// Snapshot and all writes go through the store's operations; views
// never touch the token or profile directly.
package session

import (
	"sync"

	"github.com/amirsalarabedini/LinguaTask/api"
	"github.com/amirsalarabedini/LinguaTask/model"
)

// Snapshot is an immutable view of the current auth state.
type Snapshot struct {
	Token   string
	User    *model.User
	Loading bool
}

// LoggedIn reports whether a token is held.
func (s Snapshot) LoggedIn() bool {
	return s.Token != ""
}

// Result reports the outcome of a login or register attempt. Message is
// user-displayable and only set on failure.
type Result struct {
	Success bool
	Message string
}

// Store is the single writer of authentication state, shared by all
// views. Operations run on bubbletea command goroutines, hence the lock.
type Store struct {
	client *api.Client
	tokens *TokenFile

	mu      sync.RWMutex
	token   string
	user    *model.User
	loading bool
}

// NewStore creates a store. The session counts as loading until
// Initialize resolves it.
func NewStore(client *api.Client, tokens *TokenFile) *Store {
	return &Store{
		client:  client,
		tokens:  tokens,
		loading: true,
	}
}

// Snapshot returns the current auth state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Token: s.token, User: s.user, Loading: s.loading}
}

// Initialize resolves the session from the persisted token. With no
// stored token it resolves to logged-out immediately; otherwise the
// token is validated by fetching the user profile, and a rejected token
// forces a logout so callers never see a token without a valid user.
func (s *Store) Initialize() {
	token, err := s.tokens.Read()
	if err != nil || token == "" {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.client.SetToken(token)

	user, err := s.client.Me()
	if err != nil {
		s.Logout()
		return
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()
}

// Login authenticates and persists the returned token. In-memory state
// is updated before returning so views re-render against the new
// session as soon as control comes back. On failure existing session
// state is untouched.
func (s *Store) Login(username, password string) Result {
	token, err := s.client.Login(username, password)
	if err != nil {
		return Result{Message: api.Message(err, "Login failed. Please try again.")}
	}

	if err := s.tokens.Write(token); err != nil {
		return Result{Message: "Could not save your session. Please try again."}
	}

	s.client.SetToken(token)
	user, uerr := s.client.Me()

	s.mu.Lock()
	s.token = token
	if uerr == nil {
		s.user = user
	}
	s.loading = false
	s.mu.Unlock()

	return Result{Success: true}
}

// Register creates an account. It never alters session state.
func (s *Store) Register(email, username, password string) Result {
	if err := s.client.Register(email, username, password); err != nil {
		return Result{Message: api.Message(err, "Registration failed. Please try again.")}
	}
	return Result{Success: true}
}

// Logout clears the persisted token, the in-memory session, and the
// client's auth header. Safe to call when already logged out.
func (s *Store) Logout() {
	_ = s.tokens.Remove()
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.loading = false
	s.mu.Unlock()
	s.client.ClearToken()
}
