package sdk

import (
	"errors"
	"sync"
	"time"
)

// ErrNotLoggedIn is returned by a CredentialStore that holds no credentials.
var ErrNotLoggedIn = errors.New("not logged in")

// Credentials is the persisted bearer credential plus the profile returned at sign-in.
type Credentials struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	Email       string    `json:"email,omitempty"`
	FullName    string    `json:"full_name,omitempty"`
	Role        RoleName  `json:"role,omitempty"`
	SavedAt     time.Time `json:"saved_at"`
}

// CredentialStore persists credentials between invocations.
type CredentialStore interface {
	SaveCredentials(credentials *Credentials) error
	// LoadCredentials returns ErrNotLoggedIn when nothing is stored.
	LoadCredentials() (*Credentials, error)
	DeleteCredentials() error
}

// MemoryStore keeps credentials in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	creds *Credentials
}

var _ CredentialStore = (*MemoryStore)(nil)

// NewMemoryStore returns a store preloaded with token when it is non-empty.
func NewMemoryStore(token string) *MemoryStore {
	s := &MemoryStore{}
	if token != "" {
		s.creds = &Credentials{AccessToken: token, TokenType: "Bearer", SavedAt: time.Now()}
	}
	return s
}

func (s *MemoryStore) SaveCredentials(credentials *Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *credentials
	s.creds = &c
	return nil
}

func (s *MemoryStore) LoadCredentials() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, ErrNotLoggedIn
	}
	c := *s.creds
	return &c, nil
}

func (s *MemoryStore) DeleteCredentials() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}

// Session answers whether the caller is authenticated and exposes the bearer token.
// A store that fails to load is treated as holding no credential.
type Session struct {
	store CredentialStore
}

// NewSession wraps store. A nil store yields an in-memory session.
func NewSession(store CredentialStore) *Session {
	if store == nil {
		store = NewMemoryStore("")
	}
	return &Session{store: store}
}

// SetCredential replaces the stored token, dropping any saved profile.
func (s *Session) SetCredential(token string) error {
	return s.Save(&Credentials{AccessToken: token, TokenType: "Bearer"})
}

// Save stores the full credentials record.
func (s *Session) Save(creds *Credentials) error {
	if creds == nil || creds.AccessToken == "" {
		return errors.New("access token is required")
	}
	if creds.SavedAt.IsZero() {
		creds.SavedAt = time.Now()
	}
	return s.store.SaveCredentials(creds)
}

// Credential returns the bearer token, or false when none is stored.
func (s *Session) Credential() (string, bool) {
	creds, err := s.store.LoadCredentials()
	if err != nil || creds == nil || creds.AccessToken == "" {
		return "", false
	}
	return creds.AccessToken, true
}

// Credentials returns the stored record.
func (s *Session) Credentials() (*Credentials, error) {
	return s.store.LoadCredentials()
}

// Clear removes the stored credential.
func (s *Session) Clear() error {
	return s.store.DeleteCredentials()
}

// IsAuthenticated is true iff a credential is present.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.Credential()
	return ok
}
