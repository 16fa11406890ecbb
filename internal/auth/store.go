package auth

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/shared"
)

// CredentialRepository persists the credential set between sessions.
type CredentialRepository interface {
	Load() (*models.Credentials, error) // Load returns the stored credentials or nil when none exist
	Save(*models.Credentials) error     // Save replaces the stored credentials
	Clear() error                       // Clear deletes the stored credentials
}

// Store holds the credential set for the current session.
//
// The whole record is replaced under a lock, so readers observe either the
// previous valid set or the new one, never a torn write. Only [Manager]
// mutates the store, and only after a successful exchange or refresh.
type Store struct {
	mu     sync.RWMutex
	creds  *models.Credentials
	repo   CredentialRepository
	logger *log.Logger
}

// NewStore creates a Store backed by the given repository. The repository
// may be nil for a purely in-memory store (used in tests).
func NewStore(repo CredentialRepository, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{repo: repo, logger: logger}
}

// Init loads persisted credentials into memory. Called once at startup.
func (s *Store) Init() error {
	if s.repo == nil {
		return nil
	}

	creds, err := s.repo.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	if creds != nil {
		s.logger.Debug("loaded stored credentials", "expires_at", creds.ExpiresAt)
	}
	return nil
}

// Get returns a copy of the current credentials. ok is false when unauthenticated.
func (s *Store) Get() (creds models.Credentials, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.creds == nil {
		return models.Credentials{}, false
	}
	return *s.creds, true
}

// Set replaces the credential set and persists it.
func (s *Store) Set(creds models.Credentials) error {
	s.mu.Lock()
	s.creds = &creds
	s.mu.Unlock()

	if s.repo == nil {
		return nil
	}
	return s.repo.Save(&creds)
}

// Clear discards the credential set, in memory and at rest. Called at logout
// and when the provider rejects the refresh token.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.creds = nil
	s.mu.Unlock()

	if s.repo == nil {
		return nil
	}
	return s.repo.Clear()
}
