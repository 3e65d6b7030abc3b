package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
	"github.com/evanwills/firing-pricing-adjuster/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store is a process-local storage.Store for the degraded-mode path.
// Nothing survives a restart.
type Store struct {
	mu      sync.RWMutex
	firings map[string]models.Firing
	members []models.Member
	users   map[string]models.User
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		firings: make(map[string]models.Firing),
		users:   make(map[string]models.User),
	}
}

// CreateFiring archives a firing in memory.
func (s *Store) CreateFiring(_ context.Context, firing *models.Firing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if firing.ID == "" {
		firing.ID = uuid.New().String()
	}
	if firing.CreatedAt == 0 {
		firing.CreatedAt = time.Now().Unix()
	}
	s.firings[firing.ID] = *firing
	return nil
}

// GetFiring retrieves an archived firing by ID.
func (s *Store) GetFiring(_ context.Context, firingID string) (*models.Firing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	firing, ok := s.firings[firingID]
	if !ok {
		return nil, fmt.Errorf("firing not found: %s", firingID)
	}
	return &firing, nil
}

// ListFirings returns all archived firings, newest first.
func (s *Store) ListFirings(_ context.Context) ([]*models.Firing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Firing, 0, len(s.firings))
	for id := range s.firings {
		firing := s.firings[id]
		out = append(out, &firing)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveMembers replaces the roster.
func (s *Store) SaveMembers(_ context.Context, members []models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append([]models.Member(nil), members...)
	return nil
}

// ListMembers returns the roster.
func (s *Store) ListMembers(_ context.Context) ([]models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Member(nil), s.members...), nil
}

// CreateUser persists a login account in memory.
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("email already registered: %s", user.Email)
		}
	}
	s.users[user.ID] = *user
	return nil
}

// GetUserByEmail retrieves an account by email.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id := range s.users {
		if s.users[id].Email == email {
			user := s.users[id]
			return &user, nil
		}
	}
	return nil, nil
}

// GetUserByID retrieves an account by ID.
func (s *Store) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
