package memory

import (
	"context"
	"sync"

	"github.com/brightforge/agency-backend/internal/model"
	"github.com/brightforge/agency-backend/internal/repository"
)

type adminRow = model.AdminUser

// AdminUserRepository is the in-memory repository.AdminUserStore.
type AdminUserRepository struct {
	table *table[adminRow]
}

var _ repository.AdminUserStore = (*AdminUserRepository)(nil)

// insert adds u unless its username is taken. Callers hold the lock.
func (r *AdminUserRepository) insert(u *model.AdminUser) error {
	for _, row := range r.table.rows {
		if row.Username == u.Username {
			return repository.ErrConflict
		}
	}
	u.CreatedAt = r.table.now()
	u.ID = r.table.nextID
	r.table.insert(*u)
	return nil
}

func (r *AdminUserRepository) Create(_ context.Context, u *model.AdminUser) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()
	return r.insert(u)
}

func (r *AdminUserRepository) CreateFirst(_ context.Context, u *model.AdminUser) (bool, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if len(r.table.rows) > 0 {
		return false, nil
	}
	if err := r.insert(u); err != nil {
		return false, err
	}
	return true, nil
}

func (r *AdminUserRepository) GetByUsername(_ context.Context, username string) (*model.AdminUser, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()

	for _, row := range r.table.rows {
		if row.Username == username {
			u := row
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AdminUserRepository) Count(_ context.Context) (int, error) {
	r.table.mu.RLock()
	defer r.table.mu.RUnlock()
	return len(r.table.rows), nil
}

type sessionRow = model.AdminSession

// SessionRepository is the in-memory repository.SessionStore. Expired entries
// are dropped when they are next read.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]sessionRow
	now      Clock
}

var _ repository.SessionStore = (*SessionRepository)(nil)

func (r *SessionRepository) Create(_ context.Context, s *model.AdminSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Token] = *s
	return nil
}

func (r *SessionRepository) Get(_ context.Context, token string) (*model.AdminSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !r.now().Before(s.ExpiresAt) {
		delete(r.sessions, token)
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *SessionRepository) Delete(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[token]; !ok {
		return false, nil
	}
	delete(r.sessions, token)
	return true, nil
}

// Len returns the number of stored sessions, expired ones included.
func (r *SessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
