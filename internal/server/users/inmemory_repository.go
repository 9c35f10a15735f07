package users

import (
	"context"
	"sync"
	"time"

	"github.com/dkotenko/botgate/internal/common"
	"github.com/google/uuid"
)

// InMemoryRepository is a map-backed Repository used in tests and local
// development. Records are keyed by telegram id.
type InMemoryRepository struct {
	mu    sync.RWMutex
	byTID map[string]*User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byTID: make(map[string]*User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byTID[user.TelegramID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now()
	r.byTID[created.TelegramID] = &created

	out := created
	return &out, nil
}

func (r *InMemoryRepository) GetByTelegramID(ctx context.Context, telegramID string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byTID[telegramID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	out := *user
	return &out, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byTID[user.TelegramID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	saved := *user
	saved.ID = existing.ID
	saved.CreatedAt = existing.CreatedAt
	r.byTID[saved.TelegramID] = &saved

	out := saved
	return &out, nil
}

func (r *InMemoryRepository) ListAdmins(ctx context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var admins []*User
	for _, user := range r.byTID {
		if user.IsAdmin {
			out := *user
			admins = append(admins, &out)
		}
	}
	return admins, nil
}
