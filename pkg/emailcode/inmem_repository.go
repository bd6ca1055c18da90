package emailcode

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository implements Repository using in-memory storage.
type InMemoryRepository struct {
	mu    sync.Mutex
	codes map[uuid.UUID]EmailCode // keyed by owning user id
}

// NewInMemoryRepository creates a new in-memory email code repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		codes: make(map[uuid.UUID]EmailCode),
	}
}

// Upsert stores a code for the user, replacing any outstanding code.
func (r *InMemoryRepository) Upsert(ctx context.Context, userID uuid.UUID, code string) (EmailCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ec := EmailCode{
		ID:        uuid.New(),
		UserID:    userID,
		Code:      code,
		CreatedAt: time.Now().UTC(),
	}
	r.codes[userID] = ec
	return ec, nil
}

// Redeem deletes the code under the lock, so a second redemption of the same
// code observes ErrCodeInvalid.
func (r *InMemoryRepository) Redeem(ctx context.Context, code string) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, ec := range r.codes {
		if ec.Code == code {
			delete(r.codes, userID)
			return userID, nil
		}
	}
	return uuid.Nil, ErrCodeInvalid
}
