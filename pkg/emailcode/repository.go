package emailcode

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EmailCode represents an outstanding one-time code bound to a user.
type EmailCode struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Code      string
	CreatedAt time.Time
}

// Repository persists email codes. A user holds at most one outstanding code
// at a time; storing a new one replaces the previous one.
type Repository interface {
	// Upsert stores a code for the user, replacing any outstanding code.
	Upsert(ctx context.Context, userID uuid.UUID, code string) (EmailCode, error)

	// Redeem atomically deletes the code and returns its owner. When two
	// callers race on the same code, at most one succeeds; the other gets
	// ErrCodeInvalid.
	Redeem(ctx context.Context, code string) (uuid.UUID, error)
}
