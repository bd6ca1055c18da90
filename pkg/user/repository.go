package user

import (
	"context"

	"github.com/google/uuid"
)

// CreateUserParams represents parameters for creating a user.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Country      string
	Image        string
}

// UpdateUserParams represents the mutable profile fields. A nil field is
// left untouched, so callers can update a subset of the profile. The
// password hash and the verified flag are deliberately absent: the password
// changes only through the reset flow, the flag only through code redemption.
type UpdateUserParams struct {
	Email     *string
	FirstName *string
	LastName  *string
	Country   *string
	Image     *string
}

// Repository defines the user store operations.
type Repository interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, params CreateUserParams) (User, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
