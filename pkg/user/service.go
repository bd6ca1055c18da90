package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/noracamacho/verificationapp/pkg/emailcode"
	"github.com/noracamacho/verificationapp/pkg/tokengenerator"
)

// UserService implements the account operations: registration with email
// verification, login, profile CRUD and the password reset flow.
type UserService struct {
	repo   Repository
	codes  *emailcode.Service
	tokens *tokengenerator.JwtService
}

// NewUserService creates a new user service.
func NewUserService(repo Repository, codes *emailcode.Service, tokens *tokengenerator.JwtService) *UserService {
	return &UserService{
		repo:   repo,
		codes:  codes,
		tokens: tokens,
	}
}

// RegisterParams represents a registration request.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Country   string
	Image     string
	BaseURL   string
}

func (p RegisterParams) validate() error {
	if p.Email == "" || p.Password == "" || p.FirstName == "" || p.LastName == "" || p.Country == "" || p.Image == "" {
		return fmt.Errorf("%w: email, password, firstName, lastName, country and image are required", ErrInvalidRequest)
	}
	return nil
}

// Register creates an unverified user and sends the verification email.
// A duplicate email fails with ErrEmailTaken and leaves the existing
// record untouched.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (User, error) {
	if err := params.validate(); err != nil {
		return User{}, err
	}

	passwordHash, err := HashPassword(params.Password)
	if err != nil {
		return User{}, err
	}

	u, err := s.repo.Create(ctx, CreateUserParams{
		Email:        params.Email,
		PasswordHash: passwordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Country:      params.Country,
		Image:        params.Image,
	})
	if err != nil {
		if !errors.Is(err, ErrEmailTaken) {
			slog.Error("Failed to create user", "email", params.Email, "error", err)
		}
		return User{}, err
	}

	_, err = s.codes.Issue(ctx, recipientOf(u), emailcode.KindVerification, params.BaseURL)
	if err != nil {
		slog.Error("Failed to issue verification code", "user_id", u.ID, "error", err)
		return User{}, err
	}

	slog.Info("User registered", "user_id", u.ID)
	return u, nil
}

// Login authenticates by email and password and mints a bearer token.
// A missing user, an unverified account and a wrong password are all
// reported as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (User, string, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	if !u.IsVerified {
		return User{}, "", ErrInvalidCredentials
	}

	valid, err := CheckPasswordHash(password, u.PasswordHash)
	if err != nil || !valid {
		return User{}, "", ErrInvalidCredentials
	}

	token, _, err := s.tokens.GenerateToken(u.ID.String(), u.Public())
	if err != nil {
		slog.Error("Failed to generate token", "user_id", u.ID, "error", err)
		return User{}, "", err
	}

	return u, token, nil
}

// FindUsers returns all users.
func (s *UserService) FindUsers(ctx context.Context) ([]User, error) {
	return s.repo.FindAll(ctx)
}

// GetUser returns the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateUser mutates the provided profile fields; absent fields keep their
// stored value. The password and the verified flag are not part of the
// mutable set. Every profile field is required, so a provided field cannot
// be blanked.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) (User, error) {
	for name, value := range map[string]*string{
		"email":     params.Email,
		"firstName": params.FirstName,
		"lastName":  params.LastName,
		"country":   params.Country,
		"image":     params.Image,
	} {
		if value != nil && *value == "" {
			return User{}, fmt.Errorf("%w: %s cannot be empty", ErrInvalidRequest, name)
		}
	}
	return s.repo.Update(ctx, id, params)
}

// DeleteUser removes the user.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// RequestPasswordReset issues a reset code for a verified account. An
// unknown email and an unverified account both fail with
// ErrInvalidCredentials.
func (s *UserService) RequestPasswordReset(ctx context.Context, email, baseURL string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return User{}, ErrInvalidCredentials
	}

	_, err = s.codes.Issue(ctx, recipientOf(u), emailcode.KindReset, baseURL)
	if err != nil {
		slog.Error("Failed to issue reset code", "user_id", u.ID, "error", err)
		return User{}, err
	}

	return u, nil
}

// CompletePasswordReset redeems a reset code and replaces the stored
// password hash. The new password is hashed before the code is redeemed,
// so a rejected password leaves the code outstanding and the caller can
// retry. Returns the freshly reloaded user.
func (s *UserService) CompletePasswordReset(ctx context.Context, code, newPassword string) (User, error) {
	passwordHash, err := HashPassword(newPassword)
	if err != nil {
		return User{}, err
	}

	userID, err := s.codes.Redeem(ctx, code)
	if err != nil {
		if errors.Is(err, emailcode.ErrCodeInvalid) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := s.repo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		slog.Error("Failed to update password", "user_id", userID, "error", err)
		return User{}, err
	}

	slog.Info("Password reset completed", "user_id", userID)
	return s.repo.FindByID(ctx, userID)
}

// VerifyEmail redeems a verification code and flips the verified flag.
// Returns the freshly reloaded user.
func (s *UserService) VerifyEmail(ctx context.Context, code string) (User, error) {
	userID, err := s.codes.Redeem(ctx, code)
	if err != nil {
		if errors.Is(err, emailcode.ErrCodeInvalid) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := s.repo.MarkVerified(ctx, userID); err != nil {
		slog.Error("Failed to mark user as verified", "user_id", userID, "error", err)
		return User{}, err
	}

	slog.Info("Email verified", "user_id", userID)
	return s.repo.FindByID(ctx, userID)
}

func recipientOf(u User) emailcode.Recipient {
	return emailcode.Recipient{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
