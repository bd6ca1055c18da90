package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// User is the stored account record. The password hash never leaves the
// service layer; every external representation goes through Public.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Country      string
	Image        string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the outward representation of a user. It has no password
// field at all, so it cannot leak one by accident.
type PublicUser struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Country    string    `json:"country"`
	Image      string    `json:"image"`
	IsVerified bool      `json:"isVerified"`
}

// Public projects the user onto its external representation.
func (u User) Public() PublicUser {
	var pub PublicUser
	_ = copier.Copy(&pub, &u)
	return pub
}

// PublicUsers projects a list of users.
func PublicUsers(users []User) []PublicUser {
	pubs := make([]PublicUser, len(users))
	for i, u := range users {
		pubs[i] = u.Public()
	}
	return pubs
}
