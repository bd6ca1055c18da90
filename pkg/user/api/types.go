package api

import "github.com/noracamacho/verificationapp/pkg/user"

// RegisterRequest mirrors the registration body, including the frontend base
// URL the verification link is built from.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Country      string `json:"country"`
	Image        string `json:"image"`
	FrontBaseURL string `json:"frontBaseUrl"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  user.PublicUser `json:"user"`
	Token string          `json:"token"`
}

type ResetPasswordRequest struct {
	Email        string `json:"email"`
	FrontBaseURL string `json:"frontBaseUrl"`
}

type CompleteResetRequest struct {
	Password string `json:"password"`
}

// UpdateUserRequest holds the mutable profile fields. Fields absent from
// the body stay nil and keep their stored value. Password and verification
// status are not part of it; extra body fields are ignored.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Country   *string `json:"country"`
	Image     *string `json:"image"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
