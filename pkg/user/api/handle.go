package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/noracamacho/verificationapp/pkg/user"
)

// Handle implements the /users HTTP surface.
type Handle struct {
	userService *user.UserService
}

// NewHandle creates a new user API handle.
func NewHandle(userService *user.UserService) *Handle {
	return &Handle{
		userService: userService,
	}
}

// Register handles POST /users
func (h *Handle) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	u, err := h.userService.Register(r.Context(), user.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Country:   req.Country,
		Image:     req.Image,
		BaseURL:   req.FrontBaseURL,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, u.Public())
}

// Login handles POST /users/login
func (h *Handle) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	u, token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.JSON(w, r, LoginResponse{User: u.Public(), Token: token})
}

// GetUsers handles GET /users
func (h *Handle) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.FindUsers(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.JSON(w, r, user.PublicUsers(users))
}

// GetMe handles GET /users/me. The caller's identity comes from the bearer
// token subject; the record is reloaded so the response is never stale.
func (h *Handle) GetMe(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, MessageResponse{Message: "Invalid Credentials"})
		return
	}

	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, MessageResponse{Message: "Invalid Credentials"})
		return
	}

	u, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.JSON(w, r, u.Public())
}

// GetUser handles GET /users/{id}
func (h *Handle) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.JSON(w, r, u.Public())
}

// UpdateUser handles PUT /users/{id}
func (h *Handle) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	u, err := h.userService.UpdateUser(r.Context(), id, user.UpdateUserParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Country:   req.Country,
		Image:     req.Image,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.JSON(w, r, u.Public())
}

// DeleteUser handles DELETE /users/{id}
func (h *Handle) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

// RequestPasswordReset handles POST /users/reset_password
func (h *Handle) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	u, err := h.userService.RequestPasswordReset(r.Context(), req.Email, req.FrontBaseURL)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, u.Public())
}

// CompletePasswordReset handles POST /users/reset_password/{code}
func (h *Handle) CompletePasswordReset(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req CompleteResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: "Invalid request body"})
		return
	}

	u, err := h.userService.CompletePasswordReset(r.Context(), code, req.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.JSON(w, r, u.Public())
}

// VerifyEmail handles GET /users/verify/{code}
func (h *Handle) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	u, err := h.userService.VerifyEmail(r.Context(), code)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	render.JSON(w, r, u.Public())
}

func (h *Handle) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// an unparsable id cannot name an existing resource
		w.WriteHeader(http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// respondError translates service errors to HTTP responses. Invalid logins,
// unverified accounts and spent codes all map to the same 401 body.
func (h *Handle) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidRequest):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, MessageResponse{Message: err.Error()})
	case errors.Is(err, user.ErrInvalidCredentials):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, MessageResponse{Message: "Invalid Credentials"})
	case errors.Is(err, user.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, user.ErrEmailTaken):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, MessageResponse{Message: "Email already registered"})
	default:
		slog.Error("Request failed", "path", r.URL.Path, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, MessageResponse{Message: "Internal server error"})
	}
}
