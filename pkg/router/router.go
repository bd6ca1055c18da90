package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/noracamacho/verificationapp/pkg/user/api"
)

// Config holds the handlers and auth needed to set up routes.
type Config struct {
	UserHandle *api.Handle

	// Auth verifies bearer tokens on the gated routes.
	Auth *jwtauth.JWTAuth
}

// SetupRoutes mounts the /users surface on the provided router.
//
// Registration, login, the reset flow and code redemption are public;
// everything else requires a valid bearer token.
func SetupRoutes(router chi.Router, cfg Config) {
	router.Route("/users", func(r chi.Router) {
		r.Post("/", cfg.UserHandle.Register)
		r.Post("/login", cfg.UserHandle.Login)
		r.Post("/reset_password", cfg.UserHandle.RequestPasswordReset)
		r.Post("/reset_password/{code}", cfg.UserHandle.CompletePasswordReset)
		r.Get("/verify/{code}", cfg.UserHandle.VerifyEmail)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.Auth))
			r.Use(jwtauth.Authenticator(cfg.Auth))

			r.Get("/", cfg.UserHandle.GetUsers)
			r.Get("/me", cfg.UserHandle.GetMe)
			r.Get("/{id}", cfg.UserHandle.GetUser)
			r.Put("/{id}", cfg.UserHandle.UpdateUser)
			r.Delete("/{id}", cfg.UserHandle.DeleteUser)
		})
	})
}
