package handlers

import (
	"net/http"

	"github.com/pliu/parley/internal/auth"
	"github.com/pliu/parley/internal/config"
	"github.com/pliu/parley/internal/service"
)

type AuthHandler struct {
	Users *service.UserService
	Cfg   config.Config
}

type RegistrationRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Users.Authenticate(req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := auth.GenerateAccessToken(user.ID, h.Cfg.JWTSecret, h.Cfg.AccessTokenTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(h.Cfg.AccessTokenTTL.Seconds()),
	})
}
