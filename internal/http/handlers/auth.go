package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/denizokt/spendtrack/internal/auth"
	"github.com/denizokt/spendtrack/internal/config"
	"github.com/denizokt/spendtrack/internal/models"
	"github.com/denizokt/spendtrack/internal/models/dto"
	"github.com/denizokt/spendtrack/internal/storage"
)

// AuthHandler owns the register and login endpoints. Both bypass the
// token gate.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
	cfg    *config.Config
	log    *logrus.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager, cfg *config.Config, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, cfg: cfg, log: log}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	if _, err := h.store.FindByUsername(r.Context(), username); err == nil {
		respondError(w, http.StatusBadRequest, "username already exists")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		h.log.WithError(err).Error("register: username lookup failed")
		respondError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		h.log.WithError(err).Error("register: hash password failed")
		respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	person := models.Person{
		Name:  strings.TrimSpace(req.FirstName),
		Email: strings.TrimSpace(req.Email),
	}
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	if _, err := h.store.RegisterUser(r.Context(), person, user); err != nil {
		// The unique constraint backstops the lookup above under
		// concurrent registration of the same username.
		if errors.Is(err, storage.ErrAlreadyExists) {
			respondError(w, http.StatusBadRequest, "username already exists")
			return
		}
		h.log.WithError(err).Error("register: create user failed")
		respondError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "user registered successfully"})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := h.store.FindByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.WithError(err).Error("login: user lookup failed")
		respondError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user.Username)
	if err != nil {
		h.log.WithError(err).Error("login: token generation failed")
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, dto.LoginResponse{Token: token})
}
