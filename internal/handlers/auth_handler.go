package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/EscoLessgo/word-craft-arena/internal/models"
	"github.com/EscoLessgo/word-craft-arena/internal/security"
	"github.com/EscoLessgo/word-craft-arena/internal/service"
	"github.com/EscoLessgo/word-craft-arena/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService    *service.AuthService
	oauthProviders map[string]OAuthProvider
	redirectBase   string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, oauthProviders map[string]OAuthProvider, redirectBase string) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		oauthProviders: oauthProviders,
		redirectBase:   redirectBase,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

// Register creates a new account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "email already taken", "", nil)
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "registration failed", "Failed to register user", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, sessionResponse{
		UID:   user.UID,
		Email: user.Email,
		Name:  user.Name,
	})
}

// Login authenticates and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	session, user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "invalid email or password", "", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "login failed", "Failed to log in user", err)
		}
		return
	}

	h.setSessionCookie(w, r, session)
	respondJSON(w, http.StatusOK, sessionResponse{
		UID:   user.UID,
		Email: user.Email,
		Name:  user.Name,
		Token: token,
	})
}

// Logout clears the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondWithError(w, http.StatusInternalServerError, "logout failed", "Failed to log out", err)
			return
		}
	}

	h.clearSessionCookie(w, r)
	respondJSON(w, http.StatusOK, nil)
}

// Me returns the signed-in identity
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	respondJSON(w, http.StatusOK, sessionResponse{
		UID:   user.UID,
		Email: user.Email,
		Name:  user.Name,
	})
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

type passwordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// RequestPasswordReset starts the reset flow. Always answers 200 so the
// endpoint cannot be used to probe which emails have accounts.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondWithError(w, http.StatusInternalServerError, "could not process reset request", "Failed to request password reset", err)
		return
	}

	respondJSON(w, http.StatusOK, nil)
}

// ConfirmPasswordReset consumes a reset token
func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetConfirm
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrInvalidResetToken):
			respondWithError(w, http.StatusBadRequest, "invalid or expired reset token", "", nil)
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "could not reset password", "Failed to reset password", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, nil)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, r *http.Request, session *models.Session) {
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
}

func (h *AuthHandler) setTempCookie(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	http.SetCookie(w, security.CreateSessionCookie(r, name, value, time.Now().Add(ttl)))
}
