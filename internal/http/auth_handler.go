package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abheydecbs/webshop-eksamen/internal/auth"
	"github.com/abheydecbs/webshop-eksamen/internal/repository"
)

type AuthHandler struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewAuthHandler(users repository.UserRepository, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type CredentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "Email og password er påkrævet")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	userID, err := h.users.CreateUser(r.Context(), req.Email, hash)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.issueCookie(w, userID, req.Email); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "email": req.Email})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "Email og password er påkrævet")
		return
	}

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "unauthenticated", "Forkert email eller password")
			return
		}
		handleServiceError(w, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "Forkert email eller password")
		return
	}

	if err := h.issueCookie(w, user.ID, user.Email); err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "email": user.Email})
}

// Me echoes the verified identity; the cart manager uses it as its
// authentication check.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"userId": getUserIDFromContext(r.Context()),
		"email":  getUserEmailFromContext(r.Context()),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *AuthHandler) issueCookie(w http.ResponseWriter, userID int64, email string) error {
	token, err := h.tokens.Issue(userID, email)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenTTL.Seconds()),
	})
	return nil
}
