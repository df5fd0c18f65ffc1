package handlers

import (
	"errors"
	"io"
	"net/http"

	"medtrack/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	oauthProviders       map[string]OAuthProvider
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, oauthProviders map[string]OAuthProvider,
	oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		oauthProviders:       oauthProviders,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

// Register handles caretaker signup
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	user, tokens, err := h.authService.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, struct {
		User   userView  `json:"user"`
		Tokens tokenView `json:"tokens"`
	}{newUserView(user), newTokenView(tokens)})
}

// Login handles caretaker login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	user, tokens, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		User   userView  `json:"user"`
		Tokens tokenView `json:"tokens"`
	}{newUserView(user), newTokenView(tokens)})
}

// ElderSignIn creates an anonymous elder account and its pairing code
func (h *AuthHandler) ElderSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"display_name"`
	}
	// An empty body is a valid sign-in with the default display name.
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	user, elder, tokens, err := h.authService.ElderSignIn(req.DisplayName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, struct {
		User   userView  `json:"user"`
		Elder  elderView `json:"elder"`
		Tokens tokenView `json:"tokens"`
	}{
		newUserView(user),
		elderView{ID: elder.ID, Name: elder.Name, PairingCode: elder.PairingCode},
		newTokenView(tokens),
	})
}

// Refresh rotates a refresh token
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	user, tokens, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		User   userView  `json:"user"`
		Tokens tokenView `json:"tokens"`
	}{newUserView(user), newTokenView(tokens)})
}

// Logout revokes the caller's refresh tokens
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if err := h.authService.Logout(user.ID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Me returns the authenticated user's profile with linked elder ids
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if user.IsCaretaker() {
		linked, err := h.authService.LinkedElders(user.ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		user.LinkedTo = linked
	}

	respondJSON(w, http.StatusOK, struct {
		User userView `json:"user"`
	}{newUserView(user)})
}
