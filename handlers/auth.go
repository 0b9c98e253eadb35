package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"streamvault/models"
	"streamvault/services/session"
	"streamvault/services/users"
	"streamvault/utils/validate"
)

type sessionService interface {
	SignUp(ctx context.Context, email, password, name string) (models.User, error)
	SignIn(ctx context.Context, email, password string) (models.User, error)
	SignOut(ctx context.Context) error
	CurrentUser() (models.User, bool)
	UpdateProfile(update users.ProfileUpdate) (models.User, error)
}

var _ sessionService = (*session.Service)(nil)

// AuthHandler exposes the session register over HTTP.
type AuthHandler struct {
	Service sessionService
}

func NewAuthHandler(service sessionService) *AuthHandler {
	return &AuthHandler{Service: service}
}

func authErrorStatus(err error) int {
	var validationErr *validate.Error
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, users.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, users.ErrUserNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// SignUp registers a new account and signs it in.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Service.SignUp(r.Context(), body.Email, body.Password, body.Name)
	if err != nil {
		http.Error(w, err.Error(), authErrorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user.Public())
}

// SignIn resolves credentials and points the session at the user.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Service.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		http.Error(w, err.Error(), authErrorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Public())
}

// SignOut clears the current session.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.SignOut(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in user, or 401 when the session is absent.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Service.CurrentUser()
	if !ok {
		http.Error(w, session.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Public())
}

// UpdateProfile merges the provided fields into the signed-in user.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email  *string `json:"email"`
		Name   *string `json:"name"`
		Avatar *string `json:"avatar"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Service.UpdateProfile(users.ProfileUpdate{
		Email:  body.Email,
		Name:   body.Name,
		Avatar: body.Avatar,
	})
	if err != nil {
		http.Error(w, err.Error(), authErrorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user.Public())
}

func (h *AuthHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
