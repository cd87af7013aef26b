package handler

import (
	"errors"
	"net/http"

	"murmur/internal/auth"

	"go.uber.org/zap"
)

type AuthHandler struct {
	Responder
	Svc      *auth.Service
	Sessions *auth.Sessions
}

func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register", nil)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	f, ok := formFields(w, r, "email", "username", "firstname", "lastname", "password", "confirm_password")
	if !ok {
		return
	}

	u, err := h.Svc.Register(r.Context(), auth.RegisterInput{
		Email:           f[0],
		Username:        f[1],
		Firstname:       f[2],
		Lastname:        f[3],
		Password:        f[4],
		ConfirmPassword: f[5],
	})
	switch {
	case errors.Is(err, auth.ErrPasswordMismatch):
		http.Error(w, "Password and confirm password do not match", http.StatusBadRequest)
		return
	case errors.Is(err, auth.ErrDuplicateIdentity):
		http.Error(w, "Username or email already exists", http.StatusConflict)
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	h.Log.Info("user registered", zap.Uint64("user_id", u.ID), zap.String("username", u.Username))
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	f, ok := formFields(w, r, "username", "password")
	if !ok {
		return
	}

	u, err := h.Svc.Login(r.Context(), f[0], f[1])
	if errors.Is(err, auth.ErrInvalidCredentials) {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	if err := h.Sessions.Start(w, u.Username); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteAccount removes the current user and everything they own.
func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request, s auth.Session) {
	uid, ok := h.viewer(w, r, s)
	if !ok {
		return
	}
	if err := h.Svc.Users.Delete(r.Context(), uid); err != nil {
		h.serverError(w, r, err)
		return
	}
	h.Sessions.Clear(w)
	h.Log.Info("account deleted", zap.Uint64("user_id", uid))
	http.Redirect(w, r, "/register", http.StatusSeeOther)
}
