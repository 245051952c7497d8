package handlers

import (
	"net/http"

	apierrors "github.com/thecontemporary/news-portal/internal/errors"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil || in.Email == "" || in.Password == "" {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	user, err := h.Client.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil || in.Email == "" || in.Password == "" {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	user, err := h.Client.Register(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Client.Me(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Logout всегда завершается успехом: локальная сессия очищается даже
// при недоступном backoffice.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Client.Logout(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if err := decodeStrict(r, &patch); err != nil || len(patch) == 0 {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	user, err := h.Client.UpdateProfile(r.Context(), patch)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var in changePasswordRequest
	if err := decodeStrict(r, &in); err != nil || in.CurrentPassword == "" || in.NewPassword == "" {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	if err := h.Client.ChangePassword(r.Context(), in.CurrentPassword, in.NewPassword); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
