package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/thecontemporary/news-portal/internal/errors"
	"github.com/thecontemporary/news-portal/internal/models"
)

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := models.UserListOptions{
		Role:   models.Role(q.Get("role")),
		Search: q.Get("search"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	page, err := h.Queries.Users(r.Context(), opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) SaveUser(w http.ResponseWriter, r *http.Request) {
	var in models.User
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	if id := chi.URLParam(r, "id"); id != "" {
		in.ID = id
	}

	saved, err := h.Queries.SaveUser(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) DashboardOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Queries.DashboardOverview(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}
