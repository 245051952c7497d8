package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/thecontemporary/news-portal/internal/errors"
	"github.com/thecontemporary/news-portal/internal/models"
)

func (h *Handlers) MenuCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.Queries.MenuCategories(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.Queries.CategoryTree(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")
	if identifier == "" {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	category, err := h.Queries.Category(r.Context(), identifier)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, category)
}

// Админские операции.

func (h *Handlers) AdminListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.Queries.AdminCategories(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) SaveCategory(w http.ResponseWriter, r *http.Request) {
	var in models.Category
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	if id := chi.URLParam(r, "id"); id != "" {
		in.ID = id
	}

	saved, err := h.Queries.SaveCategory(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	if err := h.Queries.DeleteCategory(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
