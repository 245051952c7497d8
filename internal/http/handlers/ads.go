package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/thecontemporary/news-portal/internal/errors"
	"github.com/thecontemporary/news-portal/internal/models"
)

func (h *Handlers) ActiveAds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := models.AdListOptions{
		Position: models.AdPlacement(q.Get("position")),
		Page:     q.Get("page"),
		Type:     q.Get("type"),
	}

	items, err := h.Queries.ActiveAds(r.Context(), opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// TrackImpression и TrackClick — fire-and-forget: счётчики не важнее
// отрисовки страницы, клиенту всегда отвечаем 204.

func (h *Handlers) TrackImpression(w http.ResponseWriter, r *http.Request) {
	if id := chi.URLParam(r, "id"); id != "" {
		h.Client.TrackImpression(r.Context(), id)
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) TrackClick(w http.ResponseWriter, r *http.Request) {
	if id := chi.URLParam(r, "id"); id != "" {
		h.Client.TrackClick(r.Context(), id)
	}

	w.WriteHeader(http.StatusNoContent)
}

// Админские операции.

func (h *Handlers) AdminListAds(w http.ResponseWriter, r *http.Request) {
	items, err := h.Queries.AdminAds(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) SaveAd(w http.ResponseWriter, r *http.Request) {
	var in models.Advertisement
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	if id := chi.URLParam(r, "id"); id != "" {
		in.ID = id
	}

	saved, err := h.Queries.SaveAd(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	if err := h.Queries.DeleteAd(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
