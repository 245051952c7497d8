package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/thecontemporary/news-portal/internal/errors"
	"github.com/thecontemporary/news-portal/internal/models"
)

func articleOptionsFromQuery(r *http.Request) models.ArticleListOptions {
	q := r.URL.Query()
	return models.ArticleListOptions{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Status:   models.ArticleStatus(q.Get("status")),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}
}

func (h *Handlers) ListArticles(w http.ResponseWriter, r *http.Request) {
	page, err := h.Queries.Articles(r.Context(), articleOptionsFromQuery(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) FeaturedArticles(w http.ResponseWriter, r *http.Request) {
	items, err := h.Queries.FeaturedArticles(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) BreakingArticles(w http.ResponseWriter, r *http.Request) {
	items, err := h.Queries.BreakingTicker(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) TrendingArticles(w http.ResponseWriter, r *http.Request) {
	items, err := h.Queries.TrendingArticles(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) LatestArticles(w http.ResponseWriter, r *http.Request) {
	items, err := h.Queries.LatestArticles(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")
	if identifier == "" {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	article, err := h.Queries.Article(r.Context(), identifier)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (h *Handlers) RelatedArticles(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category")
	items, err := h.Queries.RelatedArticles(r.Context(), categoryID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) SearchArticles(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	items, err := h.Queries.SearchArticles(r.Context(), term, articleOptionsFromQuery(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// Админские операции.

func (h *Handlers) AdminListArticles(w http.ResponseWriter, r *http.Request) {
	page, err := h.Queries.AdminArticles(r.Context(), articleOptionsFromQuery(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) SaveArticle(w http.ResponseWriter, r *http.Request) {
	var in models.Article
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	// id из пути имеет приоритет над телом: PUT /admin/articles/{id}.
	if id := chi.URLParam(r, "id"); id != "" {
		in.ID = id
	}

	saved, err := h.Queries.SaveArticle(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (h *Handlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	if err := h.Queries.DeleteArticle(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
