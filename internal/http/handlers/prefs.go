package handlers

import (
	"net/http"

	apierrors "github.com/thecontemporary/news-portal/internal/errors"
	"github.com/thecontemporary/news-portal/internal/models"
)

// Пользовательские предпочтения (язык интерфейса и тема) живут в локальной
// сессии портала, а не в backoffice.

type preferencesResponse struct {
	Language models.Language `json:"language"`
	Theme    models.Theme    `json:"theme"`
}

type languageRequest struct {
	Language models.Language `json:"language"`
}

type themeRequest struct {
	Theme models.Theme `json:"theme"`
}

func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, preferencesResponse{
		Language: h.Sessions.Language(),
		Theme:    h.Sessions.Theme(),
	})
}

func (h *Handlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var in languageRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	if in.Language != models.LanguageEN && in.Language != models.LanguageBN {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	h.Sessions.SetLanguage(in.Language)
	writeJSON(w, http.StatusOK, preferencesResponse{
		Language: h.Sessions.Language(),
		Theme:    h.Sessions.Theme(),
	})
}

func (h *Handlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	var in themeRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	if in.Theme != models.ThemeLight && in.Theme != models.ThemeDark {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	h.Sessions.SetTheme(in.Theme)
	writeJSON(w, http.StatusOK, preferencesResponse{
		Language: h.Sessions.Language(),
		Theme:    h.Sessions.Theme(),
	})
}
