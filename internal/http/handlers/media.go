package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/thecontemporary/news-portal/internal/backoffice"
	apierrors "github.com/thecontemporary/news-portal/internal/errors"
	"github.com/thecontemporary/news-portal/internal/models"
)

// Потолок размера загружаемого файла.
const maxUploadBytes = 32 << 20

func (h *Handlers) ListMedia(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := models.MediaListOptions{
		Folder: q.Get("folder"),
		Type:   q.Get("type"),
		Search: q.Get("search"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	page, err := h.Queries.MediaLibrary(r.Context(), opts)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		apierrors.WriteError(w, r, statusErrorInvalidArgument())
		return
	}

	upload := backoffice.MediaUpload{
		FileName: header.Filename,
		Content:  content,
		Alt:      r.FormValue("alt"),
		Folder:   r.FormValue("folder"),
	}
	if tags := r.FormValue("tags"); tags != "" {
		upload.Tags = strings.Split(tags, ",")
	}

	media, err := h.Queries.UploadMedia(r.Context(), upload)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, media)
}
