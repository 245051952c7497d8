package backoffice

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/thecontemporary/news-portal/internal/models"
)

// MediaUpload — параметры загрузки файла в медиатеку.
type MediaUpload struct {
	FileName string
	Content  []byte
	Alt      string
	Folder   string
	Tags     []string
}

// ListMedia возвращает страницу медиатеки.
func (c *Client) ListMedia(ctx context.Context, opts models.MediaListOptions) ([]models.Media, *models.Pagination, error) {
	const op = "backoffice.media.ListMedia"

	env, err := c.get(ctx, withQuery("/media", opts.Values()))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := Data[[]models.Media](env)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, env.Pagination, nil
}

// UploadMedia загружает файл multipart-запросом.
// Content-Type выставляется самим multipart-писателем (boundary),
// поэтому запрос идёт с formEncoded и JSON не навязывается.
func (c *Client) UploadMedia(ctx context.Context, upload MediaUpload) (*models.Media, error) {
	const op = "backoffice.media.UploadMedia"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", upload.FileName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := part.Write(upload.Content); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if upload.Alt != "" {
		_ = mw.WriteField("alt", upload.Alt)
	}
	if upload.Folder != "" {
		_ = mw.WriteField("folder", upload.Folder)
	}
	if len(upload.Tags) > 0 {
		_ = mw.WriteField("tags", strings.Join(upload.Tags, ","))
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	header := http.Header{}
	header.Set("Content-Type", mw.FormDataContentType())

	env, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/media/upload",
		body:        buf.Bytes(),
		header:      header,
		formEncoded: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	media, err := Data[models.Media](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &media, nil
}
