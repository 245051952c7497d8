package queries

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/thecontemporary/news-portal/internal/backoffice"
	"github.com/thecontemporary/news-portal/internal/config"
	"github.com/thecontemporary/news-portal/internal/models"
	"github.com/thecontemporary/news-portal/internal/session"
	"github.com/thecontemporary/news-portal/mocks"
)

func newMockedQueries(t *testing.T, handler http.Handler) (*Queries, *mocks.MockStore) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	client := backoffice.New(config.BackofficeConfig{
		BaseURL:   srv.URL,
		APIPrefix: "/api/v1",
		Timeout:   5 * time.Second,
	}, store)

	ctrl := gomock.NewController(t)
	cs := mocks.NewMockStore(ctrl)

	return New(client, cs, time.Minute), cs
}

func TestSaveArticle_InvalidatesPublicAndAdminFamilies(t *testing.T) {
	t.Parallel()

	q, cs := newMockedQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/articles", r.URL.Path)
		writeEnvelope(w, models.Article{ID: "a1", Title: "Saved"})
	}))

	gomock.InOrder(
		cs.EXPECT().DeleteByPrefix(gomock.Any(), famArticles).Return(nil),
		cs.EXPECT().DeleteByPrefix(gomock.Any(), famAdminArticles).Return(nil),
		cs.EXPECT().DeleteByPrefix(gomock.Any(), famArticleItem).Return(nil),
	)

	saved, err := q.SaveArticle(context.Background(), models.Article{Title: "Saved"})
	require.NoError(t, err)
	require.Equal(t, "a1", saved.ID)
}

func TestSaveArticle_FailureSkipsInvalidation(t *testing.T) {
	t.Parallel()

	q, cs := newMockedQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "validation failed", http.StatusBadRequest)
	}))

	// Ни одного вызова DeleteByPrefix не ожидается: мутация не удалась.
	_ = cs

	_, err := q.SaveArticle(context.Background(), models.Article{})
	require.Error(t, err)
}

func TestDeleteCategory_InvalidatesCategoryFamilies(t *testing.T) {
	t.Parallel()

	q, cs := newMockedQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/v1/categories/c1", r.URL.Path)
		writeEnvelope(w, nil)
	}))

	cs.EXPECT().DeleteByPrefix(gomock.Any(), famCategories).Return(nil)
	cs.EXPECT().DeleteByPrefix(gomock.Any(), famAdminCategories).Return(nil)
	cs.EXPECT().DeleteByPrefix(gomock.Any(), famCategoryItem).Return(nil)

	require.NoError(t, q.DeleteCategory(context.Background(), "c1"))
}

func TestSaveAd_InvalidationErrorDoesNotFailMutation(t *testing.T) {
	t.Parallel()

	q, cs := newMockedQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, models.Advertisement{ID: "ad1"})
	}))

	cs.EXPECT().DeleteByPrefix(gomock.Any(), famAds).Return(context.DeadlineExceeded)
	cs.EXPECT().DeleteByPrefix(gomock.Any(), famAdminAds).Return(nil)

	saved, err := q.SaveAd(context.Background(), models.Advertisement{})
	require.NoError(t, err)
	require.Equal(t, "ad1", saved.ID)
}

// Сквозной сценарий на реальном кэше: чтение после мутации не видит
// устаревший список.
func TestMutation_ReadAfterWriteSeesFreshList(t *testing.T) {
	t.Parallel()

	var articles atomic.Value
	articles.Store([]models.Article{{ID: "a1", Title: "First"}})

	q, _ := newTestQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			list := articles.Load().([]models.Article)
			created := models.Article{ID: "a2", Title: "Second"}
			articles.Store(append(list, created))
			writeEnvelope(w, created)
			return
		}

		writeEnvelope(w, articles.Load().([]models.Article))
	}), time.Minute)

	ctx := context.Background()

	before, err := q.Articles(ctx, models.ArticleListOptions{})
	require.NoError(t, err)
	require.Len(t, before.Items, 1)

	_, err = q.SaveArticle(ctx, models.Article{Title: "Second"})
	require.NoError(t, err)

	after, err := q.Articles(ctx, models.ArticleListOptions{})
	require.NoError(t, err)
	require.Len(t, after.Items, 2)
}
