package queries

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thecontemporary/news-portal/internal/backoffice"
	"github.com/thecontemporary/news-portal/internal/cache"
	"github.com/thecontemporary/news-portal/internal/config"
	"github.com/thecontemporary/news-portal/internal/models"
	"github.com/thecontemporary/news-portal/internal/session"
)

func newTestQueries(t *testing.T, handler http.Handler, freshFor time.Duration) (*Queries, cache.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	client := backoffice.New(config.BackofficeConfig{
		BaseURL:   srv.URL,
		APIPrefix: "/api/v1",
		Timeout:   5 * time.Second,
	}, store)

	cs := cache.NewMemoryStore()
	t.Cleanup(func() { _ = cs.Close() })

	return New(client, cs, freshFor), cs
}

func writeEnvelope(w http.ResponseWriter, data any) {
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func TestMenuCategories_MissFetchesThenFreshHitServesFromCache(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	q, _ := newTestQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, "/api/v1/categories", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("menu"))
		writeEnvelope(w, []models.Category{{ID: "c1", Name: "Politics", Slug: "politics"}})
	}), time.Minute)

	ctx := context.Background()

	first, err := q.MenuCategories(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, "politics", first[0].Slug)
	require.EqualValues(t, 1, hits.Load())

	// Запись свежая: второе чтение в сеть не ходит.
	second, err := q.MenuCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.EqualValues(t, 1, hits.Load())
}

func TestResolve_StaleServesCachedAndRefetchesInBackground(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	q, cs := newTestQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeEnvelope(w, []models.Category{{ID: "c2", Name: "Sports", Slug: "sports"}})
	}), time.Minute)

	ctx := context.Background()

	// Протухшая запись: FetchedAt далеко за окном свежести.
	stale := []models.Category{{ID: "c1", Name: "Old", Slug: "old"}}
	payload, err := json.Marshal(stale)
	require.NoError(t, err)

	key := keyCategoriesList(models.CategoryListOptions{MenuOnly: true})
	require.NoError(t, cs.Set(ctx, key, &cache.Entry{
		FetchedAt: time.Now().UTC().Add(-time.Hour),
		Payload:   payload,
	}, 0))

	// Отдаётся последнее известное значение, не свежее.
	got, err := q.MenuCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, stale, got)

	// Фоновый перезапрос обновляет запись.
	require.Eventually(t, func() bool {
		entry, ok, err := cs.Get(ctx, key)
		if err != nil || !ok {
			return false
		}

		var cached []models.Category
		if err := json.Unmarshal(entry.Payload, &cached); err != nil {
			return false
		}

		return len(cached) == 1 && cached[0].Slug == "sports"
	}, 3*time.Second, 10*time.Millisecond)
	require.EqualValues(t, 1, hits.Load())
}

func TestResolve_FetchFailureFallsBackToStatic(t *testing.T) {
	t.Parallel()

	q, _ := newTestQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backoffice down", http.StatusInternalServerError)
	}), time.Minute)

	got, err := q.FeaturedArticles(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, got)

	// Ошибка сети не кэшируется: следующее чтение снова пробует сеть.
	again, err := q.FeaturedArticles(context.Background())
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestArticle_EmptyIdentifierSkipsNetwork(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	q, _ := newTestQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeEnvelope(w, models.Article{ID: "a1"})
	}), time.Minute)

	got, err := q.Article(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, got.ID)
	require.EqualValues(t, 0, hits.Load())
}

func TestSearchArticles_EmptyTermReturnsEmptyWithoutNetwork(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	q, _ := newTestQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeEnvelope(w, []models.Article{})
	}), time.Minute)

	got, err := q.SearchArticles(context.Background(), "", models.ArticleListOptions{})
	require.NoError(t, err)
	require.Empty(t, got)
	require.EqualValues(t, 0, hits.Load())
}

func TestArticles_DistinctOptionsDoNotShareCacheEntries(t *testing.T) {
	t.Parallel()

	q, _ := newTestQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		writeEnvelope(w, []models.Article{{ID: "for-" + category, Slug: category}})
	}), time.Minute)

	ctx := context.Background()

	sports, err := q.Articles(ctx, models.ArticleListOptions{Category: "sports"})
	require.NoError(t, err)
	politics, err := q.Articles(ctx, models.ArticleListOptions{Category: "politics"})
	require.NoError(t, err)

	require.Equal(t, "for-sports", sports.Items[0].ID)
	require.Equal(t, "for-politics", politics.Items[0].ID)
}

func TestKeys_DeterministicAcrossOptionOrder(t *testing.T) {
	t.Parallel()

	a := keyArticlesList(models.ArticleListOptions{Sort: "publishedAt", Order: "desc", Limit: 12})
	b := keyArticlesList(models.ArticleListOptions{Limit: 12, Order: "desc", Sort: "publishedAt"})
	require.Equal(t, a, b)

	require.NotEqual(t,
		keyArticlesList(models.ArticleListOptions{Limit: 12}),
		keyArticlesList(models.ArticleListOptions{Limit: 6}),
	)
}

func TestResolve_CorruptCacheEntryTreatedAsMiss(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	q, cs := newTestQueries(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeEnvelope(w, []models.Category{{ID: "c1", Slug: "fresh"}})
	}), time.Minute)

	ctx := context.Background()
	key := keyCategoriesList(models.CategoryListOptions{MenuOnly: true})
	require.NoError(t, cs.Set(ctx, key, &cache.Entry{
		FetchedAt: time.Now().UTC(),
		Payload:   json.RawMessage(`{not json`),
	}, 0))

	got, err := q.MenuCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, "fresh", got[0].Slug)
	require.EqualValues(t, 1, hits.Load())
}
