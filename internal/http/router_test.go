package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thecontemporary/news-portal/internal/backoffice"
	"github.com/thecontemporary/news-portal/internal/cache"
	"github.com/thecontemporary/news-portal/internal/config"
	"github.com/thecontemporary/news-portal/internal/models"
	"github.com/thecontemporary/news-portal/internal/queries"
	"github.com/thecontemporary/news-portal/internal/session"
)

func newTestRouter(t *testing.T, upstream http.Handler) (http.Handler, *backoffice.Client) {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewStore(t.TempDir(), log)
	client := backoffice.New(config.BackofficeConfig{
		BaseURL:   srv.URL,
		APIPrefix: "/api/v1",
		Timeout:   5 * time.Second,
	}, sessions)

	cs := cache.NewMemoryStore()
	t.Cleanup(func() { _ = cs.Close() })

	q := queries.New(client, cs, time.Minute)

	return NewRouter(q, client, sessions, Options{Logger: log, Timeout: 5 * time.Second}), client
}

func writeEnvelope(w http.ResponseWriter, data any) {
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func TestRouter_PublicArticleByIdentifier(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/articles/election-results", r.URL.Path)
		writeEnvelope(w, models.Article{ID: "a1", Slug: "election-results", Title: "Election Results"})
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/articles/election-results", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	var article models.Article
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &article))
	require.Equal(t, "election-results", article.Slug)
}

func TestRouter_UpstreamDownServesFallback(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/categories/menu", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var cats []models.Category
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cats))
	require.NotEmpty(t, cats)
}

func TestRouter_AdminRequiresSession(t *testing.T) {
	t.Parallel()

	router, client := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []models.Article{})
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/articles", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	client.SetTokens("t1", "r1")

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/articles", nil))
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_LoginEstablishesSession(t *testing.T) {
	t.Parallel()

	router, client := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))
		writeEnvelope(w, map[string]any{
			"accessToken":  "t1",
			"refreshToken": "r1",
			"user":         models.User{ID: "u1", Email: "editor@thecontemporary.news"},
		})
	}))

	body := bytes.NewBufferString(`{"email":"editor@thecontemporary.news","password":"secret"}`)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/login", body))

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, client.Authenticated())

	var user models.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	require.Equal(t, "u1", user.ID)
}

func TestRouter_LoginRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("upstream must not be called")
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":`)))

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "invalid_argument", env.Error.Code)
}

func TestRouter_PreferencesRoundTrip(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preferences are local, upstream must not be called")
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/preferences/language", bytes.NewBufferString(`{"language":"BN"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/preferences", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var prefs struct {
		Language models.Language `json:"language"`
		Theme    models.Theme    `json:"theme"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &prefs))
	require.Equal(t, models.LanguageBN, prefs.Language)
	require.Equal(t, models.ThemeLight, prefs.Theme)
}

func TestRouter_InvalidLanguageRejected(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/preferences/language", bytes.NewBufferString(`{"language":"FR"}`)))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_AdImpressionAlwaysNoContent(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "tracking down", http.StatusInternalServerError)
	}))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/ads/ad1/impression", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)
}
