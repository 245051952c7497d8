// queries — декларативный слой чтения/записи поверх клиента backoffice
// по схеме cache-aside.
//
// Каждое именованное чтение связано с детерминированным ключом кэша
// (семейство ресурса + все влияющие на результат параметры), предикатом
// выполнения (запрос с пустым обязательным дискриминатором в сеть не идёт)
// и статическим fallback-значением.
//
// Порядок разрешения значения (никогда не смешивается в одном ответе):
//  1. свежая запись кэша -> отдаём её;
//  2. протухшая запись -> отдаём её и фоном перезапрашиваем;
//  3. промах -> идём в сеть; успех кладём в кэш;
//  4. сеть недоступна и кэш пуст -> статический fallback.
//
// Мутации проходят сквозь клиент и при успехе синхронно инвалидируют
// затронутые семейства ключей (публичные и админские): чтение, выданное
// после завершения мутации, гарантированно не увидит устаревший список.
package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/thecontemporary/news-portal/internal/backoffice"
	"github.com/thecontemporary/news-portal/internal/cache"
	logctx "github.com/thecontemporary/news-portal/internal/pkg/log"
	"github.com/thecontemporary/news-portal/internal/models"
)

// Жёсткий потолок жизни записи в кэше: после него запись исчезает даже
// без инвалидации. Окно свежести (freshFor) всегда заметно короче.
const hardTTL = time.Hour

// Таймаут фонового перезапроса протухшей записи.
const refetchTimeout = 10 * time.Second

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_query_cache_hits_total",
		Help: "Cache hits per resource family (fresh entries).",
	}, []string{"resource"})

	cacheStale = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_query_cache_stale_total",
		Help: "Stale cache hits that triggered a background refetch.",
	}, []string{"resource"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_query_cache_misses_total",
		Help: "Cache misses per resource family.",
	}, []string{"resource"})

	cacheInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_query_cache_invalidations_total",
		Help: "Family invalidations triggered by mutations.",
	}, []string{"resource"})
)

// Page — страница списка вместе с блоком пагинации конверта.
type Page[T any] struct {
	Items      []T                `json:"items"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Queries — слой именованных запросов. Безопасен для конкурентного
// использования.
type Queries struct {
	client   *backoffice.Client
	store    cache.Store
	freshFor time.Duration
}

// New создаёт слой запросов. freshFor <= 0 отключает окно свежести:
// каждая закэшированная запись сразу считается протухшей.
func New(client *backoffice.Client, store cache.Store, freshFor time.Duration) *Queries {
	return &Queries{
		client:   client,
		store:    store,
		freshFor: freshFor,
	}
}

// resource — семейство ресурса из ключа (для метрик).
func resource(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}

	return key
}

// resolve реализует порядок разрешения значения для одного чтения.
// При enabled == false сеть не трогается вовсе — сразу fallback.
func resolve[T any](ctx context.Context, q *Queries, key string, enabled bool, fetch func(context.Context) (T, error), fallback func() T) (T, error) {
	lg := logctx.From(ctx)

	if !enabled {
		return fallback(), nil
	}

	entry, ok, err := q.store.Get(ctx, key)
	if err != nil {
		// Деградация кэша не должна ломать чтение: идём в сеть.
		lg.Warn("cache_get_failed", slog.String("key", key), slog.String("err", err.Error()))
		ok = false
	}

	if ok {
		var cached T
		if err := json.Unmarshal(entry.Payload, &cached); err == nil {
			if q.freshFor > 0 && time.Since(entry.FetchedAt) < q.freshFor {
				cacheHits.WithLabelValues(resource(key)).Inc()
				return cached, nil
			}

			// Протухло: отдаём последнее известное и обновляем фоном.
			cacheStale.WithLabelValues(resource(key)).Inc()
			refetchInBackground(ctx, q, key, fetch)
			return cached, nil
		}

		lg.Warn("cache_entry_corrupt", slog.String("key", key))
	}

	cacheMisses.WithLabelValues(resource(key)).Inc()

	value, err := fetch(ctx)
	if err != nil {
		lg.Warn("query_fetch_failed", slog.String("key", key), slog.String("err", err.Error()))
		return fallback(), nil
	}

	q.put(ctx, key, value)

	return value, nil
}

func (q *Queries) put(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		logctx.From(ctx).Warn("cache_marshal_failed", slog.String("key", key), slog.String("err", err.Error()))
		return
	}

	e := &cache.Entry{FetchedAt: time.Now().UTC(), Payload: payload}
	if err := q.store.Set(ctx, key, e, hardTTL); err != nil {
		logctx.From(ctx).Warn("cache_set_failed", slog.String("key", key), slog.String("err", err.Error()))
	}
}

// refetchInBackground обновляет протухшую запись, не блокируя вызывающего.
// Контекст отвязывается от входящего запроса: отдача ответа не отменяет
// обновление, но сохраняет request-scoped логгер и собственный таймаут.
func refetchInBackground[T any](ctx context.Context, q *Queries, key string, fetch func(context.Context) (T, error)) {
	bg := context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(bg, refetchTimeout)
		defer cancel()

		value, err := fetch(ctx)
		if err != nil {
			logctx.From(ctx).Debug("background_refetch_failed",
				slog.String("key", key),
				slog.String("err", err.Error()),
			)
			return
		}

		q.put(ctx, key, value)
	}()
}

// invalidate синхронно сбрасывает семейства ключей после успешной мутации.
func (q *Queries) invalidate(ctx context.Context, families ...string) {
	for _, family := range families {
		cacheInvalidations.WithLabelValues(resource(family)).Inc()

		if err := q.store.DeleteByPrefix(ctx, family); err != nil {
			logctx.From(ctx).Warn("cache_invalidate_failed",
				slog.String("family", family),
				slog.String("err", err.Error()),
			)
		}
	}
}
