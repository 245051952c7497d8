// cache — хранилище результатов чтения для слоя queries.
//
// Хранилище не знает про политику свежести: оно хранит записи с меткой
// времени выборки и жёстким TTL-потолком, а решение «свежая/протухшая»
// принимает слой queries по cache.Entry.FetchedAt.
//
// Инвалидация — по префиксу ключа: мутация ресурса сбрасывает сразу всё
// семейство (публичные и админские ключи), чтобы последующие чтения
// ушли в сеть.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Entry — запись кэша: полезная нагрузка и момент успешной выборки.
type Entry struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Payload   json.RawMessage `json:"payload"`
}

// Store — минимальный контракт хранилища записей.
type Store interface {
	// Get возвращает запись и признак её наличия.
	Get(ctx context.Context, key string) (*Entry, bool, error)
	// Set сохраняет запись с жёстким TTL (потолок жизни записи,
	// не окно свежести).
	Set(ctx context.Context, key string, e *Entry, ttl time.Duration) error
	// Delete удаляет одну запись.
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix удаляет все записи семейства ключей.
	DeleteByPrefix(ctx context.Context, prefix string) error
	// Close освобождает ресурсы хранилища.
	Close() error
}
