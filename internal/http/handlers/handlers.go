package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/thecontemporary/news-portal/internal/backoffice"
	"github.com/thecontemporary/news-portal/internal/queries"
	"github.com/thecontemporary/news-portal/internal/session"
)

// Handlers агрегирует зависимости (слой запросов, клиент backoffice, сессия).
type Handlers struct {
	Queries  *queries.Queries
	Client   *backoffice.Client
	Sessions *session.Store
}

func New(q *queries.Queries, c *backoffice.Client, s *session.Store) *Handlers {
	return &Handlers{Queries: q, Client: c, Sessions: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// statusErrorInvalidArgument — вспомогалка: локальная ошибка парсинга -> 400.
func statusErrorInvalidArgument() error {
	return &backoffice.StatusError{
		StatusCode: http.StatusBadRequest,
		Status:     http.StatusText(http.StatusBadRequest),
	}
}

// queryInt — целочисленный query-параметр; 0, если пуст или битый.
func queryInt(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}

	return n
}
