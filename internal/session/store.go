// session — durable-хранилище клиентского состояния портала:
// пара токенов backoffice-сессии и пользовательские настройки
// (язык, тема оформления). Каждое значение лежит в отдельном файле
// внутри каталога хранилища.
//
// Контракт хранилища сознательно «мягкий»: недоступность каталога или
// битое содержимое никогда не роняют вызывающего — запись молча
// пропускается (с логом), чтение возвращает «сессии нет».
// Сетевых вызовов пакет не делает.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/thecontemporary/news-portal/internal/models"
)

const (
	sessionKey  = "session.json"
	languageKey = "language"
	themeKey    = "theme"
)

// TokenBundle — пара access/refresh токенов backoffice.
// Пустая строка означает отсутствие токена.
type TokenBundle struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Store — файловое хранилище. Безопасен для конкурентного использования.
type Store struct {
	mu  sync.Mutex
	dir string
	log *slog.Logger

	// available == false, если каталог не удалось создать:
	// все операции превращаются в no-op.
	available bool
}

// NewStore создаёт хранилище в каталоге dir.
// Если каталог недоступен — хранилище работает в режиме no-op.
func NewStore(dir string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}

	s := &Store{dir: dir, log: log}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		log.Warn("session_store_unavailable",
			slog.String("dir", dir),
			slog.String("err", err.Error()),
		)
		return s
	}

	s.available = true
	return s
}

// PersistTokens сериализует и записывает пару токенов.
// Ошибки записи логируются и не возвращаются.
func (s *Store) PersistTokens(tokens TokenBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available {
		return
	}

	payload, err := json.Marshal(tokens)
	if err != nil {
		s.log.Warn("session_marshal_failed", slog.String("err", err.Error()))
		return
	}

	s.write(sessionKey, payload)
}

// LoadInitial читает сохранённую пару токенов.
// Возвращает nil, если записи нет, хранилище недоступно или содержимое битое:
// битая запись трактуется как «сессии нет», а не как ошибка.
func (s *Store) LoadInitial() *TokenBundle {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.read(sessionKey)
	if !ok {
		return nil
	}

	var tokens TokenBundle
	if err := json.Unmarshal(raw, &tokens); err != nil {
		s.log.Warn("session_unmarshal_failed", slog.String("err", err.Error()))
		return nil
	}

	return &tokens
}

// Clear удаляет сохранённую пару токенов. No-op при недоступном хранилище.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available {
		return
	}

	s.remove(sessionKey)
}

// Language возвращает сохранённый язык портала (EN по умолчанию).
func (s *Store) Language() models.Language {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.read(languageKey)
	if !ok {
		return models.LanguageEN
	}

	switch lang := models.Language(strings.TrimSpace(string(raw))); lang {
	case models.LanguageEN, models.LanguageBN:
		return lang
	default:
		return models.LanguageEN
	}
}

// SetLanguage сохраняет язык портала.
func (s *Store) SetLanguage(lang models.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available {
		return
	}

	s.write(languageKey, []byte(lang))
}

// Theme возвращает сохранённую тему оформления (light по умолчанию).
func (s *Store) Theme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.read(themeKey)
	if !ok {
		return models.ThemeLight
	}

	switch theme := models.Theme(strings.TrimSpace(string(raw))); theme {
	case models.ThemeLight, models.ThemeDark:
		return theme
	default:
		return models.ThemeLight
	}
}

// SetTheme сохраняет тему оформления.
func (s *Store) SetTheme(theme models.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.available {
		return
	}

	s.write(themeKey, []byte(theme))
}

func (s *Store) path(key string) string { return filepath.Join(s.dir, key) }

func (s *Store) write(key string, payload []byte) {
	if err := os.WriteFile(s.path(key), payload, 0o600); err != nil {
		s.log.Warn("session_write_failed",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}

func (s *Store) read(key string) ([]byte, bool) {
	if !s.available {
		return nil, false
	}

	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("session_read_failed",
				slog.String("key", key),
				slog.String("err", err.Error()),
			)
		}
		return nil, false
	}

	if len(raw) == 0 {
		return nil, false
	}

	return raw, true
}

func (s *Store) remove(key string) {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("session_remove_failed",
			slog.String("key", key),
			slog.String("err", err.Error()),
		)
	}
}
