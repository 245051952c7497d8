package session

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thecontemporary/news-portal/internal/models"
)

// Тесты файлового хранилища сессии.
//
// Покрытие:
//  - persist/load round-trip пары токенов;
//  - Clear -> последующий LoadInitial возвращает nil;
//  - битое содержимое трактуется как «сессии нет» (без паник/ошибок);
//  - недоступный каталог -> все операции no-op;
//  - дефолты и round-trip языка/темы.

func newStore(t *testing.T) *Store {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(t.TempDir(), log)
}

func TestPersistLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	st.PersistTokens(TokenBundle{AccessToken: "a", RefreshToken: "b"})

	// «Свежий клиент» — новое хранилище над тем же каталогом.
	fresh := NewStore(st.dir, st.log)
	got := fresh.LoadInitial()
	require.NotNil(t, got)
	require.Equal(t, "a", got.AccessToken)
	require.Equal(t, "b", got.RefreshToken)
}

func TestLoadInitial_NilWhenAbsent(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	require.Nil(t, st.LoadInitial())
}

func TestClear_MakesLoadInitialNil(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	st.PersistTokens(TokenBundle{AccessToken: "a", RefreshToken: "b"})
	require.NotNil(t, st.LoadInitial())

	st.Clear()
	require.Nil(t, st.LoadInitial())

	// Повторный Clear — no-op.
	st.Clear()
	require.Nil(t, st.LoadInitial())
}

func TestLoadInitial_CorruptPayloadIsSwallowed(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(st.dir, sessionKey), []byte("{not json"), 0o600))

	require.Nil(t, st.LoadInitial())
}

func TestUnavailableDir_AllOpsNoop(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	// Путь под обычным файлом: MkdirAll гарантированно провалится.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	st := NewStore(filepath.Join(blocker, "nested"), log)

	require.NotPanics(t, func() {
		st.PersistTokens(TokenBundle{AccessToken: "a", RefreshToken: "b"})
		st.Clear()
		st.SetLanguage(models.LanguageBN)
		st.SetTheme(models.ThemeDark)
	})

	require.Nil(t, st.LoadInitial())
	require.Equal(t, models.LanguageEN, st.Language())
	require.Equal(t, models.ThemeLight, st.Theme())
}

func TestLanguage_DefaultAndRoundTrip(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	require.Equal(t, models.LanguageEN, st.Language())

	st.SetLanguage(models.LanguageBN)
	require.Equal(t, models.LanguageBN, st.Language())

	// Мусорное значение в файле -> дефолт.
	require.NoError(t, os.WriteFile(filepath.Join(st.dir, languageKey), []byte("FR"), 0o600))
	require.Equal(t, models.LanguageEN, st.Language())
}

func TestTheme_DefaultAndRoundTrip(t *testing.T) {
	t.Parallel()

	st := newStore(t)
	require.Equal(t, models.ThemeLight, st.Theme())

	st.SetTheme(models.ThemeDark)
	require.Equal(t, models.ThemeDark, st.Theme())
}
