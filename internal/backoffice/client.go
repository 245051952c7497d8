// backoffice — единственный аутентифицированный шлюз ко всем вызовам
// удалённого backoffice API. Клиент владеет in-memory состоянием пары
// токенов (зеркалируется в session.Store при каждом изменении) и реализует
// протокол «один refresh — один повтор» при 401.
//
// Состояния клиента:
//   - без access-токена: запросы без SkipAuth уходят без Authorization и
//     получают 401 от сервера как есть; запросы со SkipAuth (login/register/
//     refresh) проходят обычным образом;
//   - с access-токеном: Bearer проставляется на каждый запрос без SkipAuth.
//
// Переходы: успешный login/register/refresh устанавливает оба токена;
// logout и неудачный refresh очищают их.
//
// Известное поведение: одновременные 401 у параллельных запросов НЕ
// дедуплицируются — каждый запрос делает собственную попытку refresh.
// Поля токенов защищены мьютексом, поэтому состояние не рвётся, но
// лишние вызовы refresh-эндпойнта возможны.
package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"sync"

	"github.com/thecontemporary/news-portal/internal/config"
	logctx "github.com/thecontemporary/news-portal/internal/pkg/log"
	"github.com/thecontemporary/news-portal/internal/models"
	"github.com/thecontemporary/news-portal/internal/session"
)

// Envelope — единый конверт, в котором backoffice отдаёт каждый ответ.
type Envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Data       json.RawMessage    `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Data распаковывает поле data конверта в T.
// Пустое/отсутствующее data трактуется как пустой объект: возвращается
// нулевое значение T без ошибки.
func Data[T any](env *Envelope) (T, error) {
	var out T

	if env == nil || len(env.Data) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("backoffice: decode data: %w", err)
	}

	return out, nil
}

// StatusError — не-2xx ответ backoffice.
// Текст ошибки — тело ответа, либо статусная строка при пустом теле.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}

	return e.Status
}

// IsUnauthorized сообщает, является ли ошибка ответом 401.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized
}

// IsNotFound сообщает, является ли ошибка ответом 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// StatusCodeOf возвращает HTTP-статус из ошибки клиента (0, если это не
// ответ backoffice).
func StatusCodeOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}

	return 0
}

// request — дескриптор исходящего запроса.
type request struct {
	method string
	path   string
	body   []byte
	header http.Header

	// skipAuth: не проставлять Bearer и не делать refresh при 401
	// (login/register/refresh).
	skipAuth bool
	// formEncoded: не навязывать JSON Content-Type (multipart-загрузки).
	formEncoded bool
}

// Client — HTTP-клиент backoffice API.
// Безопасен для конкурентного использования.
type Client struct {
	baseURL   string
	apiPrefix string
	http      *http.Client
	store     *session.Store

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// New создаёт клиент и один раз читает сохранённую сессию из store.
// Cookie jar включён: backoffice может сопровождать Bearer-токены
// cookie-сессией, мы её честно возим.
func New(cfg config.BackofficeConfig, store *session.Store) *Client {
	jar, _ := cookiejar.New(nil)

	c := &Client{
		baseURL:   cfg.BaseURL,
		apiPrefix: cfg.APIPrefix,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		store: store,
	}

	if tokens := store.LoadInitial(); tokens != nil {
		c.accessToken = tokens.AccessToken
		c.refreshToken = tokens.RefreshToken
	}

	return c
}

// SetTokens устанавливает access-токен (и refresh, если передан непустой)
// и зеркалирует пару в хранилище.
func (c *Client) SetTokens(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accessToken = accessToken
	if refreshToken != "" {
		c.refreshToken = refreshToken
	}

	c.store.PersistTokens(session.TokenBundle{
		AccessToken:  c.accessToken,
		RefreshToken: c.refreshToken,
	})
}

// ClearTokens сбрасывает оба токена и очищает хранилище.
func (c *Client) ClearTokens() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accessToken = ""
	c.refreshToken = ""
	c.store.Clear()
}

// Authenticated сообщает, держит ли клиент access-токен.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.accessToken != ""
}

func (c *Client) tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.accessToken, c.refreshToken
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + c.apiPrefix + path
}

// do выполняет запрос по алгоритму клиента:
//  1. заголовки: JSON Content-Type по умолчанию (если не formEncoded и
//     вызывающий не передал свой), Bearer при наличии access-токена и
//     отсутствии skipAuth;
//  2. HTTP-вызов;
//  3. 401 при имеющемся refresh-токене и !skipAuth -> ровно одна попытка
//     refresh и, при её успехе, ровно один повтор исходного запроса с новым
//     токеном. Неуспех refresh -> исходная 401-ошибка, без циклов;
//  4. не-2xx -> ошибка с текстом тела (или статусной строкой);
//  5. 2xx -> конверт; пустое/битое тело подменяется пустым объектом.
//
// Повтор выражен явным вторым проходом, а не рекурсией: это гарантирует
// завершение при навсегда протухшем refresh-токене.
func (c *Client) do(ctx context.Context, req request) (*Envelope, error) {
	access, refresh := c.tokens()

	resp, err := c.send(ctx, req, access)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && refresh != "" && !req.skipAuth {
		original := readStatusError(resp)

		if !c.tryRefresh(ctx) {
			return nil, original
		}

		access, _ = c.tokens()
		resp, err = c.send(ctx, req, access)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readStatusError(resp)
	}

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("backoffice: read body: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// Пустое или не-JSON тело на успешном ответе — не ошибка.
		return &Envelope{Success: true}, nil
	}

	return &env, nil
}

func (c *Client) send(ctx context.Context, req request, accessToken string) (*http.Response, error) {
	var body io.Reader
	if len(req.body) > 0 {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.endpoint(req.path), body)
	if err != nil {
		return nil, fmt.Errorf("backoffice: build request: %w", err)
	}

	for k, vals := range req.header {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}

	if !req.formEncoded && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if accessToken != "" && !req.skipAuth {
		httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("backoffice: %s %s: %w", req.method, req.path, err)
	}

	return resp, nil
}

// tryRefresh выполняет refresh-подпротокол.
//
// POST на refresh-эндпойнт с текущим refresh-токеном как Bearer (пустая
// строка, если токена нет); семантика skipAuth подразумевается — ни
// access-заголовка, ни рекурсивного retry здесь нет.
//
// Любой неуспех (транспортная ошибка, не-2xx, отсутствие accessToken в
// ответе) логируется, очищает оба токена и возвращает false — наружу
// ошибка не пробрасывается никогда. Новый refresh-токен в ответе
// опционален: при его отсутствии сохраняется текущий.
func (c *Client) tryRefresh(ctx context.Context) bool {
	lg := logctx.From(ctx)

	_, refresh := c.tokens()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/auth/refresh-token"), nil)
	if err != nil {
		lg.Error("refresh_build_failed", slog.String("err", err.Error()))
		c.ClearTokens()
		return false
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+refresh)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		lg.Warn("refresh_transport_failed", slog.String("err", err.Error()))
		c.ClearTokens()
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		lg.Warn("refresh_rejected", slog.Int("status", resp.StatusCode))
		c.ClearTokens()
		return false
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		lg.Warn("refresh_decode_failed", slog.String("err", err.Error()))
		c.ClearTokens()
		return false
	}

	payload, err := Data[struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}](&env)
	if err != nil || payload.AccessToken == "" {
		lg.Warn("refresh_no_access_token")
		c.ClearTokens()
		return false
	}

	next := payload.RefreshToken
	if next == "" {
		next = refresh
	}

	c.SetTokens(payload.AccessToken, next)
	lg.Debug("refresh_ok")

	return true
}

// readStatusError вычитывает тело ответа и закрывает его.
func readStatusError(resp *http.Response) *StatusError {
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	return &StatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(bytes.TrimSpace(raw)),
	}
}

// get/post/put/delete — шорткаты над do с JSON-сериализацией тела.

func (c *Client) get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, request{method: http.MethodGet, path: path})
}

func (c *Client) getSkipAuth(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, request{method: http.MethodGet, path: path, skipAuth: true})
}

func (c *Client) post(ctx context.Context, path string, payload any, skipAuth bool) (*Envelope, error) {
	body, err := marshalBody(payload)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, request{method: http.MethodPost, path: path, body: body, skipAuth: skipAuth})
}

func (c *Client) put(ctx context.Context, path string, payload any) (*Envelope, error) {
	body, err := marshalBody(payload)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, request{method: http.MethodPut, path: path, body: body})
}

func (c *Client) delete(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, request{method: http.MethodDelete, path: path})
}

func marshalBody(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("backoffice: marshal body: %w", err)
	}

	return body, nil
}
