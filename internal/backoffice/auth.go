package backoffice

import (
	"context"
	"fmt"
	"log/slog"

	logctx "github.com/thecontemporary/news-portal/internal/pkg/log"
	"github.com/thecontemporary/news-portal/internal/models"
)

// authPayload — ответ login/register: пара токенов и профиль.
type authPayload struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

// Login аутентифицирует пользователя и переводит клиент в состояние
// «с токеном»: оба токена сохраняются и зеркалируются в хранилище.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	const op = "backoffice.auth.Login"

	env, err := c.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payload, err := Data[authPayload](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.SetTokens(payload.AccessToken, payload.RefreshToken)

	return &payload.User, nil
}

// Register регистрирует пользователя; ответ по форме идентичен Login.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	const op = "backoffice.auth.Register"

	env, err := c.post(ctx, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payload, err := Data[authPayload](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.SetTokens(payload.AccessToken, payload.RefreshToken)

	return &payload.User, nil
}

// Me возвращает профиль текущего пользователя.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	const op = "backoffice.auth.Me"

	env, err := c.get(ctx, "/auth/me")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := Data[models.User](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// Logout завершает сессию. Удалённый вызов best-effort: локальные токены
// очищаются независимо от его исхода (токен мог уже протухнуть).
func (c *Client) Logout(ctx context.Context) {
	if _, err := c.post(ctx, "/auth/logout", nil, false); err != nil {
		logctx.From(ctx).Debug("logout_remote_failed", slog.String("err", err.Error()))
	}

	c.ClearTokens()
}

// UpdateProfile частично обновляет профиль текущего пользователя.
func (c *Client) UpdateProfile(ctx context.Context, patch map[string]any) (*models.User, error) {
	const op = "backoffice.auth.UpdateProfile"

	env, err := c.put(ctx, "/auth/profile", patch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := Data[models.User](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// ChangePassword меняет пароль текущего пользователя.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	const op = "backoffice.auth.ChangePassword"

	if _, err := c.put(ctx, "/auth/change-password", map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
