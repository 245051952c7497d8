package backoffice

import (
	"context"
	"fmt"
	"net/url"

	"github.com/thecontemporary/news-portal/internal/models"
)

// ListUsers возвращает пользователей (админка).
func (c *Client) ListUsers(ctx context.Context, opts models.UserListOptions) ([]models.User, *models.Pagination, error) {
	const op = "backoffice.users.ListUsers"

	env, err := c.get(ctx, withQuery("/users", opts.Values()))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := Data[[]models.User](env)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, env.Pagination, nil
}

// SaveUser создаёт или обновляет пользователя (PUT при наличии ID).
func (c *Client) SaveUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "backoffice.users.SaveUser"

	var (
		env *Envelope
		err error
	)

	if user.ID != "" {
		env, err = c.put(ctx, "/users/"+url.PathEscape(user.ID), user)
	} else {
		env, err = c.post(ctx, "/users", user, false)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := Data[models.User](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &saved, nil
}

// DashboardStats возвращает агрегированные счётчики для админ-дашборда.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardOverview, error) {
	const op = "backoffice.users.DashboardStats"

	env, err := c.get(ctx, "/dashboard/stats")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	overview, err := Data[models.DashboardOverview](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &overview, nil
}
