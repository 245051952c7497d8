package backoffice

import (
	"context"
	"fmt"
	"net/url"

	"github.com/thecontemporary/news-portal/internal/models"
)

// ListCategories возвращает категории по явным опциям (меню/активные/все).
func (c *Client) ListCategories(ctx context.Context, opts models.CategoryListOptions) ([]models.Category, error) {
	const op = "backoffice.categories.ListCategories"

	env, err := c.get(ctx, withQuery("/categories", opts.Values()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := Data[[]models.Category](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// Category возвращает категорию по id или slug.
func (c *Client) Category(ctx context.Context, identifier string) (*models.Category, error) {
	const op = "backoffice.categories.Category"

	env, err := c.get(ctx, "/categories/"+url.PathEscape(identifier))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item, err := Data[models.Category](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &item, nil
}

// SaveCategory создаёт или обновляет категорию (PUT при наличии ID).
func (c *Client) SaveCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	const op = "backoffice.categories.SaveCategory"

	var (
		env *Envelope
		err error
	)

	if category.ID != "" {
		env, err = c.put(ctx, "/categories/"+url.PathEscape(category.ID), category)
	} else {
		env, err = c.post(ctx, "/categories", category, false)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := Data[models.Category](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &saved, nil
}

// DeleteCategory удаляет категорию по id.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	const op = "backoffice.categories.DeleteCategory"

	if _, err := c.delete(ctx, "/categories/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
