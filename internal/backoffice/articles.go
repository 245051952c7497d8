package backoffice

import (
	"context"
	"fmt"
	"net/url"

	"github.com/thecontemporary/news-portal/internal/models"
)

func withQuery(path string, values url.Values) string {
	if qs := values.Encode(); qs != "" {
		return path + "?" + qs
	}

	return path
}

// ListArticles возвращает страницу статей по явным опциям фильтрации.
func (c *Client) ListArticles(ctx context.Context, opts models.ArticleListOptions) ([]models.Article, *models.Pagination, error) {
	const op = "backoffice.articles.ListArticles"

	env, err := c.get(ctx, withQuery("/articles", opts.Values()))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := Data[[]models.Article](env)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, env.Pagination, nil
}

// FeaturedArticles — подборка для главной.
func (c *Client) FeaturedArticles(ctx context.Context) ([]models.Article, error) {
	return c.articleCollection(ctx, "/articles/featured")
}

// BreakingArticles — лента срочных новостей.
func (c *Client) BreakingArticles(ctx context.Context) ([]models.Article, error) {
	return c.articleCollection(ctx, "/articles/breaking")
}

// TrendingArticles — популярное.
func (c *Client) TrendingArticles(ctx context.Context) ([]models.Article, error) {
	return c.articleCollection(ctx, "/articles/trending")
}

func (c *Client) articleCollection(ctx context.Context, path string) ([]models.Article, error) {
	const op = "backoffice.articles.collection"

	env, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, path, err)
	}

	items, err := Data[[]models.Article](env)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, path, err)
	}

	return items, nil
}

// Article возвращает статью по id или slug.
func (c *Client) Article(ctx context.Context, identifier string) (*models.Article, error) {
	const op = "backoffice.articles.Article"

	env, err := c.get(ctx, "/articles/"+url.PathEscape(identifier))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	item, err := Data[models.Article](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &item, nil
}

// SaveArticle создаёт или обновляет статью: наличие ID выбирает PUT вместо POST.
func (c *Client) SaveArticle(ctx context.Context, article models.Article) (*models.Article, error) {
	const op = "backoffice.articles.SaveArticle"

	var (
		env *Envelope
		err error
	)

	if article.ID != "" {
		env, err = c.put(ctx, "/articles/"+url.PathEscape(article.ID), article)
	} else {
		env, err = c.post(ctx, "/articles", article, false)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := Data[models.Article](env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &saved, nil
}

// DeleteArticle удаляет статью по id.
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	const op = "backoffice.articles.DeleteArticle"

	if _, err := c.delete(ctx, "/articles/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
