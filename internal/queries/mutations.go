package queries

import (
	"context"
	"fmt"

	"github.com/thecontemporary/news-portal/internal/backoffice"
	"github.com/thecontemporary/news-portal/internal/models"
)

// Мутации. Каждая проходит сквозь клиент и при успехе синхронно
// инвалидирует затронутые семейства ключей — и публичные, и админские,
// чтобы следующее чтение ушло за свежими данными.

// SaveArticle создаёт или обновляет статью.
func (q *Queries) SaveArticle(ctx context.Context, article models.Article) (*models.Article, error) {
	const op = "queries.mutations.SaveArticle"

	saved, err := q.client.SaveArticle(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q.invalidate(ctx, famArticles, famAdminArticles, famArticleItem)

	return saved, nil
}

// DeleteArticle удаляет статью.
func (q *Queries) DeleteArticle(ctx context.Context, id string) error {
	const op = "queries.mutations.DeleteArticle"

	if err := q.client.DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	q.invalidate(ctx, famArticles, famAdminArticles, famArticleItem)

	return nil
}

// SaveCategory создаёт или обновляет рубрику.
func (q *Queries) SaveCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	const op = "queries.mutations.SaveCategory"

	saved, err := q.client.SaveCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q.invalidate(ctx, famCategories, famAdminCategories, famCategoryItem)

	return saved, nil
}

// DeleteCategory удаляет рубрику.
func (q *Queries) DeleteCategory(ctx context.Context, id string) error {
	const op = "queries.mutations.DeleteCategory"

	if err := q.client.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	q.invalidate(ctx, famCategories, famAdminCategories, famCategoryItem)

	return nil
}

// SaveAd создаёт или обновляет объявление.
func (q *Queries) SaveAd(ctx context.Context, ad models.Advertisement) (*models.Advertisement, error) {
	const op = "queries.mutations.SaveAd"

	saved, err := q.client.SaveAd(ctx, ad)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q.invalidate(ctx, famAds, famAdminAds)

	return saved, nil
}

// DeleteAd удаляет объявление.
func (q *Queries) DeleteAd(ctx context.Context, id string) error {
	const op = "queries.mutations.DeleteAd"

	if err := q.client.DeleteAd(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	q.invalidate(ctx, famAds, famAdminAds)

	return nil
}

// SaveUser создаёт или обновляет пользователя.
func (q *Queries) SaveUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "queries.mutations.SaveUser"

	saved, err := q.client.SaveUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q.invalidate(ctx, famAdminUsers)

	return saved, nil
}

// UploadMedia загружает файл в медиатеку.
func (q *Queries) UploadMedia(ctx context.Context, upload backoffice.MediaUpload) (*models.Media, error) {
	const op = "queries.mutations.UploadMedia"

	media, err := q.client.UploadMedia(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q.invalidate(ctx, famAdminMedia)

	return media, nil
}
