package queries

import (
	"context"

	"github.com/thecontemporary/news-portal/internal/fallbacks"
	"github.com/thecontemporary/news-portal/internal/models"
)

// Публичные чтения.

// MenuCategories — рубрики для шапки сайта.
func (q *Queries) MenuCategories(ctx context.Context) ([]models.Category, error) {
	opts := models.CategoryListOptions{MenuOnly: true}
	return resolve(ctx, q, keyCategoriesList(opts), true,
		func(ctx context.Context) ([]models.Category, error) {
			return q.client.ListCategories(ctx, opts)
		},
		fallbacks.Categories,
	)
}

// CategoryTree — активные рубрики для навигации и админки.
func (q *Queries) CategoryTree(ctx context.Context) ([]models.Category, error) {
	opts := models.CategoryListOptions{ActiveOnly: true}
	return resolve(ctx, q, keyCategoriesList(opts), true,
		func(ctx context.Context) ([]models.Category, error) {
			return q.client.ListCategories(ctx, opts)
		},
		fallbacks.Categories,
	)
}

// FeaturedArticles — подборка для главной.
func (q *Queries) FeaturedArticles(ctx context.Context) ([]models.Article, error) {
	return resolve(ctx, q, keyArticlesCollection("featured"), true,
		q.client.FeaturedArticles,
		fallbacks.Articles,
	)
}

// BreakingTicker — лента срочных новостей.
func (q *Queries) BreakingTicker(ctx context.Context) ([]models.Article, error) {
	return resolve(ctx, q, keyArticlesCollection("breaking"), true,
		q.client.BreakingArticles,
		fallbacks.BreakingArticles,
	)
}

// TrendingArticles — популярное.
func (q *Queries) TrendingArticles(ctx context.Context) ([]models.Article, error) {
	return resolve(ctx, q, keyArticlesCollection("trending"), true,
		q.client.TrendingArticles,
		fallbacks.Articles,
	)
}

// LatestArticles — свежие публикации.
func (q *Queries) LatestArticles(ctx context.Context) ([]models.Article, error) {
	opts := models.ArticleListOptions{Sort: "publishedAt", Order: "desc", Limit: 12}
	page, err := q.Articles(ctx, opts)
	if err != nil {
		return nil, err
	}

	return page.Items, nil
}

// Articles — список статей по явным опциям.
func (q *Queries) Articles(ctx context.Context, opts models.ArticleListOptions) (Page[models.Article], error) {
	return resolve(ctx, q, keyArticlesList(opts), true,
		func(ctx context.Context) (Page[models.Article], error) {
			items, pagination, err := q.client.ListArticles(ctx, opts)
			if err != nil {
				return Page[models.Article]{}, err
			}
			return Page[models.Article]{Items: items, Pagination: pagination}, nil
		},
		func() Page[models.Article] {
			return Page[models.Article]{Items: fallbacks.Articles()}
		},
	)
}

// Article — статья по id или slug. При пустом идентификаторе сеть не
// трогается: отдаётся первый образец.
func (q *Queries) Article(ctx context.Context, identifier string) (models.Article, error) {
	return resolve(ctx, q, keyArticleItem(identifier), identifier != "",
		func(ctx context.Context) (models.Article, error) {
			item, err := q.client.Article(ctx, identifier)
			if err != nil {
				return models.Article{}, err
			}
			return *item, nil
		},
		func() models.Article { return fallbacks.Articles()[0] },
	)
}

// RelatedArticles — статьи той же рубрики. Пустой categoryID — предикат
// не выполнен, сеть не трогается.
func (q *Queries) RelatedArticles(ctx context.Context, categoryID string) ([]models.Article, error) {
	opts := models.ArticleListOptions{Category: categoryID, Limit: 6}
	page, err := resolve(ctx, q, keyArticlesList(opts), categoryID != "",
		func(ctx context.Context) (Page[models.Article], error) {
			items, pagination, err := q.client.ListArticles(ctx, opts)
			if err != nil {
				return Page[models.Article]{}, err
			}
			return Page[models.Article]{Items: items, Pagination: pagination}, nil
		},
		func() Page[models.Article] {
			return Page[models.Article]{Items: fallbacks.Articles()}
		},
	)
	if err != nil {
		return nil, err
	}

	return page.Items, nil
}

// Category — рубрика по id или slug.
func (q *Queries) Category(ctx context.Context, identifier string) (models.Category, error) {
	return resolve(ctx, q, keyCategoryItem(identifier), identifier != "",
		func(ctx context.Context) (models.Category, error) {
			item, err := q.client.Category(ctx, identifier)
			if err != nil {
				return models.Category{}, err
			}
			return *item, nil
		},
		func() models.Category { return fallbacks.Categories()[0] },
	)
}

// SearchArticles — полнотекстовый поиск. Пустой терм — сеть не трогается,
// отдаётся пустой список (а не образцы: поиск без запроса пуст).
func (q *Queries) SearchArticles(ctx context.Context, term string, opts models.ArticleListOptions) ([]models.Article, error) {
	opts.Search = term
	return resolve(ctx, q, keySearch(term, opts), term != "",
		func(ctx context.Context) ([]models.Article, error) {
			items, _, err := q.client.ListArticles(ctx, opts)
			return items, err
		},
		func() []models.Article { return []models.Article{} },
	)
}

// ActiveAds — активные объявления слота.
func (q *Queries) ActiveAds(ctx context.Context, opts models.AdListOptions) ([]models.Advertisement, error) {
	return resolve(ctx, q, keyActiveAds(opts), true,
		func(ctx context.Context) ([]models.Advertisement, error) {
			return q.client.ActiveAds(ctx, opts)
		},
		fallbacks.Ads,
	)
}

// Админские чтения.

// DashboardOverview — сводка для дашборда.
func (q *Queries) DashboardOverview(ctx context.Context) (models.DashboardOverview, error) {
	return resolve(ctx, q, keyDashboard(), true,
		func(ctx context.Context) (models.DashboardOverview, error) {
			overview, err := q.client.DashboardStats(ctx)
			if err != nil {
				return models.DashboardOverview{}, err
			}
			return *overview, nil
		},
		fallbacks.Dashboard,
	)
}

// AdminArticles — статьи в админке (все статусы).
func (q *Queries) AdminArticles(ctx context.Context, opts models.ArticleListOptions) (Page[models.Article], error) {
	return resolve(ctx, q, keyAdminArticles(opts), true,
		func(ctx context.Context) (Page[models.Article], error) {
			items, pagination, err := q.client.ListArticles(ctx, opts)
			if err != nil {
				return Page[models.Article]{}, err
			}
			return Page[models.Article]{Items: items, Pagination: pagination}, nil
		},
		func() Page[models.Article] {
			return Page[models.Article]{Items: fallbacks.Articles()}
		},
	)
}

// AdminCategories — все рубрики.
func (q *Queries) AdminCategories(ctx context.Context) ([]models.Category, error) {
	return resolve(ctx, q, keyAdminCategories(), true,
		func(ctx context.Context) ([]models.Category, error) {
			return q.client.ListCategories(ctx, models.CategoryListOptions{})
		},
		fallbacks.Categories,
	)
}

// AdminAds — все объявления.
func (q *Queries) AdminAds(ctx context.Context) ([]models.Advertisement, error) {
	return resolve(ctx, q, keyAdminAds(), true,
		q.client.ListAds,
		fallbacks.Ads,
	)
}

// Users — пользователи. Fallback пустой: образцов пользователей нет.
func (q *Queries) Users(ctx context.Context, opts models.UserListOptions) (Page[models.User], error) {
	return resolve(ctx, q, keyAdminUsers(opts), true,
		func(ctx context.Context) (Page[models.User], error) {
			items, pagination, err := q.client.ListUsers(ctx, opts)
			if err != nil {
				return Page[models.User]{}, err
			}
			return Page[models.User]{Items: items, Pagination: pagination}, nil
		},
		func() Page[models.User] {
			return Page[models.User]{Items: []models.User{}}
		},
	)
}

// MediaLibrary — медиатека. Fallback пустой.
func (q *Queries) MediaLibrary(ctx context.Context, opts models.MediaListOptions) (Page[models.Media], error) {
	return resolve(ctx, q, keyAdminMedia(opts), true,
		func(ctx context.Context) (Page[models.Media], error) {
			items, pagination, err := q.client.ListMedia(ctx, opts)
			if err != nil {
				return Page[models.Media]{}, err
			}
			return Page[models.Media]{Items: items, Pagination: pagination}, nil
		},
		func() Page[models.Media] {
			return Page[models.Media]{Items: []models.Media{}}
		},
	)
}
