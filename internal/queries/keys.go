package queries

import (
	"net/url"

	"github.com/thecontemporary/news-portal/internal/models"
)

// Ключи кэша.
//
// Ключ = семейство ресурса + канонически закодированные параметры
// (url.Values.Encode сортирует ключи). Разные фильтры одного ресурса
// никогда не делят запись; мутации инвалидируют семейство целиком
// по префиксу.

const (
	famArticles        = "articles:"
	famArticleItem     = "article:"
	famCategories      = "categories:"
	famCategoryItem    = "category:"
	famAds             = "ads:"
	famDashboard       = "dashboard:"
	famAdminArticles   = "admin:articles:"
	famAdminCategories = "admin:categories:"
	famAdminAds        = "admin:ads:"
	famAdminUsers      = "admin:users:"
	famAdminMedia      = "admin:media:"
)

func withValues(family, name string, values url.Values) string {
	key := family + name
	if qs := values.Encode(); qs != "" {
		key += ":" + qs
	}

	return key
}

func keyArticlesList(opts models.ArticleListOptions) string {
	return withValues(famArticles, "list", opts.Values())
}

func keyArticlesCollection(name string) string {
	return famArticles + name
}

func keyArticleItem(identifier string) string {
	return famArticleItem + "item:" + identifier
}

func keySearch(term string, opts models.ArticleListOptions) string {
	opts.Search = term
	return withValues(famArticles, "search", opts.Values())
}

func keyCategoriesList(opts models.CategoryListOptions) string {
	return withValues(famCategories, "list", opts.Values())
}

func keyCategoryItem(identifier string) string {
	return famCategoryItem + "item:" + identifier
}

func keyActiveAds(opts models.AdListOptions) string {
	return withValues(famAds, "active", opts.Values())
}

func keyDashboard() string {
	return famDashboard + "overview"
}

func keyAdminArticles(opts models.ArticleListOptions) string {
	return withValues(famAdminArticles, "list", opts.Values())
}

func keyAdminCategories() string {
	return famAdminCategories + "list"
}

func keyAdminAds() string {
	return famAdminAds + "list"
}

func keyAdminUsers(opts models.UserListOptions) string {
	return withValues(famAdminUsers, "list", opts.Values())
}

func keyAdminMedia(opts models.MediaListOptions) string {
	return withValues(famAdminMedia, "list", opts.Values())
}
