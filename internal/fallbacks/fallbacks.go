// fallbacks — статические placeholder-данные для слоя queries.
//
// Отдаются вместо живых данных, пока первый успешный запрос к backoffice
// ещё не состоялся (или когда он провалился и в кэше пусто). Никогда не
// смешиваются с сетевыми данными в одном ответе.
package fallbacks

import "github.com/thecontemporary/news-portal/internal/models"

// Categories — дефолтное меню рубрик.
func Categories() []models.Category {
	return []models.Category{
		{ID: "world", Name: "World", Slug: "world", Description: "Global headlines", ShowInMenu: true},
		{ID: "business", Name: "Business", Slug: "business", Description: "Markets & money", ShowInMenu: true},
		{ID: "tech", Name: "Technology", Slug: "technology", Description: "Innovation & AI", ShowInMenu: true},
		{ID: "culture", Name: "Culture", Slug: "culture", Description: "Arts & life", ShowInMenu: true},
		{ID: "sport", Name: "Sport", Slug: "sport", Description: "Scores & stories", ShowInMenu: true},
	}
}

// Articles — образцы статей для лент главной страницы.
func Articles() []models.Article {
	return []models.Article{
		{
			ID:          "a-1",
			Title:       "Dawn Express: High-speed rail connects coast-to-coast in four hours",
			Slug:        "dawn-express-coast-to-coast",
			Summary:     "A new era of sustainable travel links major cities with whisper-quiet trains and material-efficient lines.",
			Content:     "Engineers describe the line as the cleanest infrastructure project of the decade, cutting flight demand by 40% in its first season.",
			CoverImage:  "https://images.unsplash.com/photo-1506617420156-8e4536971650?auto=format&fit=crop&w=1600&q=80",
			CategoryID:  "world",
			ReadingTime: 4,
			Tags:        []string{"infrastructure", "climate"},
			IsFeatured:  true,
		},
		{
			ID:          "a-2",
			Title:       "AI weather desk issues live micro-forecasts for coastal towns",
			Slug:        "ai-weather-desk",
			Summary:     "Localized predictions now update every 90 seconds, with community safety teams plugged into the network.",
			CoverImage:  "https://images.unsplash.com/photo-1528825871115-3581a5387919?auto=format&fit=crop&w=1600&q=80",
			CategoryID:  "technology",
			ReadingTime: 3,
			IsTrending:  true,
		},
		{
			ID:          "a-3",
			Title:       "Circular fashion startups turn textile waste into premium fibers",
			Slug:        "circular-fashion-startups",
			Summary:     "Studios in Dhaka and Nairobi lead a renaissance in recycled textiles with zero-dye dyeing processes.",
			CoverImage:  "https://images.unsplash.com/photo-1521572267360-ee0c2909d518?auto=format&fit=crop&w=1600&q=80",
			CategoryID:  "business",
			ReadingTime: 5,
			IsTrending:  true,
		},
		{
			ID:          "a-4",
			Title:       "Night markets reinvent the post-commute meal with chef-led stalls",
			Slug:        "night-markets-reinvent-dinner",
			Summary:     "Pop-up alleys bring regional recipes to downtown corridors while keeping queues digital-first.",
			CoverImage:  "https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=1600&q=80",
			CategoryID:  "culture",
			ReadingTime: 2,
			IsBreaking:  true,
		},
		{
			ID:          "a-5",
			Title:       "Renewable surge: rooftop wind tiles join solar on skyline",
			Slug:        "renewable-surge-rooftop-wind",
			Summary:     "Lightweight rotors add 18% more clean power to existing buildings without structural retrofits.",
			CoverImage:  "https://images.unsplash.com/photo-1542601098-8fc114e148e8?auto=format&fit=crop&w=1600&q=80",
			CategoryID:  "business",
			ReadingTime: 4,
		},
	}
}

// BreakingArticles — укороченная лента для тикера срочных новостей.
func BreakingArticles() []models.Article {
	all := Articles()
	if len(all) > 3 {
		all = all[:3]
	}
	return all
}

// Ads — образцы рекламных слотов.
func Ads() []models.Advertisement {
	return []models.Advertisement{
		{
			ID:        "ad-1",
			Name:      "The Contemporary Studio",
			Type:      "image",
			Position:  models.PlacementBanner,
			ImageURL:  "https://images.unsplash.com/photo-1460925895917-afdab827c52f?auto=format&fit=crop&w=1200&q=80",
			TargetURL: "https://thecontemporary.news",
			Priority:  10,
		},
		{
			ID:        "ad-2",
			Name:      "Data & Climate Summit",
			Type:      "image",
			Position:  models.PlacementSidebar,
			ImageURL:  "https://images.unsplash.com/photo-1520607162513-77705c0f0d4a?auto=format&fit=crop&w=800&q=80",
			TargetURL: "https://thecontemporary.news",
			Priority:  8,
		},
	}
}

// Dashboard — образец сводки для дашборда.
func Dashboard() models.DashboardOverview {
	return models.DashboardOverview{
		Articles: map[string]int{"published": 182, "draft": 24, "scheduled": 12},
		Users:    map[string]int{"total": 26, "admins": 4, "journalists": 12},
		Ads:      map[string]int{"active": 8, "paused": 3},
		Media:    map[string]int{"library": 420},
	}
}
