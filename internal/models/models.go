// models — доменные модели портала в том виде, в котором их отдаёт
// backoffice API (camelCase на проводе).
package models

// Role — роль пользователя в backoffice.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleJournalist Role = "journalist"
	RoleReader     Role = "reader"
)

// Language — языковая версия портала.
type Language string

const (
	LanguageEN Language = "EN"
	LanguageBN Language = "BN"
)

// Theme — тема оформления.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Pagination — блок пагинации из конверта ответа.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ArticleStatus — статус публикации статьи.
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusScheduled ArticleStatus = "scheduled"
)

type Article struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Summary     string        `json:"summary,omitempty"`
	Content     string        `json:"content,omitempty"`
	ContentBn   string        `json:"contentBn,omitempty"`
	CoverImage  string        `json:"coverImage,omitempty"`
	CategoryID  string        `json:"categoryId,omitempty"`
	Category    *Category     `json:"category,omitempty"`
	Author      *User         `json:"author,omitempty"`
	Status      ArticleStatus `json:"status,omitempty"`
	IsFeatured  bool          `json:"isFeatured,omitempty"`
	IsBreaking  bool          `json:"isBreaking,omitempty"`
	IsTrending  bool          `json:"isTrending,omitempty"`
	PublishedAt string        `json:"publishedAt,omitempty"`
	ReadingTime int           `json:"readingTime,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
}

type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	ParentID    string     `json:"parentId,omitempty"`
	IsActive    bool       `json:"isActive,omitempty"`
	ShowInMenu  bool       `json:"showInMenu,omitempty"`
	Order       int        `json:"order,omitempty"`
	Children    []Category `json:"children,omitempty"`
}

// AdPlacement — слот размещения рекламы на странице.
type AdPlacement string

const (
	PlacementHero      AdPlacement = "hero"
	PlacementBanner    AdPlacement = "banner"
	PlacementSidebar   AdPlacement = "sidebar"
	PlacementInContent AdPlacement = "in_content"
	PlacementPopup     AdPlacement = "popup"
)

type Advertisement struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"` // image | video | html
	Position    AdPlacement `json:"position"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	TargetURL   string      `json:"targetUrl,omitempty"`
	ActiveFrom  string      `json:"activeFrom,omitempty"`
	ActiveTo    string      `json:"activeTo,omitempty"`
	Priority    int         `json:"priority,omitempty"`
	Impressions int         `json:"impressions,omitempty"`
	Clicks      int         `json:"clicks,omitempty"`
}

type Media struct {
	ID      string   `json:"id"`
	URL     string   `json:"url"`
	Alt     string   `json:"alt,omitempty"`
	Caption string   `json:"caption,omitempty"`
	Folder  string   `json:"folder,omitempty"`
	Type    string   `json:"type,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive,omitempty"`
}

// DashboardOverview — агрегированные счётчики для админ-дашборда.
type DashboardOverview struct {
	Articles map[string]int `json:"articles,omitempty"`
	Users    map[string]int `json:"users,omitempty"`
	Ads      map[string]int `json:"ads,omitempty"`
	Media    map[string]int `json:"media,omitempty"`
}
