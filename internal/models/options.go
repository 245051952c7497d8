package models

import (
	"net/url"
	"strconv"
)

// Опции списочных запросов к backoffice.
//
// Каждая структура явно перечисляет все распознаваемые фильтры/сортировки/
// пагинацию ресурса: из одного и того же набора полей детерминированно
// строятся и query string запроса, и ключ кэша. Открытый map сюда
// сознательно не допускается — иначе ключи кэша перестают быть исчерпывающими.

// ArticleListOptions — фильтры списка статей.
type ArticleListOptions struct {
	Category string        // id или slug категории
	Search   string        // поисковый терм
	Status   ArticleStatus // admin-фильтр по статусу
	Sort     string        // поле сортировки, например "publishedAt"
	Order    string        // "asc" | "desc"
	Page     int
	Limit    int
}

// Values возвращает query-параметры в каноническом виде.
// url.Values.Encode() сортирует ключи, поэтому представление детерминировано.
func (o ArticleListOptions) Values() url.Values {
	v := url.Values{}
	setStr(v, "category", o.Category)
	setStr(v, "search", o.Search)
	setStr(v, "status", string(o.Status))
	setStr(v, "sort", o.Sort)
	setStr(v, "order", o.Order)
	setInt(v, "page", o.Page)
	setInt(v, "limit", o.Limit)
	return v
}

// CategoryListOptions — фильтры списка категорий.
type CategoryListOptions struct {
	MenuOnly   bool // только категории, показываемые в меню
	ActiveOnly bool
}

func (o CategoryListOptions) Values() url.Values {
	v := url.Values{}
	setBool(v, "menu", o.MenuOnly)
	setBool(v, "active", o.ActiveOnly)
	return v
}

// AdListOptions — фильтры активной рекламы.
type AdListOptions struct {
	Position AdPlacement
	Page     string // имя страницы-слота ("home", "article", ...)
	Type     string // image | video | html
}

func (o AdListOptions) Values() url.Values {
	v := url.Values{}
	setStr(v, "position", string(o.Position))
	setStr(v, "page", o.Page)
	setStr(v, "type", o.Type)
	return v
}

// MediaListOptions — фильтры медиатеки.
type MediaListOptions struct {
	Folder string
	Type   string
	Search string
	Page   int
	Limit  int
}

func (o MediaListOptions) Values() url.Values {
	v := url.Values{}
	setStr(v, "folder", o.Folder)
	setStr(v, "type", o.Type)
	setStr(v, "search", o.Search)
	setInt(v, "page", o.Page)
	setInt(v, "limit", o.Limit)
	return v
}

// UserListOptions — фильтры списка пользователей.
type UserListOptions struct {
	Role   Role
	Search string
	Page   int
	Limit  int
}

func (o UserListOptions) Values() url.Values {
	v := url.Values{}
	setStr(v, "role", string(o.Role))
	setStr(v, "search", o.Search)
	setInt(v, "page", o.Page)
	setInt(v, "limit", o.Limit)
	return v
}

func setStr(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setInt(v url.Values, key string, val int) {
	if val > 0 {
		v.Set(key, strconv.Itoa(val))
	}
}

func setBool(v url.Values, key string, val bool) {
	if val {
		v.Set(key, "true")
	}
}
