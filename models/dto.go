package models

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type LoginData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Remember bool   `json:"remember"`
}

type CreateArticleRequest struct {
	Title    string        `json:"title" validate:"required"`
	Content  string        `json:"content" validate:"required"`
	Status   ArticleStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
	TagNames []string      `json:"tagNames"`
}

// UpdateArticleRequest is a partial patch: nil fields were absent from the
// request body and are left untouched.
type UpdateArticleRequest struct {
	Title    *string        `json:"title" validate:"omitempty,min=1"`
	Content  *string        `json:"content" validate:"omitempty,min=1"`
	Status   *ArticleStatus `json:"status" validate:"omitempty,oneof=draft published archived"`
	TagNames *[]string      `json:"tagNames"`
}

type TagRequest struct {
	Name string `json:"name" validate:"required"`
}

// ArticleListParams are the list filters. Page and Limit are read by the
// handler so that malformed numbers fall back to the defaults.
type ArticleListParams struct {
	Page   int    `form:"-"`
	Limit  int    `form:"-"`
	Search string `form:"search"`
	Status string `form:"status"`
	TagID  string `form:"tagId"`
}

type TagListParams struct {
	Search string `form:"search"`
}

type PageLinks struct {
	Previous string `json:"previous"`
	Next     string `json:"next"`
	First    string `json:"first"`
	Last     string `json:"last"`
}

type Pagination struct {
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int64      `json:"total"`
	Pages int        `json:"pages"`
	Links *PageLinks `json:"links,omitempty"`
}
