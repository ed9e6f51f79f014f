package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusArchived  ArticleStatus = "archived"
)

// Valid reports whether s is one of the known article states.
func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

type Article struct {
	ID        string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string        `json:"title" gorm:"size:255;not null"`
	Status    ArticleStatus `json:"status" gorm:"size:20;not null;default:'draft';index"`
	Content   string        `json:"content" gorm:"type:text;not null"`
	Tags      []Tag         `json:"tags" gorm:"many2many:article_tags;"`
	CreatedAt time.Time     `json:"created_at" gorm:"index"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusDraft
	}
	return nil
}

// TagRef is the shape tags take when embedded in an article response.
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ArticleResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Status    ArticleStatus `json:"status"`
	Content   string        `json:"content"`
	Excerpt   string        `json:"excerpt"`
	Tags      []TagRef      `json:"tags"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewArticleResponse flattens an article and its preloaded tags for the API.
// The excerpt is filled in by the caller.
func NewArticleResponse(a *Article) ArticleResponse {
	tags := make([]TagRef, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, TagRef{ID: t.ID, Name: t.Name})
	}
	return ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Status:    a.Status,
		Content:   a.Content,
		Tags:      tags,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
