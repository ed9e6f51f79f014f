package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const MaxTagNameLength = 50

type Tag struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Articles  []Article `json:"articles,omitempty" gorm:"many2many:article_tags;"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TagWithCount is a tag together with the number of articles referencing it.
type TagWithCount struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ArticleCount int64     `json:"article_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
