package repositories

import (
	"context"
	"strings"
	"time"

	"blog-cms/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article, tagNames []string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	List(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error)
	Count(ctx context.Context, params models.ArticleListParams) (int64, error)
	// Update applies changes (column => value) and, when tagNames is non-nil,
	// replaces the tag set, all in one transaction.
	Update(ctx context.Context, id string, changes map[string]interface{}, tagNames *[]string) (*models.Article, error)
	Delete(ctx context.Context, id string) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := ResolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		article.Tags = tags
		return tx.Create(article).Error
	})
}

func (r *articleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return findArticle(r.db.WithContext(ctx), id)
}

func (r *articleRepository) List(ctx context.Context, params models.ArticleListParams) ([]models.Article, int64, error) {
	var total int64
	if err := r.filtered(ctx, params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	articles := []models.Article{}
	offset := (params.Page - 1) * params.Limit
	err := r.filtered(ctx, params).
		Preload("Tags", orderTagsByName).
		Order("articles.created_at DESC").
		Order("articles.id DESC").
		Offset(offset).
		Limit(params.Limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Count(ctx context.Context, params models.ArticleListParams) (int64, error) {
	var total int64
	err := r.filtered(ctx, params).Count(&total).Error
	return total, err
}

func (r *articleRepository) Update(ctx context.Context, id string, changes map[string]interface{}, tagNames *[]string) (*models.Article, error) {
	var updated *models.Article
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Where("id = ?", id).First(&article).Error; err != nil {
			return err
		}

		columns := make(map[string]interface{}, len(changes)+1)
		for k, v := range changes {
			columns[k] = v
		}
		columns["updated_at"] = time.Now()
		if err := tx.Model(&article).Updates(columns).Error; err != nil {
			return err
		}

		if tagNames != nil {
			if err := ResolveAndReplaceTags(tx, &article, *tagNames); err != nil {
				return err
			}
		}

		var err error
		updated, err = findArticle(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var article models.Article
		if err := tx.Where("id = ?", id).First(&article).Error; err != nil {
			return err
		}
		if err := tx.Model(&article).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&article).Error
	})
}

// ResolveAndReplaceTags swaps the article's whole tag set for the tags named
// in names, creating missing tags on the way. Run it inside a transaction so
// readers never see the article between the clear and the reconnect.
func ResolveAndReplaceTags(tx *gorm.DB, article *models.Article, names []string) error {
	tags, err := ResolveTags(tx, names)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return tx.Model(article).Association("Tags").Clear()
	}
	return tx.Model(article).Association("Tags").Replace(tags)
}

// filtered starts a query with the list predicate applied. List and Count
// both start here so the page and its total never disagree.
func (r *articleRepository) filtered(ctx context.Context, params models.ArticleListParams) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Article{}).Scopes(ArticleFilter(params))
}

// ArticleFilter narrows an article query by title search, status and tag.
func ArticleFilter(params models.ArticleListParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search := strings.TrimSpace(params.Search); search != "" {
			db = db.Where(`LOWER(articles.title) LIKE ? ESCAPE '\'`, containsPattern(search))
		}
		if params.Status != "" {
			db = db.Where("articles.status = ?", params.Status)
		}
		if params.TagID != "" {
			db = db.Where("articles.id IN (?)",
				db.Session(&gorm.Session{NewDB: true}).Table("article_tags").Select("article_id").Where("tag_id = ?", params.TagID))
		}
		return db
	}
}

func findArticle(db *gorm.DB, id string) (*models.Article, error) {
	var article models.Article
	err := db.Preload("Tags", orderTagsByName).Where("id = ?", id).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func orderTagsByName(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name ASC")
}
