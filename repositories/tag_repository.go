package repositories

import (
	"context"
	"strings"

	"blog-cms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	GetWithCount(ctx context.Context, id string) (*models.TagWithCount, error)
	List(ctx context.Context, params models.TagListParams) ([]models.TagWithCount, error)
	Update(ctx context.Context, tag *models.Tag) error
	// DeleteIfUnused removes the tag only when no article references it and
	// returns the number of referencing articles.
	DeleteIfUnused(ctx context.Context, id string) (int64, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetWithCount(ctx context.Context, id string) (*models.TagWithCount, error) {
	var tag models.TagWithCount
	res := withArticleCount(r.db.WithContext(ctx)).Where("tags.id = ?", id).Scan(&tag)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context, params models.TagListParams) ([]models.TagWithCount, error) {
	query := withArticleCount(r.db.WithContext(ctx))
	if search := strings.TrimSpace(params.Search); search != "" {
		query = query.Where(`LOWER(tags.name) LIKE ? ESCAPE '\'`, containsPattern(search))
	}

	tags := []models.TagWithCount{}
	err := query.Order("tags.created_at DESC").Order("tags.name ASC").Scan(&tags).Error
	return tags, err
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Model(tag).Select("name", "updated_at").Updates(tag).Error
}

func (r *tagRepository) DeleteIfUnused(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where("id = ?", id).First(&tag).Error; err != nil {
			return err
		}

		var err error
		if count, err = countTagArticles(tx, id); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Delete(&tag).Error
	})
	return count, err
}

func countTagArticles(db *gorm.DB, tagID string) (int64, error) {
	var count int64
	err := db.Table("article_tags").Where("tag_id = ?", tagID).Count(&count).Error
	return count, err
}

func withArticleCount(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Tag{}).
		Select("tags.id, tags.name, tags.created_at, tags.updated_at, COUNT(article_tags.article_id) AS article_count").
		Joins("LEFT JOIN article_tags ON article_tags.tag_id = tags.id").
		Group("tags.id, tags.name, tags.created_at, tags.updated_at")
}

// ResolveTags maps names to tags, creating the missing ones. Concurrent
// callers racing on the same name converge on a single row through the
// unique index. Names are expected to be trimmed already; repeats are
// collapsed.
func ResolveTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		candidate := models.Tag{Name: name}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&candidate).Error
		if err != nil {
			return nil, err
		}

		var tag models.Tag
		if err := tx.Where("name = ?", name).First(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return tags, nil
}
