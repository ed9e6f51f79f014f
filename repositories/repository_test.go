package repositories

import (
	"context"
	"testing"

	"blog-cms/models"
	"blog-cms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"Go", "%go%"},
		{"100%", `%100\%%`},
		{"snake_case", `%snake\_case%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsPattern(tt.term), tt.term)
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewUserRepository(db)

	user := testutil.SeedUser(t, db, "editor", "password123")
	assert.NotEmpty(t, user.ID)

	byName, err := repo.GetByUsername(ctx, "editor")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.GetByUsername(ctx, "Editor")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = db.Create(&models.User{Username: "editor", Password: "hash"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestResolveTags(t *testing.T) {
	db := testutil.NewDB(t)

	first, err := ResolveTags(db, []string{"go", "rust", "go"})
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := ResolveTags(db, []string{"rust", "zig"})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, first[1].ID, second[0].ID)

	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestTagRepository_DuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := NewTagRepository(testutil.NewDB(t))

	require.NoError(t, repo.Create(ctx, &models.Tag{Name: "go"}))
	err := repo.Create(ctx, &models.Tag{Name: "go"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestTagRepository_DeleteIfUnused(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	tags := NewTagRepository(db)
	articles := NewArticleRepository(db)

	article := &models.Article{Title: "t", Content: "c"}
	require.NoError(t, articles.Create(ctx, article, []string{"go"}))
	goTag := article.Tags[0]

	count, err := countTagArticles(db, goTag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = tags.DeleteIfUnused(ctx, goTag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	_, err = tags.GetByID(ctx, goTag.ID)
	require.NoError(t, err, "tag in use must survive")

	require.NoError(t, articles.Delete(ctx, article.ID))

	count, err = tags.DeleteIfUnused(ctx, goTag.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	_, err = tags.GetByID(ctx, goTag.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = tags.DeleteIfUnused(ctx, goTag.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTagRepository_GetWithCountMissing(t *testing.T) {
	repo := NewTagRepository(testutil.NewDB(t))
	_, err := repo.GetWithCount(context.Background(), "6f1d3c52-8f3f-4a4c-9d59-1a2b3c4d5e6f")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestArticleRepository_ListAndCountAgree(t *testing.T) {
	ctx := context.Background()
	repo := NewArticleRepository(testutil.NewDB(t))

	for _, title := range []string{"Go tips", "More GO", "Rust"} {
		require.NoError(t, repo.Create(ctx, &models.Article{Title: title, Content: "c", Status: models.StatusPublished}, nil))
	}

	params := models.ArticleListParams{Page: 1, Limit: 1, Search: "go"}
	page, total, err := repo.List(ctx, params)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	count, err := repo.Count(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, total, count)
}

func TestArticleRepository_UpdateMissing(t *testing.T) {
	repo := NewArticleRepository(testutil.NewDB(t))
	_, err := repo.Update(context.Background(), "6f1d3c52-8f3f-4a4c-9d59-1a2b3c4d5e6f", map[string]interface{}{"title": "x"}, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
