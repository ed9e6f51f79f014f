package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"blog-cms/models"
	"blog-cms/repositories"
	"blog-cms/testutil"

	"github.com/stretchr/testify/suite"
)

type TagServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	tags     TagService
	articles ArticleService
}

func (s *TagServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	db := testutil.NewDB(s.T())
	s.tags = NewTagService(repositories.NewTagRepository(db), nil)
	s.articles = NewArticleService(repositories.NewArticleRepository(db), nil)
}

func (s *TagServiceTestSuite) createTag(name string) *models.Tag {
	tag, err := s.tags.CreateTag(s.ctx, models.TagRequest{Name: name})
	s.Require().NoError(err)
	return tag
}

func (s *TagServiceTestSuite) TestCreateTag() {
	tag := s.createTag("  Go ")
	s.Equal("Go", tag.Name)
	s.NotEmpty(tag.ID)

	_, err := s.tags.CreateTag(s.ctx, models.TagRequest{Name: "Go"})
	var conflict models.ErrorConflict
	s.Require().ErrorAs(err, &conflict)
	s.Equal(http.StatusConflict, conflict.StatusCode())
	s.Equal("tag name already exists", conflict.Message)
}

func (s *TagServiceTestSuite) TestCreateTagValidation() {
	for _, name := range []string{"", "   ", strings.Repeat("x", 51)} {
		_, err := s.tags.CreateTag(s.ctx, models.TagRequest{Name: name})
		s.ErrorAs(err, new(models.ErrorValidation), "name %q", name)
	}

	_, err := s.tags.CreateTag(s.ctx, models.TagRequest{Name: strings.Repeat("é", 50)})
	s.NoError(err)
}

func (s *TagServiceTestSuite) TestListAndGetCountArticles() {
	_, err := s.articles.CreateArticle(s.ctx, models.CreateArticleRequest{
		Title: "One", Content: "x", TagNames: []string{"Go", "Rust"},
	})
	s.Require().NoError(err)
	_, err = s.articles.CreateArticle(s.ctx, models.CreateArticleRequest{
		Title: "Two", Content: "x", TagNames: []string{"Go"},
	})
	s.Require().NoError(err)
	unused := s.createTag("Zig")

	tags, err := s.tags.ListTags(s.ctx, models.TagListParams{})
	s.Require().NoError(err)
	counts := map[string]int64{}
	for _, t := range tags {
		counts[t.Name] = t.ArticleCount
	}
	s.Equal(map[string]int64{"Go": 2, "Rust": 1, "Zig": 0}, counts)

	tags, err = s.tags.ListTags(s.ctx, models.TagListParams{Search: "RU"})
	s.Require().NoError(err)
	s.Require().Len(tags, 1)
	s.Equal("Rust", tags[0].Name)

	got, err := s.tags.GetTag(s.ctx, unused.ID)
	s.Require().NoError(err)
	s.Equal("Zig", got.Name)
	s.Zero(got.ArticleCount)

	_, err = s.tags.GetTag(s.ctx, "6f1d3c52-8f3f-4a4c-9d59-1a2b3c4d5e6f")
	s.ErrorAs(err, new(models.ErrorNotFound))
}

func (s *TagServiceTestSuite) TestRenameTag() {
	goTag := s.createTag("Go")
	s.createTag("Rust")

	same, err := s.tags.UpdateTag(s.ctx, goTag.ID, models.TagRequest{Name: "Go"})
	s.Require().NoError(err)
	s.Equal("Go", same.Name)

	_, err = s.tags.UpdateTag(s.ctx, goTag.ID, models.TagRequest{Name: "Rust"})
	var conflict models.ErrorConflict
	s.Require().ErrorAs(err, &conflict)
	s.Equal(http.StatusBadRequest, conflict.StatusCode())

	renamed, err := s.tags.UpdateTag(s.ctx, goTag.ID, models.TagRequest{Name: "Golang"})
	s.Require().NoError(err)
	s.Equal("Golang", renamed.Name)

	_, err = s.tags.UpdateTag(s.ctx, "6f1d3c52-8f3f-4a4c-9d59-1a2b3c4d5e6f", models.TagRequest{Name: "x"})
	s.ErrorAs(err, new(models.ErrorNotFound))

	_, err = s.tags.UpdateTag(s.ctx, goTag.ID, models.TagRequest{Name: ""})
	s.ErrorAs(err, new(models.ErrorValidation))
}

func (s *TagServiceTestSuite) TestDeleteTag() {
	article, err := s.articles.CreateArticle(s.ctx, models.CreateArticleRequest{
		Title: "Tagged", Content: "x", TagNames: []string{"Go"},
	})
	s.Require().NoError(err)
	goID := article.Tags[0].ID

	err = s.tags.DeleteTag(s.ctx, goID)
	var conflict models.ErrorConflict
	s.Require().ErrorAs(err, &conflict)
	s.Equal(http.StatusBadRequest, conflict.StatusCode())
	s.Equal(int64(1), conflict.ArticleCount)
	s.Contains(conflict.Message, "used by 1 article")

	s.Require().NoError(s.articles.DeleteArticle(s.ctx, article.ID))
	s.Require().NoError(s.tags.DeleteTag(s.ctx, goID))

	err = s.tags.DeleteTag(s.ctx, goID)
	s.ErrorAs(err, new(models.ErrorNotFound))
}

func TestTagServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TagServiceTestSuite))
}
