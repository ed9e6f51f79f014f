package services

import (
	"context"
	"log/slog"

	"blog-cms/helper"
	"blog-cms/models"
	"blog-cms/repositories"
)

type ArticlePage struct {
	Articles []models.ArticleResponse
	Page     int
	Limit    int
	Total    int64
}

type ArticleService interface {
	ListArticles(ctx context.Context, params models.ArticleListParams) (*ArticlePage, error)
	CountArticles(ctx context.Context, params models.ArticleListParams) (int64, error)
	GetArticle(ctx context.Context, id string) (*models.ArticleResponse, error)
	CreateArticle(ctx context.Context, req models.CreateArticleRequest) (*models.ArticleResponse, error)
	UpdateArticle(ctx context.Context, id string, req models.UpdateArticleRequest) (*models.ArticleResponse, error)
	DeleteArticle(ctx context.Context, id string) error
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	log         *slog.Logger
}

func NewArticleService(articleRepo repositories.ArticleRepository, log *slog.Logger) ArticleService {
	if log == nil {
		log = slog.Default()
	}
	return &articleService{articleRepo: articleRepo, log: log}
}

func (s *articleService) ListArticles(ctx context.Context, params models.ArticleListParams) (*ArticlePage, error) {
	params = NormalizeListParams(params)

	articles, total, err := s.articleRepo.List(ctx, params)
	if err != nil {
		return nil, storeError(s.log, "article", "list", err)
	}

	out := make([]models.ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, toArticleResponse(&articles[i]))
	}
	return &ArticlePage{Articles: out, Page: params.Page, Limit: params.Limit, Total: total}, nil
}

func (s *articleService) CountArticles(ctx context.Context, params models.ArticleListParams) (int64, error) {
	total, err := s.articleRepo.Count(ctx, NormalizeListParams(params))
	if err != nil {
		return 0, storeError(s.log, "article", "count", err)
	}
	return total, nil
}

func (s *articleService) GetArticle(ctx context.Context, id string) (*models.ArticleResponse, error) {
	if !isValidID(id) {
		return nil, models.NewNotFoundError("article")
	}
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "article", "get", err)
	}
	resp := toArticleResponse(article)
	return &resp, nil
}

func (s *articleService) CreateArticle(ctx context.Context, req models.CreateArticleRequest) (*models.ArticleResponse, error) {
	title, err := validTitle(req.Title)
	if err != nil {
		return nil, err
	}
	if err := validContent(req.Content); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}
	if err := validStatus(status); err != nil {
		return nil, err
	}
	tagNames, err := NormalizeTagNames(req.TagNames)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:   title,
		Content: req.Content,
		Status:  status,
	}
	if err := s.articleRepo.Create(ctx, article, tagNames); err != nil {
		return nil, storeError(s.log, "article", "create", err)
	}

	s.log.Info("article created", "article_id", article.ID, "tags", len(article.Tags))
	resp := toArticleResponse(article)
	return &resp, nil
}

func (s *articleService) UpdateArticle(ctx context.Context, id string, req models.UpdateArticleRequest) (*models.ArticleResponse, error) {
	changes := map[string]interface{}{}
	if req.Title != nil {
		title, err := validTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		changes["title"] = title
	}
	if req.Content != nil {
		if err := validContent(*req.Content); err != nil {
			return nil, err
		}
		changes["content"] = *req.Content
	}
	if req.Status != nil {
		if err := validStatus(*req.Status); err != nil {
			return nil, err
		}
		changes["status"] = string(*req.Status)
	}

	var tagNames *[]string
	if req.TagNames != nil {
		names, err := NormalizeTagNames(*req.TagNames)
		if err != nil {
			return nil, err
		}
		tagNames = &names
	}

	if !isValidID(id) {
		return nil, models.NewNotFoundError("article")
	}
	article, err := s.articleRepo.Update(ctx, id, changes, tagNames)
	if err != nil {
		return nil, storeError(s.log, "article", "update", err)
	}

	resp := toArticleResponse(article)
	return &resp, nil
}

func (s *articleService) DeleteArticle(ctx context.Context, id string) error {
	if !isValidID(id) {
		return models.NewNotFoundError("article")
	}
	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return storeError(s.log, "article", "delete", err)
	}
	s.log.Info("article deleted", "article_id", id)
	return nil
}

func toArticleResponse(a *models.Article) models.ArticleResponse {
	resp := models.NewArticleResponse(a)
	resp.Excerpt = helper.Excerpt(a.Content, helper.DefaultExcerptLength)
	return resp
}
