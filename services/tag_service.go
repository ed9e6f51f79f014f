package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"blog-cms/models"
	"blog-cms/repositories"

	"gorm.io/gorm"
)

type TagService interface {
	ListTags(ctx context.Context, params models.TagListParams) ([]models.TagWithCount, error)
	GetTag(ctx context.Context, id string) (*models.TagWithCount, error)
	CreateTag(ctx context.Context, req models.TagRequest) (*models.Tag, error)
	UpdateTag(ctx context.Context, id string, req models.TagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}

type tagService struct {
	tagRepo repositories.TagRepository
	log     *slog.Logger
}

func NewTagService(tagRepo repositories.TagRepository, log *slog.Logger) TagService {
	if log == nil {
		log = slog.Default()
	}
	return &tagService{tagRepo: tagRepo, log: log}
}

func (s *tagService) ListTags(ctx context.Context, params models.TagListParams) ([]models.TagWithCount, error) {
	tags, err := s.tagRepo.List(ctx, params)
	if err != nil {
		return nil, storeError(s.log, "tag", "list", err)
	}
	return tags, nil
}

func (s *tagService) GetTag(ctx context.Context, id string) (*models.TagWithCount, error) {
	if !isValidID(id) {
		return nil, models.NewNotFoundError("tag")
	}
	tag, err := s.tagRepo.GetWithCount(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "tag", "get", err)
	}
	return tag, nil
}

func (s *tagService) CreateTag(ctx context.Context, req models.TagRequest) (*models.Tag, error) {
	name, err := validTagName(req.Name)
	if err != nil {
		return nil, err
	}

	_, err = s.tagRepo.GetByName(ctx, name)
	if err == nil {
		return nil, models.NewConflictError("tag name already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(s.log, "tag", "create", err)
	}

	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("tag name already exists")
		}
		return nil, storeError(s.log, "tag", "create", err)
	}
	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, id string, req models.TagRequest) (*models.Tag, error) {
	name, err := validTagName(req.Name)
	if err != nil {
		return nil, err
	}
	if !isValidID(id) {
		return nil, models.NewNotFoundError("tag")
	}

	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "tag", "update", err)
	}

	existing, err := s.tagRepo.GetByName(ctx, name)
	switch {
	case err == nil && existing.ID != tag.ID:
		return nil, renameConflict()
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storeError(s.log, "tag", "update", err)
	}

	tag.Name = name
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, renameConflict()
		}
		return nil, storeError(s.log, "tag", "update", err)
	}
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id string) error {
	if !isValidID(id) {
		return models.NewNotFoundError("tag")
	}

	count, err := s.tagRepo.DeleteIfUnused(ctx, id)
	if err != nil {
		return storeError(s.log, "tag", "delete", err)
	}
	if count > 0 {
		return models.NewTagInUseError(count)
	}
	s.log.Info("tag deleted", "tag_id", id)
	return nil
}

func renameConflict() error {
	return models.ErrorConflict{Message: "tag name already exists", Status: http.StatusBadRequest}
}
