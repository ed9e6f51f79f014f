package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"blog-cms/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxTitleLength = 255
	maxListLimit   = 100
	defaultLimit   = 10
)

func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", models.NewFieldError("title", "title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", models.NewFieldError("title", fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	return title, nil
}

func validContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewFieldError("content", "content is required")
	}
	return nil
}

func validStatus(status models.ArticleStatus) error {
	if !status.Valid() {
		return models.NewFieldError("status", "status must be one of draft, published, archived")
	}
	return nil
}

func validTagName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", models.NewFieldError("name", "tag name is required")
	}
	if utf8.RuneCountInString(name) > models.MaxTagNameLength {
		return "", models.NewFieldError("name", fmt.Sprintf("tag name must be at most %d characters", models.MaxTagNameLength))
	}
	return name, nil
}

// NormalizeTagNames trims names, drops blanks and repeats (first one wins)
// and rejects any name that is too long.
func NormalizeTagNames(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if utf8.RuneCountInString(name) > models.MaxTagNameLength {
			return nil, models.NewFieldError("tagNames",
				fmt.Sprintf("tag name %q must be at most %d characters", name, models.MaxTagNameLength))
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// NormalizeListParams applies the paging defaults: page 1, limit 10, limit
// capped at 100.
func NormalizeListParams(params models.ArticleListParams) models.ArticleListParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultLimit
	}
	if params.Limit > maxListLimit {
		params.Limit = maxListLimit
	}
	params.Search = strings.TrimSpace(params.Search)
	params.Status = strings.TrimSpace(params.Status)
	params.TagID = strings.TrimSpace(params.TagID)
	return params
}

func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// storeError turns a repository failure into the API error taxonomy.
func storeError(log *slog.Logger, resource, op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.NewConflictError(resource + " already exists")
	default:
		log.Error("store operation failed", "resource", resource, "op", op, "error", err)
		return models.NewInternalError(fmt.Sprintf("failed to %s %s", op, resource), err)
	}
}
