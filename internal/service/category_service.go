package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blog-api/internal/cache"
	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/rs/zerolog"
)

type categoryService struct {
	categories repository.CategoryRepository
	cache      cache.CategoryCache
	log        zerolog.Logger
}

func newCategoryService(categories repository.CategoryRepository, c cache.CategoryCache, log zerolog.Logger) *categoryService {
	return &categoryService{
		categories: categories,
		cache:      c,
		log:        log.With().Str("service", "category").Logger(),
	}
}

// FindCategoriesName returns all category names, served from cache when possible
func (s *categoryService) FindCategoriesName(ctx context.Context) ([]string, error) {
	if names, err := s.cache.GetNames(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Category cache read failed")
	} else if names != nil {
		return names, nil
	}

	names, err := s.categories.ListNames(ctx)
	if err != nil {
		return nil, internal(err, "list category names")
	}
	if err := s.cache.SetNames(ctx, names); err != nil {
		s.log.Warn().Err(err).Msg("Category cache write failed")
	}
	return names, nil
}

// FindAllCategories returns all categories with article counts
func (s *categoryService) FindAllCategories(ctx context.Context) ([]*models.Category, error) {
	if list, err := s.cache.GetList(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Category cache read failed")
	} else if list != nil {
		return list, nil
	}

	list, err := s.categories.ListWithCounts(ctx)
	if err != nil {
		return nil, internal(err, "list categories")
	}
	if err := s.cache.SetList(ctx, list); err != nil {
		s.log.Warn().Err(err).Msg("Category cache write failed")
	}
	return list, nil
}

// UpdateCategory adds or deletes a category by name
func (s *categoryService) UpdateCategory(ctx context.Context, name string, op models.CategoryOp) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid(models.CodeInvalidParameter, "categoryName is required")
	}
	if utf8.RuneCountInString(name) > models.MaxCategoryNameLength {
		return invalid(models.CodeInvalidParameter,
			fmt.Sprintf("categoryName exceeds maximum of %d characters", models.MaxCategoryNameLength))
	}

	switch op {
	case models.CategoryAdd:
		err := s.categories.Create(ctx, name)
		if errors.Is(err, repository.ErrDuplicate) {
			return conflict(models.CodeCategoryAlreadyExist, "")
		}
		if err != nil {
			return internal(err, "create category")
		}
	case models.CategoryDelete:
		deleted, err := s.categories.Delete(ctx, name)
		if err != nil {
			return internal(err, "delete category")
		}
		if !deleted {
			return notFound(models.CodeCategoryNotExist, "")
		}
	default:
		return invalid(models.CodeInvalidParameter, "type must be 1 (add) or 2 (delete)")
	}

	s.invalidate(ctx)
	s.log.Info().Str("category", name).Int("type", int(op)).Msg("Category updated")
	return nil
}

func (s *categoryService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Category cache invalidation failed")
	}
}
