package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/blog-api/internal/cache"
	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/blog-api/internal/validation"
	"github.com/rs/zerolog"
)

// likeCascade is the part of a like service used when an article goes away
type likeCascade interface {
	DeleteByArticleID(ctx context.Context, articleID int64) error
}

type articleService struct {
	articles     repository.ArticleRepository
	categories   repository.CategoryRepository
	cache        cache.CategoryCache
	articleLikes likeCascade
	commentLikes likeCascade
	log          zerolog.Logger
}

func newArticleService(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	c cache.CategoryCache,
	articleLikes likeCascade,
	commentLikes likeCascade,
	log zerolog.Logger,
) *articleService {
	return &articleService{
		articles:     articles,
		categories:   categories,
		cache:        c,
		articleLikes: articleLikes,
		commentLikes: commentLikes,
		log:          log.With().Str("service", "article").Logger(),
	}
}

// InsertArticle creates the article when ID is 0 and updates it otherwise
func (s *articleService) InsertArticle(ctx context.Context, article *models.Article) (*models.PublishResult, error) {
	if article.ID < 0 {
		return nil, invalid(models.CodeInvalidParameter, "id must not be negative")
	}

	article.Title = strings.TrimSpace(article.Title)
	article.Category = strings.TrimSpace(article.Category)

	if errs := validation.ValidateArticle(article); len(errs) > 0 {
		e := invalid(models.CodeInvalidParameter, "validation failed")
		e.Details = errs
		return nil, e
	}

	if article.Category != "" {
		exists, err := s.categories.Exists(ctx, article.Category)
		if err != nil {
			return nil, internal(err, "check category")
		}
		if !exists {
			return nil, notFound(models.CodeCategoryNotExist, "")
		}
	}

	if article.ID == 0 {
		if err := s.articles.Create(ctx, article); err != nil {
			return nil, internal(err, "create article")
		}
		s.log.Info().Int64("article_id", article.ID).Str("author", article.Author).Msg("Article created")
	} else {
		found, err := s.articles.Update(ctx, article)
		if err != nil {
			return nil, internal(err, "update article")
		}
		if !found {
			return nil, notFound(models.CodeArticleNotExist, "")
		}
		s.log.Info().Int64("article_id", article.ID).Str("author", article.Author).Msg("Article updated")
	}

	s.invalidateCategories(ctx)

	return &models.PublishResult{
		ArticleID:    article.ID,
		ArticleTitle: article.Title,
		Author:       article.Author,
		UpdateDate:   article.UpdatedAt.Format(models.DateLayout),
		ArticleURL:   fmt.Sprintf("/article/%d", article.ID),
	}, nil
}

// DeleteArticle removes an article together with its like records.
// Deleting an article that does not exist succeeds.
func (s *articleService) DeleteArticle(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid(models.CodeDeleteArticleFail, "id must be positive")
	}

	if err := s.articleLikes.DeleteByArticleID(ctx, id); err != nil {
		return err
	}
	if err := s.commentLikes.DeleteByArticleID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return internal(err, "delete article")
	}

	if deleted {
		s.invalidateCategories(ctx)
		s.log.Info().Int64("article_id", id).Msg("Article deleted")
	} else {
		s.log.Debug().Int64("article_id", id).Msg("Article already absent")
	}
	return nil
}

// FindArticleTitleByID returns the title, "" when the article does not exist
func (s *articleService) FindArticleTitleByID(ctx context.Context, id int64) (string, error) {
	title, err := s.articles.TitleByID(ctx, id)
	if err != nil {
		return "", internal(err, "find article title")
	}
	return title, nil
}

// Article counts per category change with every write.
func (s *articleService) invalidateCategories(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Category cache invalidation failed")
	}
}
