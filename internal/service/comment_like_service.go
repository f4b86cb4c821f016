package service

import (
	"context"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/rs/zerolog"
)

type commentLikeService struct {
	likes    repository.CommentLikeRepository
	articles repository.ArticleRepository
	userSvc  UserService
	log      zerolog.Logger
}

func newCommentLikeService(
	likes repository.CommentLikeRepository,
	articles repository.ArticleRepository,
	userSvc UserService,
	log zerolog.Logger,
) *commentLikeService {
	return &commentLikeService{
		likes:    likes,
		articles: articles,
		userSvc:  userSvc,
		log:      log.With().Str("service", "comment_like").Logger(),
	}
}

func (s *commentLikeService) IsLiked(ctx context.Context, articleID, commentID int64, username string) (bool, error) {
	likerID, err := s.userSvc.FindIDByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	record, err := s.likes.Find(ctx, articleID, commentID, likerID)
	if err != nil {
		return false, internal(err, "find comment like")
	}
	return record != nil, nil
}

func (s *commentLikeService) Insert(ctx context.Context, record *models.CommentLikeRecord) (bool, error) {
	inserted, err := s.likes.Insert(ctx, record)
	if err != nil {
		return false, internal(err, "insert comment like")
	}
	return inserted, nil
}

func (s *commentLikeService) DeleteByArticleID(ctx context.Context, articleID int64) error {
	if _, err := s.likes.DeleteByArticleID(ctx, articleID); err != nil {
		return internal(err, "delete comment likes")
	}
	return nil
}

// Like records that who liked a comment under the article
func (s *commentLikeService) Like(ctx context.Context, articleID, commentID int64, who *models.Identity) (*models.LikeResult, error) {
	if articleID <= 0 || commentID <= 0 {
		return nil, invalid(models.CodeInvalidParameter, "articleId and commentId must be positive")
	}

	title, err := s.articles.TitleByID(ctx, articleID)
	if err != nil {
		return nil, internal(err, "find article")
	}
	if title == "" {
		return nil, notFound(models.CodeArticleNotExist, "")
	}

	existing, err := s.likes.Find(ctx, articleID, commentID, who.ID)
	if err != nil {
		return nil, internal(err, "find comment like")
	}
	if existing != nil {
		return &models.LikeResult{AlreadyLiked: true}, nil
	}

	inserted, err := s.Insert(ctx, &models.CommentLikeRecord{
		ArticleID: articleID,
		CommentID: commentID,
		LikerID:   who.ID,
	})
	if err != nil {
		return nil, err
	}
	return &models.LikeResult{AlreadyLiked: !inserted}, nil
}
