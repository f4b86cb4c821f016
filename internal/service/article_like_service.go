package service

import (
	"context"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/rs/zerolog"
)

const (
	defaultThumbsUpRows = 10
	maxThumbsUpRows     = 100
)

type articleLikeService struct {
	likes    repository.ArticleLikeRepository
	articles repository.ArticleRepository
	users    repository.UserRepository
	userSvc  UserService
	log      zerolog.Logger
}

func newArticleLikeService(
	likes repository.ArticleLikeRepository,
	articles repository.ArticleRepository,
	users repository.UserRepository,
	userSvc UserService,
	log zerolog.Logger,
) *articleLikeService {
	return &articleLikeService{
		likes:    likes,
		articles: articles,
		users:    users,
		userSvc:  userSvc,
		log:      log.With().Str("service", "article_like").Logger(),
	}
}

// IsLiked reports whether username already liked the article
func (s *articleLikeService) IsLiked(ctx context.Context, articleID int64, username string) (bool, error) {
	likerID, err := s.userSvc.FindIDByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return s.isLikedBy(ctx, articleID, likerID)
}

func (s *articleLikeService) isLikedBy(ctx context.Context, articleID, likerID int64) (bool, error) {
	record, err := s.likes.Find(ctx, articleID, likerID)
	if err != nil {
		return false, internal(err, "find article like")
	}
	return record != nil, nil
}

// Insert stores a like record. A duplicate is reported as not inserted.
func (s *articleLikeService) Insert(ctx context.Context, record *models.ArticleLikeRecord) (bool, error) {
	inserted, err := s.likes.Insert(ctx, record)
	if err != nil {
		return false, internal(err, "insert article like")
	}
	return inserted, nil
}

// DeleteByArticleID drops every like of the article
func (s *articleLikeService) DeleteByArticleID(ctx context.Context, articleID int64) error {
	n, err := s.likes.DeleteByArticleID(ctx, articleID)
	if err != nil {
		return internal(err, "delete article likes")
	}
	if n > 0 {
		s.log.Debug().Int64("article_id", articleID).Int64("count", n).Msg("Article likes deleted")
	}
	return nil
}

// GetArticleThumbsUp lists like notifications newest first
func (s *articleLikeService) GetArticleThumbsUp(ctx context.Context, rows, pageNum int) (*models.ThumbsUpPage, error) {
	if rows <= 0 {
		rows = defaultThumbsUpRows
	}
	if rows > maxThumbsUpRows {
		rows = maxThumbsUpRows
	}
	if pageNum <= 0 {
		pageNum = 1
	}

	total, err := s.likes.Count(ctx)
	if err != nil {
		return nil, internal(err, "count article likes")
	}
	unread, err := s.likes.CountUnread(ctx)
	if err != nil {
		return nil, internal(err, "count unread article likes")
	}

	page := &models.ThumbsUpPage{
		Result:          []models.ThumbsUp{},
		MsgIsNotReadNum: unread,
		PageInfo:        models.NewPageInfo(pageNum, rows, total),
	}

	// Pages past the end skip the store, so (pageNum-1)*rows cannot overflow.
	if total == 0 || pageNum-1 > (total-1)/rows {
		return page, nil
	}

	records, err := s.likes.List(ctx, rows, (pageNum-1)*rows)
	if err != nil {
		return nil, internal(err, "list article likes")
	}

	page.Result, err = s.enrich(ctx, records)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// enrich resolves liker names and article titles with one query each
func (s *articleLikeService) enrich(ctx context.Context, records []*models.ArticleLikeRecord) ([]models.ThumbsUp, error) {
	result := make([]models.ThumbsUp, 0, len(records))
	if len(records) == 0 {
		return result, nil
	}

	likerIDs := make([]int64, 0, len(records))
	articleIDs := make([]int64, 0, len(records))
	for _, r := range records {
		likerIDs = append(likerIDs, r.LikerID)
		articleIDs = append(articleIDs, r.ArticleID)
	}

	names, err := s.users.UsernamesByIDs(ctx, likerIDs)
	if err != nil {
		return nil, internal(err, "resolve liker names")
	}
	titles, err := s.articles.TitlesByIDs(ctx, articleIDs)
	if err != nil {
		return nil, internal(err, "resolve article titles")
	}

	for _, r := range records {
		result = append(result, models.ThumbsUp{
			ID:           r.ID,
			ArticleID:    r.ArticleID,
			LikeDate:     r.LikeDate.Format(models.DateLayout),
			PraisePeople: names[r.LikerID],
			ArticleTitle: titles[r.ArticleID],
			IsRead:       r.IsRead,
		})
	}
	return result, nil
}

// MarkRead flags one notification as read
func (s *articleLikeService) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid(models.CodeInvalidParameter, "id must be positive")
	}
	found, err := s.likes.MarkRead(ctx, id)
	if err != nil {
		return internal(err, "mark article like read")
	}
	if !found {
		return notFound(models.CodeInvalidParameter, "like record not found")
	}
	return nil
}

// Like records that who liked the article
func (s *articleLikeService) Like(ctx context.Context, articleID int64, who *models.Identity) (*models.LikeResult, error) {
	if articleID <= 0 {
		return nil, invalid(models.CodeInvalidParameter, "articleId must be positive")
	}

	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, internal(err, "find article")
	}
	if article == nil {
		return nil, notFound(models.CodeArticleNotExist, "")
	}

	liked, err := s.isLikedBy(ctx, articleID, who.ID)
	if err != nil {
		return nil, err
	}
	if liked {
		return &models.LikeResult{AlreadyLiked: true}, nil
	}

	inserted, err := s.Insert(ctx, &models.ArticleLikeRecord{ArticleID: articleID, LikerID: who.ID})
	if err != nil {
		return nil, err
	}
	if inserted {
		s.log.Info().Int64("article_id", articleID).Str("liker", who.Username).Msg("Article liked")
	}
	return &models.LikeResult{AlreadyLiked: !inserted}, nil
}
