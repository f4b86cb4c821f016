package repository

import (
	"context"
	"database/sql"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
)

type commentLikeRepo struct {
	db *database.DB
}

// NewCommentLikeRepo creates a new comment like repository
func NewCommentLikeRepo(db *database.DB) CommentLikeRepository {
	return &commentLikeRepo{db: db}
}

// Find returns the like record for (articleID, commentID, likerID), nil when absent
func (r *commentLikeRepo) Find(ctx context.Context, articleID, commentID, likerID int64) (*models.CommentLikeRecord, error) {
	query := `
		SELECT id, article_id, comment_id, liker_id, like_date, is_read
		FROM comment_likes_records
		WHERE article_id = $1 AND comment_id = $2 AND liker_id = $3
	`
	var rec models.CommentLikeRecord
	err := r.db.QueryRowContext(ctx, query, articleID, commentID, likerID).Scan(
		&rec.ID, &rec.ArticleID, &rec.CommentID, &rec.LikerID, &rec.LikeDate, &rec.IsRead,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Insert stores a comment like. Returns false when it was already recorded.
func (r *commentLikeRepo) Insert(ctx context.Context, record *models.CommentLikeRecord) (bool, error) {
	query := `
		INSERT INTO comment_likes_records (article_id, comment_id, liker_id, like_date, is_read)
		VALUES ($1, $2, $3, COALESCE($4, NOW()), $5)
		ON CONFLICT (article_id, comment_id, liker_id) DO NOTHING
		RETURNING id, like_date
	`
	var likeDate sql.NullTime
	if !record.LikeDate.IsZero() {
		likeDate = sql.NullTime{Time: record.LikeDate, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		record.ArticleID, record.CommentID, record.LikerID, likeDate, record.IsRead,
	).Scan(&record.ID, &record.LikeDate)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByArticleID removes every comment like under an article
func (r *commentLikeRepo) DeleteByArticleID(ctx context.Context, articleID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comment_likes_records WHERE article_id = $1", articleID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
