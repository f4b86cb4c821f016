package repository

import (
	"context"
	"database/sql"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
)

// articleLikeRepo stores article like records.
// (article_id, liker_id) carries a UNIQUE constraint, so concurrent identical likes collapse to one row.
type articleLikeRepo struct {
	db *database.DB
}

// NewArticleLikeRepo creates a new article like repository
func NewArticleLikeRepo(db *database.DB) ArticleLikeRepository {
	return &articleLikeRepo{db: db}
}

// Find returns the like record for (articleID, likerID), nil when absent
func (r *articleLikeRepo) Find(ctx context.Context, articleID, likerID int64) (*models.ArticleLikeRecord, error) {
	query := `
		SELECT id, article_id, liker_id, like_date, is_read
		FROM article_likes_records WHERE article_id = $1 AND liker_id = $2
	`
	var rec models.ArticleLikeRecord
	err := r.db.QueryRowContext(ctx, query, articleID, likerID).Scan(
		&rec.ID, &rec.ArticleID, &rec.LikerID, &rec.LikeDate, &rec.IsRead,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Insert stores a like record. Returns false when the pair was already recorded.
func (r *articleLikeRepo) Insert(ctx context.Context, record *models.ArticleLikeRecord) (bool, error) {
	query := `
		INSERT INTO article_likes_records (article_id, liker_id, like_date, is_read)
		VALUES ($1, $2, COALESCE($3, NOW()), $4)
		ON CONFLICT (article_id, liker_id) DO NOTHING
		RETURNING id, like_date
	`
	var likeDate sql.NullTime
	if !record.LikeDate.IsZero() {
		likeDate = sql.NullTime{Time: record.LikeDate, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query, record.ArticleID, record.LikerID, likeDate, record.IsRead).
		Scan(&record.ID, &record.LikeDate)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByArticleID removes every like of an article and returns how many were removed
func (r *articleLikeRepo) DeleteByArticleID(ctx context.Context, articleID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM article_likes_records WHERE article_id = $1", articleID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// List returns one page of like records, newest first
func (r *articleLikeRepo) List(ctx context.Context, limit, offset int) ([]*models.ArticleLikeRecord, error) {
	query := `
		SELECT id, article_id, liker_id, like_date, is_read
		FROM article_likes_records
		ORDER BY like_date DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ArticleLikeRecord
	for rows.Next() {
		var rec models.ArticleLikeRecord
		if err := rows.Scan(&rec.ID, &rec.ArticleID, &rec.LikerID, &rec.LikeDate, &rec.IsRead); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Count returns the total number of article like records
func (r *articleLikeRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM article_likes_records").Scan(&count)
	return count, err
}

// CountUnread returns how many like records have not been read yet
func (r *articleLikeRepo) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM article_likes_records WHERE is_read = FALSE").Scan(&count)
	return count, err
}

// MarkRead flags a like record as read. Returns false when the id is unknown.
func (r *articleLikeRepo) MarkRead(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE article_likes_records SET is_read = TRUE WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
