package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
	"github.com/lib/pq"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(tags)
}

// Create inserts a new article; the store assigns id and timestamps
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	tagsJSON, err := marshalTags(article.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	query := `
		INSERT INTO articles (title, content, summary, author, category, tags, type, grade)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.Summary, article.Author,
		article.Category, tagsJSON, article.Type, article.Grade,
	).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
}

// Update overwrites an existing article. Returns false when no row has the id.
func (r *articleRepo) Update(ctx context.Context, article *models.Article) (bool, error) {
	tagsJSON, err := marshalTags(article.Tags)
	if err != nil {
		return false, fmt.Errorf("marshal tags: %w", err)
	}

	query := `
		UPDATE articles
		SET title = $2, content = $3, summary = $4, author = $5, category = $6,
			tags = $7, type = $8, grade = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		article.ID, article.Title, article.Content, article.Summary, article.Author,
		article.Category, tagsJSON, article.Type, article.Grade,
	).Scan(&article.CreatedAt, &article.UpdatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes an article by id. Returns false when nothing was deleted.
func (r *articleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `
		SELECT id, title, content, summary, author, category, tags, type, grade, created_at, updated_at
		FROM articles WHERE id = $1
	`

	var article models.Article
	var tagsJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Content, &article.Summary, &article.Author,
		&article.Category, &tagsJSON, &article.Type, &article.Grade,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &article.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of article %d: %w", id, err)
	}
	return &article, nil
}

// TitleByID returns the title of an article, or "" when it does not exist
func (r *articleRepo) TitleByID(ctx context.Context, id int64) (string, error) {
	var title string
	err := r.db.QueryRowContext(ctx, "SELECT title FROM articles WHERE id = $1", id).Scan(&title)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return title, err
}

// TitlesByIDs resolves many article titles in one query
func (r *articleRepo) TitlesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	titles := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	rows, err := r.db.QueryContext(ctx, "SELECT id, title FROM articles WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, err
		}
		titles[id] = title
	}
	return titles, rows.Err()
}
