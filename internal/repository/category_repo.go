package repository

import (
	"context"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
)

type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// ListNames returns every category name in alphabetical order
func (r *categoryRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListWithCounts returns every category with the number of articles filed under it
func (r *categoryRepo) ListWithCounts(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT c.id, c.name, c.created_at, COUNT(a.id)
		FROM categories c
		LEFT JOIN articles a ON a.category = c.name
		GROUP BY c.id, c.name, c.created_at
		ORDER BY c.name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.ArticleCount); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// Exists checks if a category with the given name exists
func (r *categoryRepo) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)", name).Scan(&exists)
	return exists, err
}

// Create inserts a category. A name that already exists yields ErrDuplicate.
func (r *categoryRepo) Create(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES ($1)", name)
	if database.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// Delete removes a category by name
func (r *categoryRepo) Delete(ctx context.Context, name string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE name = $1", name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
