package repository

import (
	"context"
	"errors"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
)

// ErrDuplicate is returned when an insert hits a unique constraint
var ErrDuplicate = errors.New("duplicate record")

// UserRepository defines the interface for user lookups
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UsernamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	TitleByID(ctx context.Context, id int64) (string, error)
	TitlesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	ListNames(ctx context.Context) ([]string, error)
	ListWithCounts(ctx context.Context) ([]*models.Category, error)
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) (bool, error)
}

// ArticleLikeRepository defines the interface for article like records
type ArticleLikeRepository interface {
	Find(ctx context.Context, articleID, likerID int64) (*models.ArticleLikeRecord, error)
	Insert(ctx context.Context, record *models.ArticleLikeRecord) (bool, error)
	DeleteByArticleID(ctx context.Context, articleID int64) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.ArticleLikeRecord, error)
	Count(ctx context.Context) (int, error)
	CountUnread(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id int64) (bool, error)
}

// CommentLikeRepository defines the interface for comment like records
type CommentLikeRepository interface {
	Find(ctx context.Context, articleID, commentID, likerID int64) (*models.CommentLikeRecord, error)
	Insert(ctx context.Context, record *models.CommentLikeRecord) (bool, error)
	DeleteByArticleID(ctx context.Context, articleID int64) (int64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User        UserRepository
	Article     ArticleRepository
	Category    CategoryRepository
	ArticleLike ArticleLikeRepository
	CommentLike CommentLikeRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepo(db),
		Article:     NewArticleRepo(db),
		Category:    NewCategoryRepo(db),
		ArticleLike: NewArticleLikeRepo(db),
		CommentLike: NewCommentLikeRepo(db),
	}
}
