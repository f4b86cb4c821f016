package service

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/blog-api/internal/cache"
	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/rs/zerolog"
)

// UserService resolves callers and decides admin privilege
type UserService interface {
	FindIDByUsername(ctx context.Context, username string) (int64, error)
	FindUsernameByID(ctx context.Context, id int64) (string, error)
	FindPhoneByUsername(ctx context.Context, username string) (string, error)
	IsSuperAdmin(phone string) bool
	Resolve(ctx context.Context, username string) (*models.Identity, error)
}

// CategoryService manages article categories
type CategoryService interface {
	FindCategoriesName(ctx context.Context) ([]string, error)
	FindAllCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, name string, op models.CategoryOp) error
}

// ArticleService publishes and deletes articles
type ArticleService interface {
	InsertArticle(ctx context.Context, article *models.Article) (*models.PublishResult, error)
	DeleteArticle(ctx context.Context, id int64) error
	FindArticleTitleByID(ctx context.Context, id int64) (string, error)
}

// ArticleLikeService records article likes and lists them as notifications
type ArticleLikeService interface {
	IsLiked(ctx context.Context, articleID int64, username string) (bool, error)
	Insert(ctx context.Context, record *models.ArticleLikeRecord) (bool, error)
	DeleteByArticleID(ctx context.Context, articleID int64) error
	GetArticleThumbsUp(ctx context.Context, rows, pageNum int) (*models.ThumbsUpPage, error)
	MarkRead(ctx context.Context, id int64) error
	Like(ctx context.Context, articleID int64, who *models.Identity) (*models.LikeResult, error)
}

// CommentLikeService records comment likes
type CommentLikeService interface {
	IsLiked(ctx context.Context, articleID, commentID int64, username string) (bool, error)
	Insert(ctx context.Context, record *models.CommentLikeRecord) (bool, error)
	DeleteByArticleID(ctx context.Context, articleID int64) error
	Like(ctx context.Context, articleID, commentID int64, who *models.Identity) (*models.LikeResult, error)
}

// UploadService stores editor images
type UploadService interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

// ImageStore persists image bytes and returns a public URL
type ImageStore interface {
	SaveImage(ctx context.Context, r io.Reader) (string, error)
}

// Services holds all service interfaces
type Services struct {
	User        UserService
	Category    CategoryService
	Article     ArticleService
	ArticleLike ArticleLikeService
	CommentLike CommentLikeService
	Upload      UploadService
}

// NewServices creates all services
func NewServices(
	repos *repository.Repositories,
	categoryCache cache.CategoryCache,
	images ImageStore,
	cfg *config.Config,
	log zerolog.Logger,
) *Services {
	userSvc := newUserService(repos.User, cfg.Auth.IsAdminPhone, log)
	categorySvc := newCategoryService(repos.Category, categoryCache, log)
	articleLikeSvc := newArticleLikeService(repos.ArticleLike, repos.Article, repos.User, userSvc, log)
	commentLikeSvc := newCommentLikeService(repos.CommentLike, repos.Article, userSvc, log)
	articleSvc := newArticleService(repos.Article, repos.Category, categoryCache, articleLikeSvc, commentLikeSvc, log)
	uploadSvc := newUploadService(images, cfg.Upload.MaxUploadSize, log)

	return &Services{
		User:        userSvc,
		Category:    categorySvc,
		Article:     articleSvc,
		ArticleLike: articleLikeSvc,
		CommentLike: commentLikeSvc,
		Upload:      uploadSvc,
	}
}
