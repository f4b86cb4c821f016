package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LikeHandler handles article and comment likes
type LikeHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(services *service.Services, log zerolog.Logger) *LikeHandler {
	return &LikeHandler{
		services: services,
		log:      log.With().Str("handler", "like").Logger(),
	}
}

// ArticleThumbsUp handles POST /articleThumbsUp?articleId=
func (h *LikeHandler) ArticleThumbsUp(c *gin.Context) {
	articleID, valid := requiredInt(c, "articleId")
	if !valid {
		return
	}

	res, err := h.services.ArticleLike.Like(c.Request.Context(), articleID, identity(c))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	writeLikeResult(c, res)
}

// CommentThumbsUp handles POST /commentThumbsUp?articleId=&commentId=
func (h *LikeHandler) CommentThumbsUp(c *gin.Context) {
	articleID, valid := requiredInt(c, "articleId")
	if !valid {
		return
	}
	commentID, valid := requiredInt(c, "commentId")
	if !valid {
		return
	}

	res, err := h.services.CommentLike.Like(c.Request.Context(), articleID, commentID, identity(c))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	writeLikeResult(c, res)
}

// GetArticleThumbsUp handles GET /getArticleThumbsUp?rows=&pageNum=
func (h *LikeHandler) GetArticleThumbsUp(c *gin.Context) {
	rows, valid := optionalInt(c, "rows")
	if !valid {
		return
	}
	pageNum, valid := optionalInt(c, "pageNum")
	if !valid {
		return
	}

	page, err := h.services.ArticleLike.GetArticleThumbsUp(c.Request.Context(), rows, pageNum)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, page)
}

// ReadThisThumbsUp handles POST /readThisThumbsUp?id=
func (h *LikeHandler) ReadThisThumbsUp(c *gin.Context) {
	id, valid := requiredInt(c, "id")
	if !valid {
		return
	}
	if err := h.services.ArticleLike.MarkRead(c.Request.Context(), id); err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, nil)
}

// A repeated like is not an error; the client gets a distinct code and the flag.
func writeLikeResult(c *gin.Context, res *models.LikeResult) {
	if res.AlreadyLiked {
		respond(c, http.StatusOK, models.CodeArticleHasThumbsUp, "", res)
		return
	}
	ok(c, res)
}

func requiredInt(c *gin.Context, key string) (int64, bool) {
	raw := strings.TrimSpace(formValue(c, key))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		badRequest(c, models.CodeInvalidParameter, key+" must be an integer")
		return 0, false
	}
	return v, true
}

func optionalInt(c *gin.Context, key string) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, models.CodeInvalidParameter, key+" must be an integer")
		return 0, false
	}
	return v, true
}
