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

// ArticleHandler handles publishing and deleting articles
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// PublishArticle handles POST /publishArticle.
// An absent or zero id creates a new article; any other id updates it.
func (h *ArticleHandler) PublishArticle(c *gin.Context) {
	who := identity(c)
	if !who.Admin {
		h.log.Warn().Str("username", who.Username).Msg("Publish rejected for non-admin")
		respond(c, http.StatusForbidden, models.CodePublishArticleNoPermission, "", nil)
		return
	}

	id, err := parseOptionalID(formValue(c, "id"))
	if err != nil {
		badRequest(c, models.CodeInvalidParameter, "id must be a non-negative integer")
		return
	}

	var form models.ArticleForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, models.CodeInvalidParameter, err.Error())
		return
	}

	article := form.ToArticle()
	article.ID = id
	article.Author = who.Username

	result, err := h.services.Article.InsertArticle(c.Request.Context(), article)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, result)
}

// CanYouWrite handles GET /canYouWrite
func (h *ArticleHandler) CanYouWrite(c *gin.Context) {
	if identity(c).Admin {
		ok(c, nil)
		return
	}
	respond(c, http.StatusOK, models.CodeFail, "", nil)
}

// DeleteArticle handles GET /deleteArticle?id=
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("id"))
	if raw == "" {
		badRequest(c, models.CodeDeleteArticleFail, "id is required")
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		badRequest(c, models.CodeInvalidParameter, "id must be an integer")
		return
	}

	if err := h.services.Article.DeleteArticle(c.Request.Context(), id); err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, nil)
}

// formValue reads a field from the query string or the form body
func formValue(c *gin.Context, key string) string {
	if v, found := c.GetQuery(key); found {
		return v
	}
	return c.PostForm(key)
}

// parseOptionalID treats a blank value as 0
func parseOptionalID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
