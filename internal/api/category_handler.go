package api

import (
	"strconv"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category listing and maintenance
type CategoryHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(services *service.Services, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		services: services,
		log:      log.With().Str("handler", "category").Logger(),
	}
}

// FindCategoriesName handles GET /findCategoriesName
func (h *CategoryHandler) FindCategoriesName(c *gin.Context) {
	names, err := h.services.Category.FindCategoriesName(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, names)
}

// GetArticleCategories handles GET /getArticleCategories
func (h *CategoryHandler) GetArticleCategories(c *gin.Context) {
	categories, err := h.services.Category.FindAllCategories(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, gin.H{"result": categories})
}

// UpdateCategory handles POST /updateCategory with categoryName and type (1 add, 2 delete)
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	op, err := strconv.Atoi(formValue(c, "type"))
	if err != nil {
		badRequest(c, models.CodeInvalidParameter, "type must be 1 (add) or 2 (delete)")
		return
	}

	name := formValue(c, "categoryName")
	if err := h.services.Category.UpdateCategory(c.Request.Context(), name, models.CategoryOp(op)); err != nil {
		fail(c, h.log, err)
		return
	}
	ok(c, nil)
}
