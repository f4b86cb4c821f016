package api

import (
	"net/http"

	"github.com/blog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ImageField is the multipart field editor.md posts images under
const ImageField = "editormd-image-file"

// UploadHandler handles editor image uploads.
// Responses use the editor.md shape instead of the usual envelope.
type UploadHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(services *service.Services, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		services: services,
		log:      log.With().Str("handler", "upload").Logger(),
	}
}

type uploadResponse struct {
	Success int    `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadImage handles POST /uploadImage
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if !identity(c).Admin {
		h.reject(c, http.StatusForbidden, "admin privilege required", nil)
		return
	}

	fh, err := c.FormFile(ImageField)
	if err != nil {
		h.reject(c, http.StatusBadRequest, "no file in field "+ImageField, err)
		return
	}

	url, err := h.services.Upload.UploadImage(c.Request.Context(), fh)
	if err != nil {
		svcErr := service.AsError(err)
		status := statusFor(svcErr.Kind)
		msg := svcErr.Message
		if status >= http.StatusInternalServerError {
			msg = "upload failed"
		}
		h.reject(c, status, msg, err)
		return
	}

	c.JSON(http.StatusOK, uploadResponse{Success: 1, Message: "upload succeeded", URL: url})
}

func (h *UploadHandler) reject(c *gin.Context, status int, msg string, err error) {
	h.log.Warn().Err(err).Str("request_id", requestID(c)).Int("status", status).Msg("Image upload failed")
	c.JSON(status, uploadResponse{Success: 0, Message: msg})
}
