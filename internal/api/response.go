package api

import (
	"net/http"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Code    models.Code `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, code models.Code, msg string, data interface{}) {
	if msg == "" {
		msg = code.Message()
	}
	c.JSON(status, Response{Code: code, Message: msg, Data: data})
}

func ok(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, models.CodeSuccess, "", data)
}

func badRequest(c *gin.Context, code models.Code, msg string) {
	respond(c, http.StatusBadRequest, code, msg, nil)
}

// fail writes a service error. Internal causes are logged and never returned.
func fail(c *gin.Context, log zerolog.Logger, err error) {
	svcErr := service.AsError(err)
	status := statusFor(svcErr.Kind)

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", requestID(c)).Msg("Request failed")
		respond(c, status, models.CodeServerException, "", nil)
		return
	}
	respond(c, status, svcErr.Code, svcErr.Message, svcErr.Details)
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindInvalid:
		return http.StatusBadRequest
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
