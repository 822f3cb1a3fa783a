package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)

	var body *internal.AppError
	switch status {
	case 400:
		body = response.BadRequest(msg)
	case 401:
		body = response.Unauthorized(msg)
	case 403:
		body = response.Forbidden(msg)
	case 404:
		body = response.NotFound(msg)
	case 409:
		body = response.Conflict(msg)
	case 500:
		body = response.InternalError(msg)
	default:
		body = internal.NewAppError(status, msg)
	}
	c.JSON(status, body)
}
