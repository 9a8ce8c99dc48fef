package apierr

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Respond writes err as a JSON error body. Unexpected errors are logged with the request context.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	status := HTTPStatus(err)
	if status >= 500 && log != nil {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
	}
	c.JSON(status, BodyFrom(err))
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(400, Body(CodeInvalidArgument, msg))
}
