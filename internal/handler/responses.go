package handler

import (
	"quickchat/internal/services"
	"quickchat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, err error) {
	c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error()))
}
