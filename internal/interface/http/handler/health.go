package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping 健康检查
// @Summary  健康检查
// @Tags     系统
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
