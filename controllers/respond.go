package controllers

import (
	"TodoGo/config"
	"TodoGo/models"
	"TodoGo/services"
	"TodoGo/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError 把服务层错误映射成 HTTP 状态, 存储错误只记录日志不对外暴露
func respondError(c *gin.Context, err error, failMsg string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, services.ErrSubstepNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Substep not found"})
	default:
		config.Logger.Errorw(failMsg,
			"error", err,
			"requestID", c.GetString("requestID"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
	}
}

// pathID 读取路径参数 id, 失败时已写入 400 响应
func pathID(c *gin.Context) (uint, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}
	return id, true
}
