package controllers

import (
	"TodoGo/models"
	"TodoGo/services"
	"TodoGo/views"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// BoardController 返回服务端计算好的日视图
type BoardController struct {
	tasks *services.TaskService
	now   func() time.Time
}

func NewBoardController(tasks *services.TaskService) *BoardController {
	return &BoardController{tasks: tasks, now: time.Now}
}

// GetBoard GET /board?date=YYYY-MM-DD, date 缺省为今天
func (bc *BoardController) GetBoard(c *gin.Context) {
	today := bc.now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		today = parsed
	}

	tasks, err := bc.tasks.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, views.Derive(tasks, today))
}

// GetSlots GET /slots
func (bc *BoardController) GetSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": models.DueCategories,
		"slots":      views.TimeSlots,
	})
}
