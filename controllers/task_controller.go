package controllers

import (
	"TodoGo/config"
	"TodoGo/models"
	"TodoGo/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	tasks *services.TaskService
}

func NewTaskController(tasks *services.TaskService) *TaskController {
	return &TaskController{tasks: tasks}
}

// ListTasks GET /tasks
func (tc *TaskController) ListTasks(c *gin.Context) {
	tasks, err := tc.tasks.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, models.NewTaskViews(tasks))
}

// CreateTask POST /tasks
func (tc *TaskController) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.Validate()
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}

	task, err := tc.tasks.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}

	config.Logger.Infow("任务创建成功", "taskID", task.ID, "due", task.Due)
	c.JSON(http.StatusOK, models.NewTaskView(task))
}

// UpdateTask PATCH /tasks/:id, 请求体是 {completed} 或 {scheduledTime}
func (tc *TaskController) UpdateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}
	update, err := models.ParseTaskUpdate(body)
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}

	result, err := tc.tasks.Update(c.Request.Context(), id, update)
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteTask DELETE /tasks/:id
func (tc *TaskController) DeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := tc.tasks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete task")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
