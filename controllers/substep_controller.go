package controllers

import (
	"TodoGo/models"
	"TodoGo/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SubstepController struct {
	tasks *services.TaskService
}

func NewSubstepController(tasks *services.TaskService) *SubstepController {
	return &SubstepController{tasks: tasks}
}

// CreateSubstep POST /tasks/:id/substeps
func (sc *SubstepController) CreateSubstep(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}
	var req models.CreateSubstepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text, err := req.Validate()
	if err != nil {
		respondError(c, err, "Failed to create substep")
		return
	}

	step, err := sc.tasks.AddSubstep(c.Request.Context(), taskID, text)
	if err != nil {
		respondError(c, err, "Failed to create substep")
		return
	}
	c.JSON(http.StatusOK, models.NewSubstepResponse(step))
}

// UpdateSubstep PATCH /substeps/:id
func (sc *SubstepController) UpdateSubstep(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.UpdateSubstepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := sc.tasks.SetSubstepCompleted(c.Request.Context(), id, *req.Completed)
	if err != nil {
		respondError(c, err, "Failed to update substep")
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeleteSubstep DELETE /substeps/:id
func (sc *SubstepController) DeleteSubstep(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := sc.tasks.DeleteSubstep(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete substep")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
