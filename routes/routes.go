package routes

import (
	"TodoGo/config"
	"TodoGo/controllers"
	"TodoGo/middleware"
	"TodoGo/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, conf config.Config, taskService *services.TaskService) {
	taskController := controllers.NewTaskController(taskService)
	substepController := controllers.NewSubstepController(taskService)
	boardController := controllers.NewBoardController(taskService)

	api := r.Group(conf.APIPrefix)
	if conf.JWTSecret != "" {
		api.Use(middleware.AuthMiddleware(conf.JWTSecret))
	}
	{
		api.GET("/tasks", taskController.ListTasks)
		api.POST("/tasks", taskController.CreateTask)
		api.PATCH("/tasks/:id", taskController.UpdateTask)
		api.DELETE("/tasks/:id", taskController.DeleteTask)

		api.POST("/tasks/:id/substeps", substepController.CreateSubstep)
		api.PATCH("/substeps/:id", substepController.UpdateSubstep)
		api.DELETE("/substeps/:id", substepController.DeleteSubstep)

		api.GET("/board", boardController.GetBoard)
		api.GET("/slots", boardController.GetSlots)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}

// NewRouter 创建带中间件和路由的 Gin 引擎
func NewRouter(conf config.Config, taskService *services.TaskService) *gin.Engine {
	if conf.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	middleware.SetupMiddleware(r, conf)
	RegisterRoutes(r, conf, taskService)
	return r
}
