package http

import (
	"github.com/gin-gonic/gin"

	"schedsync/internal/adapter/http/handlers"
	"schedsync/internal/adapter/http/middleware"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Schedule   *handlers.ScheduleHandler
	Generation *handlers.GenerationHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		schedules := api.Group("/schedules/:id")
		schedules.GET("", h.Schedule.GetSchedule)
		schedules.POST("/reorder", h.Schedule.Reorder)
		schedules.POST("/tasks", h.Schedule.AddTask)
		schedules.PATCH("/tasks/:taskId", h.Schedule.EditTask)
		schedules.DELETE("/tasks/:taskId", h.Schedule.DeleteTask)
		schedules.GET("/adjustments", h.Schedule.ListAdjustments)

		api.POST("/generate", h.Generation.Generate)
		api.GET("/users/:userId/generation", h.Generation.Status)
	}
}
