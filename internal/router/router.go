package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeo/internal/handler"
	"timeo/internal/middleware"
)

func New(
	projectHandler *handler.ProjectHandler,
	timerHandler *handler.TimerHandler,
	goalHandler *handler.GoalHandler,
	reviewHandler *handler.ReviewHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")

	projects := api.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PATCH("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	timer := api.Group("/timer")
	timer.POST("/start", timerHandler.Start)
	timer.POST("/stop", timerHandler.Stop)
	timer.GET("/running", timerHandler.Running)

	entries := api.Group("/entries")
	entries.GET("", timerHandler.ListEntries)
	entries.GET("/recent", timerHandler.RecentEntries)
	entries.POST("/:id/restart", timerHandler.RestartEntry)
	entries.PATCH("/:id", timerHandler.UpdateEntry)
	entries.DELETE("/:id", timerHandler.DeleteEntry)

	goals := api.Group("/goals")
	goals.GET("", goalHandler.List)
	goals.POST("", goalHandler.Create)
	goals.PATCH("/:id", goalHandler.Update)
	goals.DELETE("/:id", goalHandler.Delete)
	goals.GET("/:id/streaks", goalHandler.Streaks)
	goals.POST("/:id/cleanup", goalHandler.Cleanup)

	review := api.Group("/review")
	review.GET("/today", reviewHandler.Today)

	report := api.Group("/report")
	report.GET("", reviewHandler.Report)
	report.GET("/daily", reviewHandler.Daily)
	report.GET("/range", reviewHandler.Range)

	return engine
}
