package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/run-tracker-go/internal/config"
	"github.com/jengzang/run-tracker-go/internal/handler"
	"github.com/jengzang/run-tracker-go/internal/middleware"
)

// SetupRouter wires middleware and routes
func SetupRouter(cfg *config.Config, trackerHandler *handler.TrackerHandler, runHandler *handler.RunHandler, authHandler *handler.AuthHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Run Tracker API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/auth/token", authHandler.IssueToken)

		protected := api.Group("", middleware.Auth(cfg.JWTSecret))
		{
			tracker := protected.Group("/tracker")
			{
				tracker.POST("/start", trackerHandler.Start)
				tracker.POST("/pause", trackerHandler.Pause)
				tracker.POST("/finish", trackerHandler.Finish)
				tracker.GET("/status", trackerHandler.Status)
				// devices report at 1 Hz; leave generous headroom
				tracker.POST("/fix", middleware.RateLimit(300, time.Minute), trackerHandler.Fix)
				tracker.POST("/error", trackerHandler.ReportError)
			}

			runs := protected.Group("/runs")
			{
				runs.GET("", runHandler.GetRuns)
				runs.GET("/:id", runHandler.GetRunByID)
				runs.DELETE("/:id", runHandler.DeleteRun)
			}
		}
	}

	return r
}
