package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gavraq/activity-backend-go/internal/handler"
	"github.com/gavraq/activity-backend-go/internal/middleware"
)

// SetupRouter wires the HTTP surface over the analysis engine
func SetupRouter(analysisHandler *handler.AnalysisHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(120, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Activity Backend API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		analysis := api.Group("/analysis")
		{
			analysis.POST("/daily", analysisHandler.AnalyzeDay)
		}

		locations := api.Group("/locations")
		{
			locations.GET("", analysisHandler.GetLocations)
			locations.GET("/trips", analysisHandler.GetTrips)
		}
	}

	return r
}
