package routes

import (
	"fuel_sense/internal/controllers"
	"fuel_sense/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AnalyticsRoutes(r *gin.Engine) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.RequireAuth())
	{
		vehicles.GET("/:id/analytics/summary", controllers.GetAnalyticsSummary)
		vehicles.GET("/:id/analytics/prediction", controllers.GetRefuelPrediction)
		vehicles.GET("/:id/analytics/alerts", controllers.GetSpendingAlerts)
		vehicles.GET("/:id/analytics/patterns", controllers.GetUsagePatterns)
	}
}
