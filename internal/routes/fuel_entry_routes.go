package routes

import (
	"fuel_sense/internal/controllers"
	"fuel_sense/internal/middleware"

	"github.com/gin-gonic/gin"
)

func FuelEntryRoutes(r *gin.Engine) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.RequireAuth())
	{
		vehicles.GET("/:id/entries", controllers.ListFuelEntries)
		vehicles.POST("/:id/entries", controllers.CreateFuelEntry)
	}

	entries := r.Group("/entries")
	entries.Use(middleware.RequireAuth())
	{
		entries.PUT("/:id", controllers.UpdateFuelEntry)
		entries.DELETE("/:id", controllers.DeleteFuelEntry)
	}
}
