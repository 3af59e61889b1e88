package routes

import (
	"fuel_sense/internal/controllers"
	"fuel_sense/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ServiceRoutes(r *gin.Engine) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.RequireAuth())
	{
		vehicles.GET("/:id/services", controllers.ListServiceRecords)
		vehicles.POST("/:id/services", controllers.CreateServiceRecord)
	}

	services := r.Group("/services")
	services.Use(middleware.RequireAuth())
	{
		services.PUT("/:id", controllers.UpdateServiceRecord)
		services.DELETE("/:id", controllers.DeleteServiceRecord)
	}
}
