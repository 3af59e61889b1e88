package routes

import (
	"fuel_sense/internal/controllers"
	"fuel_sense/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ProfileRoutes(r *gin.Engine) {
	profile := r.Group("/profile")
	profile.Use(middleware.RequireAuth())
	{
		profile.GET("/default-vehicle", controllers.GetDefaultVehicle)
		profile.PUT("/default-vehicle", controllers.SetDefaultVehicle)
	}
}
