package routes

import (
	"fuel_sense/internal/controllers"
	"fuel_sense/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SyncRoutes(r *gin.Engine) {
	sync := r.Group("/sync")
	sync.Use(middleware.RequireAuth())
	{
		sync.POST("/mutations", controllers.EnqueueMutations)
		sync.POST("/drain", controllers.DrainMutations)
	}
}
