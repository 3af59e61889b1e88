package routes

import (
	"fuel_sense/internal/controllers"
	"fuel_sense/internal/middleware"

	"github.com/gin-gonic/gin"
)

func TransferRoutes(r *gin.Engine) {
	vehicles := r.Group("/vehicles")
	vehicles.Use(middleware.RequireAuth())
	{
		vehicles.GET("/:id/export/csv", controllers.ExportVehicleCSV)
		vehicles.GET("/:id/export/excel", controllers.ExportVehicleExcel)
	}

	transfer := r.Group("/")
	transfer.Use(middleware.RequireAuth())
	{
		transfer.GET("/export/csv", controllers.ExportAllCSV)
		transfer.POST("/import/csv", controllers.ImportCSV)
	}
}
