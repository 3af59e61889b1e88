package routes

import (
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	AuthRoutes(r)
	VehicleRoutes(r)
	FuelEntryRoutes(r)
	ServiceRoutes(r)
	AnalyticsRoutes(r)
	TransferRoutes(r)
	SyncRoutes(r)
	ProfileRoutes(r)

	return r
}
