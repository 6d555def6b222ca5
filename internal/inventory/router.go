package inventory

import (
	"github.com/gin-gonic/gin"
)

// SetupInventoryRoutes configures the public seat map route
func SetupInventoryRoutes(rg *gin.RouterGroup, controller *Controller) {
	shows := rg.Group("/shows")
	{
		shows.GET("/:id/seats", controller.GetSeatMap) // GET /api/v1/shows/:id/seats
	}
}
