package catalog

import (
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes configures the public show browsing routes
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	shows := rg.Group("/shows")
	{
		shows.GET("", controller.ListShows)    // GET /api/v1/shows
		shows.GET("/:id", controller.GetShow)  // GET /api/v1/shows/:id
	}
}
