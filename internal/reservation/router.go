package reservation

import (
	"cinetix/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupReservationRoutes configures all reservation lifecycle routes
func SetupReservationRoutes(rg *gin.RouterGroup, controller *Controller) {
	reservations := rg.Group("/reservations")
	reservations.Use(middleware.JWTAuth())
	{
		reservations.POST("/hold", controller.CreateHold)       // POST /api/v1/reservations/hold
		reservations.POST("/:id/confirm", controller.Confirm)   // POST /api/v1/reservations/:id/confirm
		reservations.POST("/:id/cancel", controller.Cancel)     // POST /api/v1/reservations/:id/cancel
		reservations.GET("/:id", controller.GetBooking)         // GET /api/v1/reservations/:id
	}

	// User-specific booking routes
	users := rg.Group("/users")
	users.Use(middleware.JWTAuth())
	{
		users.GET("/reservations", controller.ListUserBookings) // GET /api/v1/users/reservations
	}

	// Admin listing of a show's bookings
	shows := rg.Group("/shows")
	shows.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		shows.GET("/:id/reservations", controller.ListShowBookings) // GET /api/v1/shows/:id/reservations
	}
}
