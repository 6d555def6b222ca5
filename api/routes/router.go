// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cinetix/internal/catalog"
	"cinetix/internal/inventory"
	"cinetix/internal/notifications"
	"cinetix/internal/payments"
	"cinetix/internal/pricing"
	"cinetix/internal/reservation"
	"cinetix/internal/shared/config"
	"cinetix/internal/shared/database"
	"cinetix/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB

	// Wired during setup; the sweeper needs the reservation service
	reservationService reservation.Service
	eventService       notifications.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Shared infrastructure
	cacheService := r.cacheService()
	pricingEngine := pricing.NewEngine(r.config.Pricing)

	// Catalog
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(catalogRepo, cacheService)
	catalogController := catalog.NewController(catalogService)

	// Inventory
	inventoryRepo := inventory.NewRepository(r.db.GetPostgreSQL())
	inventoryService := inventory.NewService(inventoryRepo, catalogService, pricingEngine, cacheService)
	inventoryController := inventory.NewController(inventoryService)

	// Payments
	paymentsRepo := payments.NewRepository(r.db.GetPostgreSQL())
	gateway := payments.NewMockGateway()

	// Booking lifecycle events
	r.eventService = notifications.NewService(r.config.Kafka)

	// Reservations
	reservationRepo := reservation.NewRepository(r.db.GetPostgreSQL(), inventoryRepo, pricingEngine)
	r.reservationService = reservation.NewService(
		reservationRepo, paymentsRepo, gateway, inventoryService, r.eventService, r.config.Reservation)
	reservationController := reservation.NewController(r.reservationService)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		catalog.SetupCatalogRoutes(api, catalogController)
		inventory.SetupInventoryRoutes(api, inventoryController)
		reservation.SetupReservationRoutes(api, reservationController)
	}
}

// ReservationService exposes the wired reservation service for the sweeper
func (r *Router) ReservationService() reservation.Service {
	return r.reservationService
}

// EventService exposes the wired event publisher for shutdown
func (r *Router) EventService() notifications.Service {
	return r.eventService
}

func (r *Router) cacheService() cache.Service {
	if r.db.Redis == nil {
		return nil
	}
	return cache.NewService(r.db.GetRedisClient())
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinetix-reservations",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinetix-reservations",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
