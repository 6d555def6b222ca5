package reservation

import (
	"errors"
	"net/http"

	"cinetix/internal/shared/constants"
	"cinetix/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateHold handles POST /api/v1/reservations/hold
func (c *Controller) CreateHold(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req CreateHoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateHold(ctx.Request.Context(), userID, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to create hold")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Hold created successfully", booking, nil)
}

// Confirm handles POST /api/v1/reservations/:id/confirm
func (c *Controller) Confirm(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req ConfirmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.Confirm(ctx.Request.Context(), userID, bookingID, req)
	if err != nil {
		c.respondError(ctx, err, "Failed to confirm booking")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking confirmed successfully", booking, nil)
}

// Cancel handles POST /api/v1/reservations/:id/cancel
func (c *Controller) Cancel(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.Cancel(ctx.Request.Context(), userID, bookingID)
	if err != nil {
		c.respondError(ctx, err, "Failed to cancel booking")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

// GetBooking handles GET /api/v1/reservations/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	role, _ := ctx.Get("user_role")
	isAdmin := role == constants.RoleAdmin

	booking, err := c.service.GetBooking(ctx.Request.Context(), userID, isAdmin, bookingID)
	if err != nil {
		c.respondError(ctx, err, "Failed to get booking")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// ListUserBookings handles GET /api/v1/users/reservations
func (c *Controller) ListUserBookings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	bookings, err := c.service.ListUserBookings(ctx.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

// ListShowBookings handles GET /api/v1/shows/:id/reservations (admin)
func (c *Controller) ListShowBookings(ctx *gin.Context) {
	showID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid show ID", nil, nil)
		return
	}

	bookings, err := c.service.ListShowBookings(ctx.Request.Context(), showID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list show bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Show bookings retrieved successfully", bookings, nil)
}

// respondError maps lifecycle errors onto HTTP statuses
func (c *Controller) respondError(ctx *gin.Context, err error, message string) {
	if unavailable, ok := AsSeatsUnavailable(err); ok {
		response.RespondJSON(ctx, "error", http.StatusConflict, "Requested seats are unavailable", nil, map[string]interface{}{
			"seats": unavailable.SeatLabels,
		})
		return
	}

	switch {
	case errors.Is(err, ErrEmptySelection),
		errors.Is(err, ErrDuplicateSeat),
		errors.Is(err, ErrSeatShowMismatch):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, message, nil, err.Error())
	case errors.Is(err, ErrNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "Access denied", nil, nil)
	case errors.Is(err, ErrInvalidTransition):
		response.RespondJSON(ctx, "error", http.StatusConflict, message, nil, err.Error())
	case errors.Is(err, ErrHoldExpired):
		response.RespondJSON(ctx, "error", http.StatusGone, "Hold has expired", nil, nil)
	case errors.Is(err, ErrPaymentFailed):
		response.RespondJSON(ctx, "error", http.StatusPaymentRequired, "Payment failed", nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, message, nil, err.Error())
	}
}

// currentUserID extracts the authenticated user id set by the JWT middleware
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}

	userIDStr, ok := userIDInterface.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Invalid user ID format", nil, nil)
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid user ID", nil, nil)
		return uuid.Nil, false
	}

	return userID, true
}
