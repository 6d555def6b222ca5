package inventory

import (
	"errors"
	"net/http"

	"cinetix/internal/catalog"
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

// GetSeatMap handles GET /api/v1/shows/:id/seats
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	showID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid show ID", nil, nil)
		return
	}

	seatMap, err := c.service.GetSeatMap(ctx.Request.Context(), showID)
	if err != nil {
		if errors.Is(err, catalog.ErrShowNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Show not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get seat map", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}
