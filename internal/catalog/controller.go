package catalog

import (
	"errors"
	"net/http"

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

// ListShows handles GET /api/v1/shows
func (c *Controller) ListShows(ctx *gin.Context) {
	var query ShowListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	shows, err := c.service.ListShows(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list shows", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Shows retrieved successfully", shows, nil)
}

// GetShow handles GET /api/v1/shows/:id
func (c *Controller) GetShow(ctx *gin.Context) {
	showID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid show ID", nil, nil)
		return
	}

	show, err := c.service.GetShow(ctx.Request.Context(), showID)
	if err != nil {
		if errors.Is(err, ErrShowNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Show not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get show", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Show retrieved successfully", show, nil)
}
