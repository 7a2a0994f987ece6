package venues

import (
	"errors"
	"net/http"

	"eventvenue/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateVenue(ctx *gin.Context) {
	var req CreateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	vendorID := ctx.GetString("user_id")
	venue, err := c.service.CreateVenue(ctx.Request.Context(), vendorID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to create venue", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Venue created successfully", venue, nil)
}

func (c *Controller) GetVenue(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Venue ID is required", nil, "missing venue ID")
		return
	}

	venue, err := c.service.GetVenueByID(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrVenueNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get venue", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue retrieved successfully", venue, nil)
}

func (c *Controller) GetVenues(ctx *gin.Context) {
	var filters VenueFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetVenues(ctx.Request.Context(), filters)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get venues", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venues retrieved successfully", result, nil)
}

func (c *Controller) GetMyVenues(ctx *gin.Context) {
	vendorID := ctx.GetString("user_id")

	venues, err := c.service.GetVendorVenues(ctx.Request.Context(), vendorID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get venues", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venues retrieved successfully", venues, nil)
}

func (c *Controller) UpdateVenue(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Venue ID is required", nil, "missing venue ID")
		return
	}

	var req UpdateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	vendorID := ctx.GetString("user_id")
	venue, err := c.service.UpdateVenue(ctx.Request.Context(), id, vendorID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrVenueNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotVenueOwner):
			statusCode = http.StatusForbidden
		case errors.Is(err, ErrLocationLocked):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update venue", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue updated successfully", venue, nil)
}

func (c *Controller) DeleteVenue(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Venue ID is required", nil, "missing venue ID")
		return
	}

	vendorID := ctx.GetString("user_id")
	err := c.service.DeleteVenue(ctx.Request.Context(), id, vendorID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrVenueNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotVenueOwner):
			statusCode = http.StatusForbidden
		case errors.Is(err, ErrVenueHasEvents):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete venue", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue deleted successfully", nil, nil)
}
