package layout

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

// SEAT LAYOUT VIEWS

func (c *Controller) GetSeatLayout(ctx *gin.Context) {
	eventID := ctx.Param("id")
	if eventID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	layout, err := c.service.GetSeatLayout(ctx.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(ctx, "error", compileErrorStatus(err), "Failed to get seat layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat layout retrieved successfully", layout, nil)
}

func (c *Controller) PreviewLayout(ctx *gin.Context) {
	var req PreviewLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	layout, err := c.service.PreviewLayout(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", compileErrorStatus(err), "Failed to compile layout", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout compiled successfully", layout, nil)
}

func (c *Controller) ReconcileSelection(ctx *gin.Context) {
	eventID := ctx.Param("id")
	if eventID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	var req ReconcileSelectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.ReconcileSelection(ctx.Request.Context(), eventID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to reconcile selection", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Selection reconciled successfully", result, nil)
}

// VENDOR CONFIGURATION

func (c *Controller) ReplaceCategories(ctx *gin.Context) {
	eventID := ctx.Param("id")
	if eventID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Event ID is required", nil, "missing event ID")
		return
	}

	vendorID := ctx.GetString("user_id")
	if vendorID == "" {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, "missing user context")
		return
	}

	var req ReplaceCategoriesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	layout, err := c.service.ReplaceCategories(ctx.Request.Context(), eventID, vendorID, req)
	if err != nil {
		statusCode := compileErrorStatus(err)
		switch {
		case errors.Is(err, ErrEventNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrNotEventOwner):
			statusCode = http.StatusForbidden
		case errors.Is(err, ErrLayoutFrozen):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update seat categories", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat categories updated successfully", layout, nil)
}

// compileErrorStatus maps compiler errors to HTTP codes: malformed input is
// 400, a row conflict is 409, anything else is 500.
func compileErrorStatus(err error) int {
	var validationErr *ValidationError
	var conflictErr *ConflictError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
