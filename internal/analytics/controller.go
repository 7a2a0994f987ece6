package analytics

import (
	"errors"
	"net/http"

	"eventvenue/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetVendorAnalytics(ctx *gin.Context) {
	vendorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	result, err := c.service.GetVendorAnalytics(ctx.Request.Context(), vendorID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get vendor analytics", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Vendor analytics retrieved successfully", result, nil)
}

func (c *Controller) GetEventAnalytics(ctx *gin.Context) {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid event ID", nil, err.Error())
		return
	}

	vendorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	isAdmin := ctx.GetString("user_role") == "ADMIN"
	result, err := c.service.GetEventAnalytics(ctx.Request.Context(), eventID, vendorID, isAdmin)
	if err != nil {
		response.RespondJSON(ctx, "error", analyticsErrorStatus(err), "Failed to get event analytics", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Event analytics retrieved successfully", result, nil)
}

func (c *Controller) GetPlatformAnalytics(ctx *gin.Context) {
	result, err := c.service.GetPlatformAnalytics(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get platform analytics", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Platform analytics retrieved successfully", result, nil)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user context", nil, err.Error())
		return uuid.Nil, false
	}
	return userID, true
}

func analyticsErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotEventOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
