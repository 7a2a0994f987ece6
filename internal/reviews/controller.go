package reviews

import (
	"context"
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

func (c *Controller) CreateReview(ctx *gin.Context) {
	eventID, ok := parseParamID(ctx, "id", "Invalid event ID")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	review, err := c.service.CreateReview(ctx.Request.Context(), userID, eventID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", reviewErrorStatus(err), "Failed to create review", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Review submitted for moderation", review, nil)
}

func (c *Controller) CreateVenueReview(ctx *gin.Context) {
	venueID, ok := parseParamID(ctx, "id", "Invalid venue ID")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	review, err := c.service.CreateVenueReview(ctx.Request.Context(), userID, venueID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", reviewErrorStatus(err), "Failed to create review", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Review submitted for moderation", review, nil)
}

func (c *Controller) UpdateReview(ctx *gin.Context) {
	reviewID, ok := parseParamID(ctx, "id", "Invalid review ID")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	review, err := c.service.UpdateReview(ctx.Request.Context(), reviewID, userID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", reviewErrorStatus(err), "Failed to update review", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Review updated and resubmitted for moderation", review, nil)
}

func (c *Controller) DeleteReview(ctx *gin.Context) {
	reviewID, ok := parseParamID(ctx, "id", "Invalid review ID")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteReview(ctx.Request.Context(), reviewID, userID); err != nil {
		response.RespondJSON(ctx, "error", reviewErrorStatus(err), "Failed to delete review", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Review deleted successfully", nil, nil)
}

func (c *Controller) GetEventReviews(ctx *gin.Context) {
	eventID, ok := parseParamID(ctx, "id", "Invalid event ID")
	if !ok {
		return
	}

	var query ReviewListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetEventReviews(ctx.Request.Context(), eventID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get reviews", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reviews retrieved successfully", result, nil)
}

func (c *Controller) GetEventSummary(ctx *gin.Context) {
	eventID, ok := parseParamID(ctx, "id", "Invalid event ID")
	if !ok {
		return
	}

	summary, err := c.service.GetEventSummary(ctx.Request.Context(), eventID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get rating summary", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Rating summary retrieved successfully", summary, nil)
}

func (c *Controller) GetVenueReviews(ctx *gin.Context) {
	venueID, ok := parseParamID(ctx, "id", "Invalid venue ID")
	if !ok {
		return
	}

	var query ReviewListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetVenueReviews(ctx.Request.Context(), venueID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get reviews", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reviews retrieved successfully", result, nil)
}

func (c *Controller) GetVenueSummary(ctx *gin.Context) {
	venueID, ok := parseParamID(ctx, "id", "Invalid venue ID")
	if !ok {
		return
	}

	summary, err := c.service.GetVenueSummary(ctx.Request.Context(), venueID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get rating summary", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Rating summary retrieved successfully", summary, nil)
}

func (c *Controller) GetPendingReviews(ctx *gin.Context) {
	var query ReviewListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetPendingReviews(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get pending reviews", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Pending reviews retrieved successfully", result, nil)
}

func (c *Controller) ApproveReview(ctx *gin.Context) {
	c.moderate(ctx, c.service.ApproveReview, "Review approved")
}

func (c *Controller) RejectReview(ctx *gin.Context) {
	c.moderate(ctx, c.service.RejectReview, "Review rejected")
}

func (c *Controller) moderate(ctx *gin.Context, action func(ctx context.Context, id, adminID uuid.UUID) (*ReviewResponse, error), message string) {
	reviewID, ok := parseParamID(ctx, "id", "Invalid review ID")
	if !ok {
		return
	}

	adminID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	review, err := action(ctx.Request.Context(), reviewID, adminID)
	if err != nil {
		response.RespondJSON(ctx, "error", reviewErrorStatus(err), "Failed to moderate review", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, message, review, nil)
}

func parseParamID(ctx *gin.Context, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, message, nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user context", nil, err.Error())
		return uuid.Nil, false
	}
	return userID, true
}

func reviewErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrReviewNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotReviewOwner), errors.Is(err, ErrNotAttendee):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyReviewed), errors.Is(err, ErrAlreadyModerated):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
