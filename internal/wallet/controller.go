package wallet

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

func (c *Controller) GetBalance(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	balance, err := c.service.GetBalance(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get balance", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Balance retrieved successfully", balance, nil)
}

func (c *Controller) GetHistory(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var query HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	history, err := c.service.GetHistory(ctx.Request.Context(), userID, query.Page, query.Limit)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get transaction history", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Transaction history retrieved successfully", history, nil)
}

func (c *Controller) PurchasePoints(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req PurchasePointsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	txn, err := c.service.Purchase(ctx.Request.Context(), userID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidAmount) {
			statusCode = http.StatusBadRequest
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to purchase points", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Points purchased successfully", txn, nil)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(ctx.GetString("user_id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user context", nil, err.Error())
		return uuid.Nil, false
	}
	return userID, true
}
