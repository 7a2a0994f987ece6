package bookings

import (
	"errors"
	"net/http"

	"eventvenue/internal/events"
	"eventvenue/internal/shared/utils/response"
	"eventvenue/internal/venues"
	"eventvenue/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) BookSeats(ctx *gin.Context) {
	eventID, ok := parseParamID(ctx, "id", "Invalid event ID")
	if !ok {
		return
	}

	var req BookSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.BookSeats(ctx.Request.Context(), userID, eventID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", bookingErrorStatus(err), "Failed to book seats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed", booking, nil)
}

func (c *Controller) BookTickets(ctx *gin.Context) {
	eventID, ok := parseParamID(ctx, "id", "Invalid event ID")
	if !ok {
		return
	}

	var req BookTicketsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.BookTickets(ctx.Request.Context(), userID, eventID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", bookingErrorStatus(err), "Failed to book tickets", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed", booking, nil)
}

func (c *Controller) BookVenue(ctx *gin.Context) {
	venueID, ok := parseParamID(ctx, "id", "Invalid venue ID")
	if !ok {
		return
	}

	var req BookVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.BookVenue(ctx.Request.Context(), userID, venueID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", bookingErrorStatus(err), "Failed to book venue", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Venue booking confirmed", booking, nil)
}

func (c *Controller) GetVenueBooking(ctx *gin.Context) {
	bookingID, ok := parseParamID(ctx, "id", "Invalid booking ID")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	isAdmin := ctx.GetString("user_role") == "ADMIN"
	booking, err := c.service.GetVenueBooking(ctx.Request.Context(), bookingID, userID, isAdmin)
	if err != nil {
		response.RespondJSON(ctx, "error", bookingErrorStatus(err), "Failed to get venue booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue booking retrieved successfully", booking, nil)
}

func (c *Controller) GetMyVenueBookings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	bookings, err := c.service.GetUserVenueBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get venue bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue bookings retrieved successfully", bookings, nil)
}

func (c *Controller) GetVenueBookings(ctx *gin.Context) {
	venueID, ok := parseParamID(ctx, "id", "Invalid venue ID")
	if !ok {
		return
	}

	vendorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	bookings, err := c.service.GetVenueBookings(ctx.Request.Context(), venueID, vendorID)
	if err != nil {
		response.RespondJSON(ctx, "error", bookingErrorStatus(err), "Failed to get venue bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue bookings retrieved successfully", bookings, nil)
}

func (c *Controller) CancelVenueBooking(ctx *gin.Context) {
	bookingID, ok := parseParamID(ctx, "id", "Invalid booking ID")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	result, err := c.service.CancelVenueBooking(ctx.Request.Context(), bookingID, userID)
	if err != nil {
		response.RespondJSON(ctx, "error", bookingErrorStatus(err), "Failed to cancel venue booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Venue booking cancelled successfully", result, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, ok := parseParamID(ctx, "id", "Invalid booking ID")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	isAdmin := ctx.GetString("user_role") == "ADMIN"
	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID, userID, isAdmin)
	if err != nil {
		response.RespondJSON(ctx, "error", bookingErrorStatus(err), "Failed to get booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) GetMyBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	result, err := c.service.GetUserBookings(ctx.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

func (c *Controller) GetEventBookings(ctx *gin.Context) {
	eventID, ok := parseParamID(ctx, "id", "Invalid event ID")
	if !ok {
		return
	}

	vendorID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	bookings, err := c.service.GetEventBookings(ctx.Request.Context(), eventID, vendorID)
	if err != nil {
		response.RespondJSON(ctx, "error", bookingErrorStatus(err), "Failed to get event bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (c *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, ok := parseParamID(ctx, "id", "Invalid booking ID")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	result, err := c.service.CancelBooking(ctx.Request.Context(), bookingID, userID)
	if err != nil {
		response.RespondJSON(ctx, "error", bookingErrorStatus(err), "Failed to cancel booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", result, nil)
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

func bookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, events.ErrEventNotFound), errors.Is(err, venues.ErrVenueNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotBookingOwner), errors.Is(err, ErrNotEventOwner), errors.Is(err, ErrNotVenueOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, ErrSeatUnavailable),
		errors.Is(err, ErrVenueSlotTaken), errors.Is(err, events.ErrTicketsUnavailable):
		return http.StatusConflict
	case errors.Is(err, ErrEventNotBookable), errors.Is(err, ErrWrongBookingType),
		errors.Is(err, ErrTooManySeats), errors.Is(err, ErrUnknownSeat), errors.Is(err, ErrInvalidPayment),
		errors.Is(err, ErrVenueNotBookable), errors.Is(err, ErrPastCheckIn):
		return http.StatusBadRequest
	case errors.Is(err, wallet.ErrInsufficientPoints):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
