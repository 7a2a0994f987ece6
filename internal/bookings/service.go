package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"eventvenue/internal/events"
	"eventvenue/internal/layout"
	"eventvenue/internal/shared/config"
	"eventvenue/internal/venues"
	"eventvenue/internal/wallet"
	"eventvenue/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("booking belongs to a different user")
	ErrNotEventOwner    = errors.New("event belongs to a different vendor")
	ErrNotVenueOwner    = errors.New("venue belongs to a different vendor")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrEventNotBookable = errors.New("event is not open for booking")
	ErrWrongBookingType = errors.New("booking type does not match the event")
	ErrTooManySeats     = errors.New("seat count exceeds the per-booking limit")
	ErrUnknownSeat      = errors.New("seat does not exist in the event layout")
	ErrSeatUnavailable  = errors.New("seat is no longer available")
	ErrInvalidPayment   = errors.New("points and payment do not cover the booking total")

	ErrVenueNotBookable = errors.New("venue is not open for booking")
	ErrVenueSlotTaken   = errors.New("venue is already booked for that time")
	ErrPastCheckIn      = errors.New("check-in must be in the future")
)

// NotificationService is the narrow surface the booking path needs. Delivery
// is fire-and-forget; a notification failure never fails a booking.
type NotificationService interface {
	BookingConfirmed(ctx context.Context, booking *Booking, eventName string)
	BookingCancelled(ctx context.Context, booking *Booking, eventName string, refundPoints int64)
	EventRescheduled(ctx context.Context, booking *Booking, eventName string, newStart time.Time)
	EventCancelled(ctx context.Context, booking *Booking, eventName string, refundPoints int64)
	VenueBookingConfirmed(ctx context.Context, booking *VenueBooking, venueName string)
	VenueBookingCancelled(ctx context.Context, booking *VenueBooking, venueName string, refundPoints int64)
}

// EventService is the slice of the events module the booking path uses.
type EventService interface {
	GetEventRecord(ctx context.Context, id uuid.UUID) (*events.Event, error)
	ReserveTickets(ctx context.Context, eventID uuid.UUID, quantity int) error
	ReleaseTickets(ctx context.Context, eventID uuid.UUID, quantity int) error
}

// LayoutService is the slice of the layout module the booking path uses.
type LayoutService interface {
	CompiledInventory(ctx context.Context, eventID uuid.UUID) ([]layout.CompiledSeat, error)
	BookedSeatIDs(ctx context.Context, eventID uuid.UUID) (map[string]bool, error)
	ClaimSeats(ctx context.Context, eventID string, seatIDs []string, userID string) error
	ReleaseClaims(ctx context.Context, eventID string, seatIDs []string) error
	MarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error
	UnmarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error
}

// VenueService is the slice of the venues module the booking path uses.
type VenueService interface {
	GetVenueRecord(ctx context.Context, id uuid.UUID) (*venues.Venue, error)
}

// WalletService is the slice of the wallet module the booking path uses.
type WalletService interface {
	Deduct(ctx context.Context, userID uuid.UUID, points int64, description, referenceID string) (*wallet.PointTransaction, error)
	CreditVendor(ctx context.Context, vendorID uuid.UUID, points int64, description, referenceID string) (*wallet.PointTransaction, error)
	Refund(ctx context.Context, userID uuid.UUID, points int64, description, referenceID string) (*wallet.PointTransaction, error)
	ClawbackVendor(ctx context.Context, vendorID uuid.UUID, points int64, description, referenceID string) (*wallet.PointTransaction, error)
	PointsForAmount(amount float64) int64
	PlatformFee() int64
}

type Service interface {
	BookSeats(ctx context.Context, userID, eventID uuid.UUID, req BookSeatsRequest) (*BookingResponse, error)
	BookTickets(ctx context.Context, userID, eventID uuid.UUID, req BookTicketsRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error)
	GetEventBookings(ctx context.Context, eventID, vendorID uuid.UUID) ([]BookingResponse, error)
	CancelBooking(ctx context.Context, id, userID uuid.UUID) (*CancellationResponse, error)

	BookVenue(ctx context.Context, userID, venueID uuid.UUID, req BookVenueRequest) (*VenueBookingResponse, error)
	GetVenueBooking(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*VenueBookingResponse, error)
	GetUserVenueBookings(ctx context.Context, userID uuid.UUID) ([]VenueBookingResponse, error)
	GetVenueBookings(ctx context.Context, venueID, vendorID uuid.UUID) ([]VenueBookingResponse, error)
	CancelVenueBooking(ctx context.Context, id, userID uuid.UUID) (*CancellationResponse, error)

	// Vendor-side lifecycle hooks, called by the events module
	ProcessVendorReschedule(ctx context.Context, eventID uuid.UUID) error
	ProcessVendorCancellation(ctx context.Context, eventID uuid.UUID) error

	SetNotificationService(notifications NotificationService)
}

type service struct {
	repo          Repository
	config        *config.Config
	eventService  EventService
	layoutService LayoutService
	walletService WalletService
	venueService  VenueService
	notifications NotificationService
}

func NewService(repo Repository, cfg *config.Config, eventService EventService, layoutService LayoutService, walletService WalletService, venueService VenueService) Service {
	return &service{
		repo:          repo,
		config:        cfg,
		eventService:  eventService,
		layoutService: layoutService,
		walletService: walletService,
		venueService:  venueService,
	}
}

func (s *service) SetNotificationService(notifications NotificationService) {
	s.notifications = notifications
}

// BOOKING SUBMISSION

func (s *service) BookSeats(ctx context.Context, userID, eventID uuid.UUID, req BookSeatsRequest) (*BookingResponse, error) {
	event, err := s.bookableEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.BookingType != events.BookingTypeSeatSelection {
		return nil, ErrWrongBookingType
	}

	seatIDs := dedupeSeatIDs(req.SeatIDs)
	if len(seatIDs) > s.config.Booking.MaxSeatsPerBooking {
		return nil, ErrTooManySeats
	}

	inventory, err := s.layoutService.CompiledInventory(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load seat inventory: %w", err)
	}
	seatsByID := make(map[string]layout.CompiledSeat, len(inventory))
	for _, seat := range inventory {
		seatsByID[seat.ID] = seat
	}
	for _, id := range seatIDs {
		if _, ok := seatsByID[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSeat, id)
		}
	}

	booked, err := s.layoutService.BookedSeatIDs(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to check booked seats: %w", err)
	}
	for _, id := range seatIDs {
		if booked[id] {
			return nil, fmt.Errorf("%w: %s", ErrSeatUnavailable, id)
		}
	}

	// The atomic claim is the single authority for the race window between
	// two concurrent submissions for the same seat.
	if err := s.layoutService.ClaimSeats(ctx, eventID.String(), seatIDs, userID.String()); err != nil {
		var rejected *layout.SelectionRejected
		if errors.As(err, &rejected) {
			return nil, fmt.Errorf("%w: %s", ErrSeatUnavailable, rejected.SeatID)
		}
		return nil, fmt.Errorf("%w: %v", ErrSeatUnavailable, err)
	}

	var totalPrice float64
	bookedSeats := make([]BookedSeat, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat := seatsByID[id]
		totalPrice += seat.Price
		bookedSeats = append(bookedSeats, BookedSeat{
			EventID:      eventID,
			SeatID:       seat.ID,
			CategoryName: seat.CategoryName,
			Price:        seat.Price,
		})
	}

	booking, err := s.settleAndCreate(ctx, userID, event, bookingDraft{
		bookingType: string(events.BookingTypeSeatSelection),
		quantity:    len(seatIDs),
		totalPrice:  totalPrice,
		seats:       bookedSeats,
		pointsToUse: req.PointsToUse,
		paypalTxnID: req.PaypalTransactionID,
	})
	if err != nil {
		if releaseErr := s.layoutService.ReleaseClaims(ctx, eventID.String(), seatIDs); releaseErr != nil {
			logger.GetDefault().Error("failed to release seat claims after failed booking:", releaseErr)
		}
		return nil, err
	}

	if err := s.layoutService.MarkSeatsBooked(ctx, eventID.String(), seatIDs); err != nil {
		logger.GetDefault().Error("failed to mark seats booked in cache:", err)
	}
	if err := s.layoutService.ReleaseClaims(ctx, eventID.String(), seatIDs); err != nil {
		logger.GetDefault().Error("failed to release seat claims:", err)
	}

	s.notifyConfirmed(booking, event.Name)
	return toBookingResponse(booking), nil
}

func (s *service) BookTickets(ctx context.Context, userID, eventID uuid.UUID, req BookTicketsRequest) (*BookingResponse, error) {
	event, err := s.bookableEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.BookingType != events.BookingTypeQuantity {
		return nil, ErrWrongBookingType
	}
	if req.Quantity > s.config.Booking.MaxSeatsPerBooking {
		return nil, ErrTooManySeats
	}

	if err := s.eventService.ReserveTickets(ctx, eventID, req.Quantity); err != nil {
		return nil, err
	}

	booking, err := s.settleAndCreate(ctx, userID, event, bookingDraft{
		bookingType: string(events.BookingTypeQuantity),
		quantity:    req.Quantity,
		totalPrice:  event.TicketPrice * float64(req.Quantity),
		pointsToUse: req.PointsToUse,
		paypalTxnID: req.PaypalTransactionID,
	})
	if err != nil {
		if releaseErr := s.eventService.ReleaseTickets(ctx, eventID, req.Quantity); releaseErr != nil {
			logger.GetDefault().Error("failed to restore tickets after failed booking:", releaseErr)
		}
		return nil, err
	}

	s.notifyConfirmed(booking, event.Name)
	return toBookingResponse(booking), nil
}

type bookingDraft struct {
	bookingType string
	quantity    int
	totalPrice  float64
	seats       []BookedSeat
	pointsToUse int64
	paypalTxnID string
}

// settleAndCreate runs the payment leg shared by both booking types: debit
// the user's wallet, persist the booking, credit the vendor. A failed
// persist refunds the debit so the wallet never drifts from the bookings
// table.
func (s *service) settleAndCreate(ctx context.Context, userID uuid.UUID, event *events.Event, draft bookingDraft) (*Booking, error) {
	totalPoints := s.walletService.PointsForAmount(draft.totalPrice)
	platformFee := s.walletService.PlatformFee()

	if draft.pointsToUse > totalPoints {
		return nil, ErrInvalidPayment
	}
	if draft.pointsToUse < totalPoints && draft.paypalTxnID == "" {
		return nil, ErrInvalidPayment
	}

	bookingRef, err := generateBookingReference()
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}
	transactionID := generateTransactionID()

	debit := draft.pointsToUse + platformFee
	if _, err := s.walletService.Deduct(ctx, userID, debit, "Booking "+bookingRef, transactionID); err != nil {
		return nil, err
	}

	booking := &Booking{
		BookingRef:          bookingRef,
		UserID:              userID,
		VendorID:            event.VendorID,
		EventID:             event.ID,
		BookingType:         draft.bookingType,
		Quantity:            draft.quantity,
		TotalPrice:          draft.totalPrice,
		TotalPoints:         totalPoints,
		PointsUsed:          draft.pointsToUse,
		PlatformFeePoints:   platformFee,
		PaypalTransactionID: draft.paypalTxnID,
		Status:              StatusConfirmed,
		BookedSeats:         draft.seats,
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		if _, refundErr := s.walletService.Refund(ctx, userID, debit, "Reversal for failed booking "+bookingRef, transactionID); refundErr != nil {
			logger.GetDefault().Error("failed to reverse debit after failed booking:", refundErr)
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if _, err := s.walletService.CreditVendor(ctx, event.VendorID, totalPoints, "Earnings for booking "+bookingRef, bookingRef); err != nil {
		logger.GetDefault().Error("failed to credit vendor for booking:", bookingRef, "error:", err)
	}

	return booking, nil
}

// READS

func (s *service) GetBooking(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if !isAdmin && booking.UserID != userID && booking.VendorID != userID {
		return nil, ErrNotBookingOwner
	}
	return toBookingResponse(booking), nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) (*PaginatedBookings, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	bookings, totalCount, err := s.repo.GetUserBookings(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return &PaginatedBookings{
		Bookings:   bookings,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}, nil
}

func (s *service) GetEventBookings(ctx context.Context, eventID, vendorID uuid.UUID) ([]BookingResponse, error) {
	event, err := s.eventService.GetEventRecord(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.VendorID != vendorID {
		return nil, ErrNotEventOwner
	}

	bookings, err := s.repo.GetEventBookings(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event bookings: %w", err)
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *toBookingResponse(&bookings[i]))
	}
	return responses, nil
}

// VENUE BOOKINGS

func (s *service) BookVenue(ctx context.Context, userID, venueID uuid.UUID, req BookVenueRequest) (*VenueBookingResponse, error) {
	venue, err := s.venueService.GetVenueRecord(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if !venue.IsAvailable {
		return nil, ErrVenueNotBookable
	}
	if !req.CheckIn.After(time.Now()) {
		return nil, ErrPastCheckIn
	}
	if !req.CheckOut.After(req.CheckIn) {
		return nil, ErrPastCheckIn
	}

	taken, err := s.repo.HasOverlappingVenueBooking(ctx, venueID, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("failed to check venue availability: %w", err)
	}
	if taken {
		return nil, ErrVenueSlotTaken
	}

	// Partial hours bill as full hours.
	hours := int(math.Ceil(req.CheckOut.Sub(req.CheckIn).Hours()))
	totalPrice := venue.PricePerHour * float64(hours)
	totalPoints := s.walletService.PointsForAmount(totalPrice)
	platformFee := s.walletService.PlatformFee()

	if req.PointsToUse > totalPoints {
		return nil, ErrInvalidPayment
	}
	if req.PointsToUse < totalPoints && req.PaypalTransactionID == "" {
		return nil, ErrInvalidPayment
	}

	bookingRef, err := generateReference("VEN")
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking reference: %w", err)
	}
	transactionID := generateTransactionID()

	debit := req.PointsToUse + platformFee
	if _, err := s.walletService.Deduct(ctx, userID, debit, "Venue booking "+bookingRef, transactionID); err != nil {
		return nil, err
	}

	booking := &VenueBooking{
		BookingRef:          bookingRef,
		UserID:              userID,
		VendorID:            venue.VendorID,
		VenueID:             venueID,
		BookingDate:         req.CheckIn.Truncate(24 * time.Hour),
		CheckIn:             req.CheckIn,
		CheckOut:            req.CheckOut,
		DurationHours:       hours,
		TotalPrice:          totalPrice,
		TotalPoints:         totalPoints,
		PointsUsed:          req.PointsToUse,
		PlatformFeePoints:   platformFee,
		PaypalTransactionID: req.PaypalTransactionID,
		Status:              StatusConfirmed,
	}

	if err := s.repo.CreateVenueBooking(ctx, booking); err != nil {
		if _, refundErr := s.walletService.Refund(ctx, userID, debit, "Reversal for failed venue booking "+bookingRef, transactionID); refundErr != nil {
			logger.GetDefault().Error("failed to reverse debit after failed venue booking:", refundErr)
		}
		return nil, fmt.Errorf("failed to create venue booking: %w", err)
	}

	if _, err := s.walletService.CreditVendor(ctx, venue.VendorID, totalPoints, "Earnings for venue booking "+bookingRef, bookingRef); err != nil {
		logger.GetDefault().Error("failed to credit vendor for venue booking:", bookingRef, "error:", err)
	}

	s.notifyVenueConfirmed(booking, venue.Name)
	return toVenueBookingResponse(booking), nil
}

func (s *service) GetVenueBooking(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*VenueBookingResponse, error) {
	booking, err := s.repo.GetVenueBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get venue booking: %w", err)
	}
	if !isAdmin && booking.UserID != userID && booking.VendorID != userID {
		return nil, ErrNotBookingOwner
	}
	return toVenueBookingResponse(booking), nil
}

func (s *service) GetUserVenueBookings(ctx context.Context, userID uuid.UUID) ([]VenueBookingResponse, error) {
	bookings, err := s.repo.GetUserVenueBookings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue bookings: %w", err)
	}

	responses := make([]VenueBookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *toVenueBookingResponse(&bookings[i]))
	}
	return responses, nil
}

func (s *service) GetVenueBookings(ctx context.Context, venueID, vendorID uuid.UUID) ([]VenueBookingResponse, error) {
	venue, err := s.venueService.GetVenueRecord(ctx, venueID)
	if err != nil {
		return nil, err
	}
	if venue.VendorID != vendorID {
		return nil, ErrNotVenueOwner
	}

	bookings, err := s.repo.GetVenueBookings(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue bookings: %w", err)
	}

	responses := make([]VenueBookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, *toVenueBookingResponse(&bookings[i]))
	}
	return responses, nil
}

func (s *service) CancelVenueBooking(ctx context.Context, id, userID uuid.UUID) (*CancellationResponse, error) {
	booking, err := s.repo.GetVenueBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get venue booking: %w", err)
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if !booking.Status.CanBeCancelled() {
		return nil, ErrAlreadyCancelled
	}

	quote := ComputeVenueRefund(booking, time.Now(), s.config.Booking)

	cancelledAt := time.Now()
	if err := s.repo.UpdateVenueBookingStatus(ctx, booking.ID, StatusCancelled, quote.Rate, quote.Points, &cancelledAt); err != nil {
		return nil, fmt.Errorf("failed to cancel venue booking: %w", err)
	}

	if quote.Points > 0 {
		if _, err := s.walletService.Refund(ctx, booking.UserID, quote.Points, "Refund for venue booking "+booking.BookingRef, booking.BookingRef); err != nil {
			logger.GetDefault().Error("failed to refund venue booking:", booking.BookingRef, "error:", err)
		} else if _, err := s.walletService.ClawbackVendor(ctx, booking.VendorID, quote.Points, "Clawback for venue booking "+booking.BookingRef, booking.BookingRef); err != nil {
			logger.GetDefault().Error("failed to claw back vendor earnings:", booking.BookingRef, "error:", err)
		}
	}

	venueName := ""
	if venue, err := s.venueService.GetVenueRecord(ctx, booking.VenueID); err == nil {
		venueName = venue.Name
	}

	booking.Status = StatusCancelled
	s.notifyVenueCancelled(booking, venueName, quote.Points)

	return &CancellationResponse{
		BookingID:    booking.ID.String(),
		BookingRef:   booking.BookingRef,
		Status:       StatusCancelled.String(),
		RefundReason: quote.Reason,
		RefundRate:   quote.Rate,
		RefundPoints: quote.Points,
		CancelledAt:  cancelledAt,
	}, nil
}

// CANCELLATION AND REFUNDS

func (s *service) CancelBooking(ctx context.Context, id, userID uuid.UUID) (*CancellationResponse, error) {
	booking, err := s.repo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if !booking.Status.CanBeCancelled() {
		return nil, ErrAlreadyCancelled
	}

	event, err := s.eventService.GetEventRecord(ctx, booking.EventID)
	if err != nil {
		return nil, err
	}

	quote := ComputeRefund(booking, event.StartTime, event.WasRescheduled,
		event.Status == events.EventStatusCancelled, time.Now(), s.config.Booking)

	cancelledAt := time.Now()
	if err := s.repo.UpdateBookingStatus(ctx, booking.ID, StatusCancelled, quote.Rate, quote.Points, &cancelledAt); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.settleRefund(ctx, booking, quote)
	s.releaseInventory(ctx, booking)

	booking.Status = StatusCancelled
	s.notifyCancelled(booking, event.Name, quote.Points)

	return &CancellationResponse{
		BookingID:    booking.ID.String(),
		BookingRef:   booking.BookingRef,
		Status:       StatusCancelled.String(),
		RefundReason: quote.Reason,
		RefundRate:   quote.Rate,
		RefundPoints: quote.Points,
		CancelledAt:  cancelledAt,
	}, nil
}

func (s *service) ProcessVendorReschedule(ctx context.Context, eventID uuid.UUID) error {
	event, err := s.eventService.GetEventRecord(ctx, eventID)
	if err != nil {
		return err
	}

	bookings, err := s.repo.GetActiveBookingsForEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get active bookings: %w", err)
	}

	for i := range bookings {
		s.notifyRescheduled(&bookings[i], event.Name, event.StartTime)
	}
	return nil
}

// ProcessVendorCancellation cancels every active booking with a full refund.
// Individual failures are logged and skipped so one bad booking cannot strand
// the rest.
func (s *service) ProcessVendorCancellation(ctx context.Context, eventID uuid.UUID) error {
	event, err := s.eventService.GetEventRecord(ctx, eventID)
	if err != nil {
		return err
	}

	bookings, err := s.repo.GetActiveBookingsForEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get active bookings: %w", err)
	}

	now := time.Now()
	for i := range bookings {
		booking := &bookings[i]
		quote := ComputeRefund(booking, event.StartTime, event.WasRescheduled, true, now, s.config.Booking)

		cancelledAt := now
		if err := s.repo.UpdateBookingStatus(ctx, booking.ID, StatusCancelled, quote.Rate, quote.Points, &cancelledAt); err != nil {
			logger.GetDefault().Error("failed to cancel booking during event cancellation:", booking.BookingRef, "error:", err)
			continue
		}

		s.settleRefund(ctx, booking, quote)
		booking.Status = StatusCancelled
		s.notifyEventCancelled(booking, event.Name, quote.Points)
	}
	return nil
}

// settleRefund credits the user's refund and claws the same amount back from
// the vendor. The clawback is capped at the vendor's balance so the wallet
// never goes negative.
func (s *service) settleRefund(ctx context.Context, booking *Booking, quote RefundQuote) {
	if quote.Points <= 0 {
		return
	}
	if _, err := s.walletService.Refund(ctx, booking.UserID, quote.Points, "Refund for booking "+booking.BookingRef, booking.BookingRef); err != nil {
		logger.GetDefault().Error("failed to refund booking:", booking.BookingRef, "error:", err)
		return
	}
	if _, err := s.walletService.ClawbackVendor(ctx, booking.VendorID, quote.Points, "Clawback for booking "+booking.BookingRef, booking.BookingRef); err != nil {
		logger.GetDefault().Error("failed to claw back vendor earnings:", booking.BookingRef, "error:", err)
	}
}

func (s *service) releaseInventory(ctx context.Context, booking *Booking) {
	if booking.BookingType == string(events.BookingTypeSeatSelection) {
		seatIDs := make([]string, 0, len(booking.BookedSeats))
		for _, seat := range booking.BookedSeats {
			seatIDs = append(seatIDs, seat.SeatID)
		}
		if err := s.layoutService.UnmarkSeatsBooked(ctx, booking.EventID.String(), seatIDs); err != nil {
			logger.GetDefault().Error("failed to release booked seats in cache:", err)
		}
		return
	}
	if err := s.eventService.ReleaseTickets(ctx, booking.EventID, booking.Quantity); err != nil {
		logger.GetDefault().Error("failed to restore tickets after cancellation:", err)
	}
}

// INTERNAL

func (s *service) bookableEvent(ctx context.Context, eventID uuid.UUID) (*events.Event, error) {
	event, err := s.eventService.GetEventRecord(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.Status.CanBeBooked() || time.Now().After(event.StartTime) {
		return nil, ErrEventNotBookable
	}
	return event, nil
}

func (s *service) notifyConfirmed(booking *Booking, eventName string) {
	if s.notifications == nil {
		return
	}
	go s.notifications.BookingConfirmed(context.Background(), booking, eventName)
}

func (s *service) notifyCancelled(booking *Booking, eventName string, refundPoints int64) {
	if s.notifications == nil {
		return
	}
	go s.notifications.BookingCancelled(context.Background(), booking, eventName, refundPoints)
}

func (s *service) notifyRescheduled(booking *Booking, eventName string, newStart time.Time) {
	if s.notifications == nil {
		return
	}
	go s.notifications.EventRescheduled(context.Background(), booking, eventName, newStart)
}

func (s *service) notifyEventCancelled(booking *Booking, eventName string, refundPoints int64) {
	if s.notifications == nil {
		return
	}
	go s.notifications.EventCancelled(context.Background(), booking, eventName, refundPoints)
}

func (s *service) notifyVenueConfirmed(booking *VenueBooking, venueName string) {
	if s.notifications == nil {
		return
	}
	go s.notifications.VenueBookingConfirmed(context.Background(), booking, venueName)
}

func (s *service) notifyVenueCancelled(booking *VenueBooking, venueName string, refundPoints int64) {
	if s.notifications == nil {
		return
	}
	go s.notifications.VenueBookingCancelled(context.Background(), booking, venueName, refundPoints)
}

func dedupeSeatIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// generateBookingReference generates a unique event booking reference
func generateBookingReference() (string, error) {
	return generateReference("EVT")
}

func generateReference(prefix string) (string, error) {
	timestamp := time.Now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)
	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("%s-%s-%s", prefix, timestamp, string(randomPart)), nil
}

// generateTransactionID generates a wallet transaction reference
func generateTransactionID() string {
	timestamp := time.Now().Unix()
	shortUUID := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("TXN_%d_%s", timestamp, strings.ToUpper(shortUUID))
}
