package events

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"eventvenue/internal/shared/config"
	"eventvenue/internal/shared/constants"
	"eventvenue/pkg/cache"
	"eventvenue/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrNotEventOwner      = errors.New("event belongs to a different vendor")
	ErrVenueEditLocked    = errors.New("event venue is locked after two changes")
	ErrInvalidTransition  = errors.New("event status does not allow this operation")
	ErrEventHasBookings   = errors.New("event has existing bookings")
	ErrTicketsUnavailable = errors.New("not enough tickets available")
)

// LayoutService is the slice of the seat layout module the publish flow needs.
type LayoutService interface {
	FreezeLayout(ctx context.Context, eventID uuid.UUID) (int, error)
}

// WalletService charges the vendor's per-event seat fee at publish time.
type WalletService interface {
	ChargeFee(ctx context.Context, userID uuid.UUID, points int64, description string) error
}

// RefundProcessor fans out refunds when a vendor reschedules or cancels.
// Implemented by the bookings module and injected at wiring time.
type RefundProcessor interface {
	ProcessVendorReschedule(ctx context.Context, eventID uuid.UUID) error
	ProcessVendorCancellation(ctx context.Context, eventID uuid.UUID) error
}

type Service interface {
	SetLayoutService(layoutService LayoutService)
	SetWalletService(walletService WalletService)
	SetRefundProcessor(refundProcessor RefundProcessor)
	SetCacheService(cacheService cache.Service)

	CreateEvent(ctx context.Context, vendorID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error)
	GetVendorEvents(ctx context.Context, vendorID uuid.UUID) ([]EventResponse, error)
	UpdateEvent(ctx context.Context, id, vendorID uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(ctx context.Context, id, vendorID uuid.UUID) error
	PublishEvent(ctx context.Context, id, vendorID uuid.UUID) (*PublishEventResponse, error)
	RescheduleEvent(ctx context.Context, id, vendorID uuid.UUID, req RescheduleEventRequest) (*EventResponse, error)
	CancelEvent(ctx context.Context, id, vendorID uuid.UUID) (*EventResponse, error)

	// Booking-time helpers, called by the bookings module
	GetEventRecord(ctx context.Context, id uuid.UUID) (*Event, error)
	ReserveTickets(ctx context.Context, eventID uuid.UUID, quantity int) error
	ReleaseTickets(ctx context.Context, eventID uuid.UUID, quantity int) error
}

type service struct {
	repo            Repository
	config          *config.Config
	layoutService   LayoutService
	walletService   WalletService
	refundProcessor RefundProcessor
	cacheService    cache.Service
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{repo: repo, config: cfg}
}

func (s *service) SetLayoutService(layoutService LayoutService)       { s.layoutService = layoutService }
func (s *service) SetWalletService(walletService WalletService)       { s.walletService = walletService }
func (s *service) SetRefundProcessor(refundProcessor RefundProcessor) { s.refundProcessor = refundProcessor }
func (s *service) SetCacheService(cacheService cache.Service)         { s.cacheService = cacheService }

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Set(ctx, key, value, ttl); err != nil {
		logger.GetDefault().Debug("failed to cache events payload:", key, err)
	}
}

func (s *service) invalidateEventCache(ctx context.Context, eventID *uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	patterns := []string{constants.PATTERN_INVALIDATE_EVENT_ALL}
	if eventID != nil {
		patterns = append(patterns, constants.PATTERN_INVALIDATE_EVENT_DETAIL+eventID.String()+"*")
	}
	for _, pattern := range patterns {
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			logger.GetDefault().Debug("failed to invalidate event cache:", pattern, err)
		}
	}
}

func (s *service) CreateEvent(ctx context.Context, vendorID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	if req.StartTime.Before(time.Now()) {
		return nil, errors.New("event start time must be in the future")
	}
	if !req.EndTime.IsZero() && !req.EndTime.After(req.StartTime) {
		return nil, errors.New("event end time must be after the start time")
	}

	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID: %w", err)
	}

	bookingType := BookingType(req.BookingType)
	if bookingType == BookingTypeQuantity && req.TotalTickets <= 0 {
		return nil, errors.New("quantity events require total_tickets")
	}

	event := &Event{
		ID:          uuid.New(),
		VendorID:    vendorID,
		VenueID:     venueID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      EventStatusDraft,
		BookingType: bookingType,
		ImageURL:    req.ImageURL,
	}
	if bookingType == BookingTypeQuantity {
		event.TicketPrice = req.TicketPrice
		event.TotalTickets = req.TotalTickets
		event.TicketsAvailable = req.TotalTickets
	}

	if err := s.repo.Create(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	s.invalidateEventCache(ctx, nil)

	response := event.ToResponse()
	return &response, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	cacheKey := constants.BuildEventDetailKey(id.String())
	var cached EventResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	response := event.ToResponse()
	s.setCache(ctx, cacheKey, response, constants.TTL_EVENT_DETAIL)
	return &response, nil
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	cacheKey := fmt.Sprintf("%s:page:%d:limit:%d:status:%s:category:%s:city:%s:type:%s:search:%s",
		constants.CACHE_KEY_EVENTS_LIST, query.Page, query.Limit,
		query.Status, query.Category, query.City, query.BookingType, query.Search)

	var cached PaginatedEvents
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	eventRows, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	responses := make([]EventResponse, len(eventRows))
	for i, event := range eventRows {
		responses[i] = event.ToResponse()
	}

	result := &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}

	s.setCache(ctx, cacheKey, result, constants.TTL_EVENT_LIST)
	return result, nil
}

func (s *service) GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	cacheKey := fmt.Sprintf("%s:limit:%d", constants.CACHE_KEY_EVENTS_UPCOMING, limit)
	var cached []EventResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	eventRows, err := s.repo.GetUpcomingEvents(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming events: %w", err)
	}

	responses := make([]EventResponse, len(eventRows))
	for i, event := range eventRows {
		responses[i] = event.ToResponse()
	}

	s.setCache(ctx, cacheKey, responses, constants.TTL_EVENT_UPCOMING)
	return responses, nil
}

func (s *service) GetVendorEvents(ctx context.Context, vendorID uuid.UUID) ([]EventResponse, error) {
	eventRows, err := s.repo.GetByVendorID(vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor events: %w", err)
	}

	responses := make([]EventResponse, len(eventRows))
	for i, event := range eventRows {
		responses[i] = event.ToResponse()
	}
	return responses, nil
}

func (s *service) UpdateEvent(ctx context.Context, id, vendorID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.getOwnedEvent(id, vendorID)
	if err != nil {
		return nil, err
	}
	if !event.Status.CanBeUpdated() {
		return nil, fmt.Errorf("%w: status %s", ErrInvalidTransition, event.Status)
	}

	updates := make(map[string]interface{})

	if req.VenueID != nil {
		newVenueID, err := uuid.Parse(*req.VenueID)
		if err != nil {
			return nil, fmt.Errorf("invalid venue ID: %w", err)
		}
		if newVenueID != event.VenueID {
			if event.IsVenueEditLocked {
				return nil, ErrVenueEditLocked
			}
			event.RecordVenueEdit()
			updates["venue_id"] = newVenueID
			updates["venue_edit_count"] = event.VenueEditCount
			updates["is_venue_edit_locked"] = event.IsVenueEditLocked
		}
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.StartTime != nil {
		if req.StartTime.Before(time.Now()) {
			return nil, errors.New("event start time must be in the future")
		}
		updates["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		updates["end_time"] = *req.EndTime
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if event.BookingType == BookingTypeQuantity {
		if req.TicketPrice != nil {
			updates["ticket_price"] = *req.TicketPrice
		}
		if req.TotalTickets != nil {
			sold := event.TotalTickets - event.TicketsAvailable
			if *req.TotalTickets < sold {
				return nil, fmt.Errorf("total_tickets cannot drop below %d already sold", sold)
			}
			updates["total_tickets"] = *req.TotalTickets
			updates["tickets_available"] = *req.TotalTickets - sold
		}
	}

	if len(updates) == 0 {
		response := event.ToResponse()
		return &response, nil
	}
	updates["updated_at"] = time.Now()

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.invalidateEventCache(ctx, &id)

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteEvent(ctx context.Context, id, vendorID uuid.UUID) error {
	event, err := s.getOwnedEvent(id, vendorID)
	if err != nil {
		return err
	}
	if !event.Status.CanBeDeleted() {
		return fmt.Errorf("%w: only draft events can be deleted", ErrInvalidTransition)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.invalidateEventCache(ctx, &id)
	return nil
}

// PublishEvent moves a draft live. SEAT_SELECTION events get their compiled
// seat inventory frozen and the vendor is charged the per-event seat fee.
func (s *service) PublishEvent(ctx context.Context, id, vendorID uuid.UUID) (*PublishEventResponse, error) {
	event, err := s.getOwnedEvent(id, vendorID)
	if err != nil {
		return nil, err
	}
	if event.Status != EventStatusDraft {
		return nil, fmt.Errorf("%w: only draft events can be published", ErrInvalidTransition)
	}
	if event.StartTime.Before(time.Now()) {
		return nil, errors.New("cannot publish an event that has already started")
	}

	result := &PublishEventResponse{}

	if event.BookingType == BookingTypeSeatSelection {
		if s.layoutService == nil {
			return nil, errors.New("layout service not available")
		}
		seats, err := s.layoutService.FreezeLayout(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to freeze seat layout: %w", err)
		}
		result.SeatsFrozen = seats

		if s.walletService != nil {
			fee := s.config.Points.SeatEventFee
			if err := s.walletService.ChargeFee(ctx, vendorID, fee, "Seat selection event fee: "+event.Name); err != nil {
				return nil, fmt.Errorf("failed to charge seat event fee: %w", err)
			}
			result.SeatFeePoints = fee
		}
	} else if event.TicketsAvailable <= 0 {
		return nil, errors.New("cannot publish a quantity event with no tickets")
	}

	updated, err := s.repo.Update(id, map[string]interface{}{
		"status":     EventStatusPublished,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	s.invalidateEventCache(ctx, &id)
	logger.GetDefault().Info("Event published:", id.String(), "type:", string(event.BookingType))

	result.Event = updated.ToResponse()
	return result, nil
}

// RescheduleEvent moves a published event to a new time. Existing bookings
// stay valid; cancellations after this refund at the reschedule rate.
func (s *service) RescheduleEvent(ctx context.Context, id, vendorID uuid.UUID, req RescheduleEventRequest) (*EventResponse, error) {
	event, err := s.getOwnedEvent(id, vendorID)
	if err != nil {
		return nil, err
	}
	if event.Status != EventStatusPublished {
		return nil, fmt.Errorf("%w: only published events can be rescheduled", ErrInvalidTransition)
	}
	if req.StartTime.Before(time.Now()) {
		return nil, errors.New("new start time must be in the future")
	}

	updates := map[string]interface{}{
		"start_time":      req.StartTime,
		"was_rescheduled": true,
		"updated_at":      time.Now(),
	}
	if !req.EndTime.IsZero() {
		updates["end_time"] = req.EndTime
	}

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to reschedule event: %w", err)
	}

	if s.refundProcessor != nil {
		if err := s.refundProcessor.ProcessVendorReschedule(ctx, id); err != nil {
			logger.GetDefault().Error("failed to flag bookings after reschedule:", id.String(), err)
		}
	}

	s.invalidateEventCache(ctx, &id)
	logger.GetDefault().Info("Event rescheduled:", id.String(), "new start:", req.StartTime.String())

	response := updated.ToResponse()
	return &response, nil
}

// CancelEvent cancels a published event and refunds every active booking in
// full, in points.
func (s *service) CancelEvent(ctx context.Context, id, vendorID uuid.UUID) (*EventResponse, error) {
	event, err := s.getOwnedEvent(id, vendorID)
	if err != nil {
		return nil, err
	}
	if event.Status != EventStatusPublished {
		return nil, fmt.Errorf("%w: only published events can be cancelled", ErrInvalidTransition)
	}

	updated, err := s.repo.Update(id, map[string]interface{}{
		"status":     EventStatusCancelled,
		"updated_at": time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel event: %w", err)
	}

	if s.refundProcessor != nil {
		if err := s.refundProcessor.ProcessVendorCancellation(ctx, id); err != nil {
			logger.GetDefault().Error("failed to refund bookings after cancellation:", id.String(), err)
		}
	}

	s.invalidateEventCache(ctx, &id)
	logger.GetDefault().Info("Event cancelled:", id.String())

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) GetEventRecord(ctx context.Context, id uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *service) ReserveTickets(ctx context.Context, eventID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if err := s.repo.DecrementTickets(eventID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketsUnavailable
		}
		return fmt.Errorf("failed to reserve tickets: %w", err)
	}
	s.invalidateEventCache(ctx, &eventID)
	return nil
}

func (s *service) ReleaseTickets(ctx context.Context, eventID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if err := s.repo.RestoreTickets(eventID, quantity); err != nil {
		return fmt.Errorf("failed to restore tickets: %w", err)
	}
	s.invalidateEventCache(ctx, &eventID)
	return nil
}

func (s *service) getOwnedEvent(id, vendorID uuid.UUID) (*Event, error) {
	event, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event.VendorID != vendorID {
		return nil, ErrNotEventOwner
	}
	return event, nil
}
