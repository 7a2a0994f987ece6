package layout

import (
	"context"
	"errors"
	"fmt"

	"eventvenue/internal/shared/config"
	"eventvenue/internal/shared/constants"
	"eventvenue/pkg/cache"
	"eventvenue/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotEventOwner = errors.New("event belongs to a different vendor")
	ErrLayoutFrozen  = errors.New("seat layout is frozen once the event is published")
	ErrEmptyLayout   = errors.New("layout must have at least one category with at least one row")
)

type Service interface {
	// Seat layout views
	GetSeatLayout(ctx context.Context, eventID string) (*SeatLayoutResponse, error)
	PreviewLayout(ctx context.Context, req PreviewLayoutRequest) (*SeatLayoutResponse, error)
	ReconcileSelection(ctx context.Context, eventID string, req ReconcileSelectionRequest) (*ReconcileSelectionResponse, error)

	// Vendor configuration
	ReplaceCategories(ctx context.Context, eventID, vendorID string, req ReplaceCategoriesRequest) (*SeatLayoutResponse, error)

	// Publish-time freeze, called by the events module
	FreezeLayout(ctx context.Context, eventID uuid.UUID) (int, error)

	// Booking-time helpers, called by the bookings module
	CompiledInventory(ctx context.Context, eventID uuid.UUID) ([]CompiledSeat, error)
	BookedSeatIDs(ctx context.Context, eventID uuid.UUID) (map[string]bool, error)
	ClaimSeats(ctx context.Context, eventID string, seatIDs []string, userID string) error
	ReleaseClaims(ctx context.Context, eventID string, seatIDs []string) error
	MarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error
	UnmarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	config       *config.Config
	cacheService cache.Service
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		config: cfg,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// SEAT LAYOUT VIEWS

func (s *service) GetSeatLayout(ctx context.Context, eventID string) (*SeatLayoutResponse, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	seats, frozen, err := s.inventoryWithState(ctx, eventUUID)
	if err != nil {
		return nil, err
	}

	bookedIDs, err := s.repo.GetBookedSeatIDs(ctx, eventUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked seats: %w", err)
	}

	return &SeatLayoutResponse{
		EventID:       eventID,
		Frozen:        frozen,
		TotalSeats:    len(seats),
		Seats:         seats,
		BookedSeatIDs: bookedIDs,
	}, nil
}

func (s *service) PreviewLayout(ctx context.Context, req PreviewLayoutRequest) (*SeatLayoutResponse, error) {
	seats, err := Compile(configsFromInputs(req.Categories))
	if err != nil {
		return nil, err
	}

	return &SeatLayoutResponse{
		Frozen:        false,
		TotalSeats:    len(seats),
		Seats:         seats,
		BookedSeatIDs: []string{},
	}, nil
}

func (s *service) ReconcileSelection(ctx context.Context, eventID string, req ReconcileSelectionRequest) (*ReconcileSelectionResponse, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	seats, _, err := s.inventoryWithState(ctx, eventUUID)
	if err != nil {
		return nil, err
	}

	booked, err := s.BookedSeatIDs(ctx, eventUUID)
	if err != nil {
		return nil, err
	}

	maxSelectable := req.MaxSelectable
	if maxSelectable <= 0 {
		maxSelectable = s.config.Booking.MaxSeatsPerBooking
	}

	// Booked always wins; a stale-selected seat is dropped from the
	// selection before it can contribute to the total.
	var liveIDs []string
	for _, id := range req.SelectedSeatIDs {
		if !booked[id] {
			liveIDs = append(liveIDs, id)
		}
	}
	selection := NewSelectionFrom(liveIDs, maxSelectable)

	return &ReconcileSelectionResponse{
		States:          Reconcile(seats, booked, selection),
		SelectedSeatIDs: selection.IDs(),
		TotalPrice:      TotalPrice(seats, selection),
		MaxSelectable:   maxSelectable,
	}, nil
}

// VENDOR CONFIGURATION

func (s *service) ReplaceCategories(ctx context.Context, eventID, vendorID string, req ReplaceCategoriesRequest) (*SeatLayoutResponse, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID: %w", err)
	}

	meta, err := s.repo.GetEventMeta(ctx, eventUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if meta.VendorID != vendorUUID {
		return nil, ErrNotEventOwner
	}

	frozen, err := s.repo.HasSeatRecords(ctx, eventUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to check frozen layout: %w", err)
	}
	if frozen {
		return nil, ErrLayoutFrozen
	}

	// Compile before persisting so a malformed or conflicting
	// configuration never reaches the database.
	seats, err := Compile(configsFromInputs(req.Categories))
	if err != nil {
		return nil, err
	}

	categories := make([]SeatCategory, 0, len(req.Categories))
	for _, input := range req.Categories {
		categories = append(categories, SeatCategory{
			EventID:     eventUUID,
			Name:        input.Name,
			Price:       input.Price,
			ColorTag:    input.ColorTag,
			Rows:        joinList(input.Rows),
			SeatsPerRow: input.SeatsPerRow,
			AisleAfter:  joinInts(input.AisleAfter),
		})
	}

	if err := s.repo.ReplaceCategories(ctx, eventUUID, categories); err != nil {
		return nil, fmt.Errorf("failed to save seat categories: %w", err)
	}

	s.invalidateLayoutCache(ctx, eventID)

	return &SeatLayoutResponse{
		EventID:       eventID,
		Frozen:        false,
		TotalSeats:    len(seats),
		Seats:         seats,
		BookedSeatIDs: []string{},
	}, nil
}

// PUBLISH-TIME FREEZE

// FreezeLayout compiles the draft configuration one last time and persists
// the result. From here on the frozen inventory, not the category rows, is
// the addressing scheme for bookings. Returns the seat count.
func (s *service) FreezeLayout(ctx context.Context, eventID uuid.UUID) (int, error) {
	categories, err := s.repo.GetCategoriesByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to get seat categories: %w", err)
	}

	configs := make([]CategoryConfig, 0, len(categories))
	for i := range categories {
		configs = append(configs, categories[i].ToConfig())
	}

	seats, err := Compile(configs)
	if err != nil {
		return 0, err
	}
	if len(seats) == 0 {
		return 0, ErrEmptyLayout
	}

	records := make([]SeatRecord, 0, len(seats))
	for _, seat := range seats {
		records = append(records, SeatRecord{
			EventID:       eventID,
			SeatID:        seat.ID,
			Row:           seat.Row,
			SlotIndex:     seat.SlotIndex,
			DisplayColumn: seat.DisplayColumn,
			CategoryName:  seat.CategoryName,
			Price:         seat.Price,
			ColorTag:      seat.ColorTag,
		})
	}

	if err := s.repo.SaveSeatRecords(ctx, eventID, records); err != nil {
		return 0, fmt.Errorf("failed to freeze layout: %w", err)
	}

	s.invalidateLayoutCache(ctx, eventID.String())
	logger.GetDefault().Info("Seat layout frozen for event:", eventID.String(), "seats:", len(records))

	return len(records), nil
}

// BOOKING-TIME HELPERS

func (s *service) CompiledInventory(ctx context.Context, eventID uuid.UUID) ([]CompiledSeat, error) {
	seats, _, err := s.inventoryWithState(ctx, eventID)
	return seats, err
}

func (s *service) BookedSeatIDs(ctx context.Context, eventID uuid.UUID) (map[string]bool, error) {
	ids, err := s.repo.GetBookedSeatIDs(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get booked seats: %w", err)
	}

	booked := make(map[string]bool, len(ids))
	for _, id := range ids {
		booked[id] = true
	}
	return booked, nil
}

func (s *service) ClaimSeats(ctx context.Context, eventID string, seatIDs []string, userID string) error {
	return s.repo.ClaimSeats(ctx, eventID, seatIDs, userID, s.config.Redis.SeatClaimTTL)
}

func (s *service) ReleaseClaims(ctx context.Context, eventID string, seatIDs []string) error {
	return s.repo.ReleaseClaims(ctx, eventID, seatIDs)
}

func (s *service) MarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error {
	return s.repo.MarkSeatsBooked(ctx, eventID, seatIDs)
}

func (s *service) UnmarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error {
	return s.repo.UnmarkSeatsBooked(ctx, eventID, seatIDs)
}

// INTERNAL

// inventoryWithState returns the live inventory: the frozen records when the
// event is published, otherwise a fresh compile of the draft configuration.
func (s *service) inventoryWithState(ctx context.Context, eventID uuid.UUID) ([]CompiledSeat, bool, error) {
	frozen, err := s.repo.HasSeatRecords(ctx, eventID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check frozen layout: %w", err)
	}

	cacheKey := constants.BuildCompiledLayoutKey(eventID.String())
	if frozen && s.cacheService != nil {
		var cached []CompiledSeat
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, true, nil
		}
	}

	var seats []CompiledSeat
	if frozen {
		records, err := s.repo.GetSeatRecords(ctx, eventID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to get frozen layout: %w", err)
		}
		seats = make([]CompiledSeat, 0, len(records))
		for i := range records {
			seats = append(seats, records[i].ToCompiledSeat())
		}
	} else {
		categories, err := s.repo.GetCategoriesByEventID(ctx, eventID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to get seat categories: %w", err)
		}
		configs := make([]CategoryConfig, 0, len(categories))
		for i := range categories {
			configs = append(configs, categories[i].ToConfig())
		}
		seats, err = Compile(configs)
		if err != nil {
			return nil, false, err
		}
	}

	if frozen && s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, seats, constants.TTL_LAYOUT_COMPILED); err != nil {
			logger.GetDefault().Debug("failed to cache compiled layout:", err)
		}
	}

	return seats, frozen, nil
}

func (s *service) invalidateLayoutCache(ctx context.Context, eventID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildCompiledLayoutKey(eventID)); err != nil {
		logger.GetDefault().Debug("failed to invalidate layout cache:", err)
	}
}

func configsFromInputs(inputs []CategoryInput) []CategoryConfig {
	configs := make([]CategoryConfig, 0, len(inputs))
	for _, input := range inputs {
		configs = append(configs, input.toConfig())
	}
	return configs
}
