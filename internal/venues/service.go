package venues

import (
	"context"
	"errors"
	"fmt"

	"eventvenue/internal/shared/constants"
	"eventvenue/pkg/cache"
	"eventvenue/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrVenueNotFound     = errors.New("venue not found")
	ErrNotVenueOwner     = errors.New("venue belongs to a different vendor")
	ErrLocationLocked    = errors.New("venue location is locked after two edits")
	ErrVenueHasEvents    = errors.New("venue has active events")
)

type Service interface {
	CreateVenue(ctx context.Context, vendorID string, req CreateVenueRequest) (*VenueResponse, error)
	GetVenueByID(ctx context.Context, id string) (*VenueResponse, error)
	GetVenues(ctx context.Context, filters VenueFilters) (*PaginatedVenues, error)
	GetVendorVenues(ctx context.Context, vendorID string) ([]Venue, error)
	UpdateVenue(ctx context.Context, id, vendorID string, req UpdateVenueRequest) (*VenueResponse, error)
	DeleteVenue(ctx context.Context, id, vendorID string) error

	// GetVenueRecord returns the raw model for cross-module callers.
	GetVenueRecord(ctx context.Context, id uuid.UUID) (*Venue, error)
}

type service struct {
	repo        Repository
	redisClient *redis.Client
}

func NewService(repo Repository) Service {
	return &service{
		repo:        repo,
		redisClient: cache.Client(),
	}
}

func (s *service) CreateVenue(ctx context.Context, vendorID string, req CreateVenueRequest) (*VenueResponse, error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID: %w", err)
	}

	venue := &Venue{
		ID:           uuid.New(),
		VendorID:     vendorUUID,
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		Category:     req.Category,
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
		Amenities:    req.Amenities,
		IsAvailable:  true,
	}

	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	if err := InvalidateVenueCache(ctx, s.redisClient, nil); err != nil {
		logger.GetDefault().Debug("failed to invalidate venue cache after creation:", err)
	}

	return toVenueResponse(venue), nil
}

func (s *service) GetVenueByID(ctx context.Context, id string) (*VenueResponse, error) {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID: %w", err)
	}

	cacheKey := constants.BuildVenueDetailKey(id)
	var cached VenueResponse
	if err := GetCache(ctx, s.redisClient, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	venue, err := s.repo.GetVenueByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	result := toVenueResponse(venue)
	if err := SetCache(ctx, s.redisClient, cacheKey, result, constants.TTL_VENUE_DETAIL); err != nil {
		logger.GetDefault().Debug("failed to cache venue:", err)
	}

	return result, nil
}

func (s *service) GetVenueRecord(ctx context.Context, id uuid.UUID) (*Venue, error) {
	venue, err := s.repo.GetVenueByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return venue, nil
}

func (s *service) GetVenues(ctx context.Context, filters VenueFilters) (*PaginatedVenues, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.Limit <= 0 {
		filters.Limit = 20
	}
	if filters.Limit > 100 {
		filters.Limit = 100
	}

	cacheKey := fmt.Sprintf("%s:page:%d:limit:%d:city:%s:category:%s:search:%s:maxprice:%g:mincap:%d",
		constants.CACHE_KEY_VENUES_LIST,
		filters.Page,
		filters.Limit,
		filters.City,
		filters.Category,
		filters.Search,
		filters.MaxPrice,
		filters.MinCapacity,
	)

	// Vendor-scoped listings bypass the shared cache
	if filters.VendorID == uuid.Nil {
		var cached PaginatedVenues
		if err := GetCache(ctx, s.redisClient, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	result, err := s.repo.GetVenues(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	if filters.VendorID == uuid.Nil {
		if err := SetCache(ctx, s.redisClient, cacheKey, result, constants.TTL_VENUES_LIST); err != nil {
			logger.GetDefault().Debug("failed to cache venue list:", err)
		}
	}

	return result, nil
}

func (s *service) GetVendorVenues(ctx context.Context, vendorID string) ([]Venue, error) {
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID: %w", err)
	}
	return s.repo.GetVenuesByVendorID(ctx, vendorUUID)
}

func (s *service) UpdateVenue(ctx context.Context, id, vendorID string, req UpdateVenueRequest) (*VenueResponse, error) {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID: %w", err)
	}
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, fmt.Errorf("invalid vendor ID: %w", err)
	}

	venue, err := s.repo.GetVenueByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	if venue.VendorID != vendorUUID {
		return nil, ErrNotVenueOwner
	}

	locationChanged := (req.Address != nil && *req.Address != venue.Address) ||
		(req.City != nil && *req.City != venue.City)
	if locationChanged && venue.IsLocationLocked {
		return nil, ErrLocationLocked
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Description != nil {
		venue.Description = *req.Description
	}
	if req.Category != nil {
		venue.Category = *req.Category
	}
	if req.Capacity != nil {
		venue.Capacity = *req.Capacity
	}
	if req.PricePerHour != nil {
		venue.PricePerHour = *req.PricePerHour
	}
	if req.Amenities != nil {
		venue.Amenities = *req.Amenities
	}
	if req.IsAvailable != nil {
		venue.IsAvailable = *req.IsAvailable
	}
	if locationChanged {
		if req.Address != nil {
			venue.Address = *req.Address
		}
		if req.City != nil {
			venue.City = *req.City
		}
		venue.RecordLocationEdit()
	}

	if err := s.repo.UpdateVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to update venue: %w", err)
	}

	if err := InvalidateVenueCache(ctx, s.redisClient, &venueID); err != nil {
		logger.GetDefault().Debug("failed to invalidate venue cache after update:", err)
	}

	return toVenueResponse(venue), nil
}

func (s *service) DeleteVenue(ctx context.Context, id, vendorID string) error {
	venueID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid venue ID: %w", err)
	}
	vendorUUID, err := uuid.Parse(vendorID)
	if err != nil {
		return fmt.Errorf("invalid vendor ID: %w", err)
	}

	venue, err := s.repo.GetVenueByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVenueNotFound
		}
		return fmt.Errorf("failed to get venue: %w", err)
	}
	if venue.VendorID != vendorUUID {
		return ErrNotVenueOwner
	}

	activeEvents, err := s.repo.CountActiveEventsForVenue(ctx, venueID)
	if err != nil {
		return fmt.Errorf("failed to check venue events: %w", err)
	}
	if activeEvents > 0 {
		return ErrVenueHasEvents
	}

	if err := s.repo.DeleteVenue(ctx, venueID); err != nil {
		return fmt.Errorf("failed to delete venue: %w", err)
	}

	if err := InvalidateVenueCache(ctx, s.redisClient, &venueID); err != nil {
		logger.GetDefault().Debug("failed to invalidate venue cache after delete:", err)
	}

	return nil
}
