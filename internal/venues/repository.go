package venues

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for venue operations
type Repository interface {
	CreateVenue(ctx context.Context, venue *Venue) error
	GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetVenues(ctx context.Context, filters VenueFilters) (*PaginatedVenues, error)
	GetVenuesByVendorID(ctx context.Context, vendorID uuid.UUID) ([]Venue, error)
	UpdateVenue(ctx context.Context, venue *Venue) error
	DeleteVenue(ctx context.Context, id uuid.UUID) error
	CountActiveEventsForVenue(ctx context.Context, venueID uuid.UUID) (int64, error)
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateVenue(ctx context.Context, venue *Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

func (r *repository) GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).First(&venue, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *repository) GetVenues(ctx context.Context, filters VenueFilters) (*PaginatedVenues, error) {
	query := r.db.WithContext(ctx).Model(&Venue{})

	if filters.City != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(filters.City))
	}
	if filters.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(filters.Category))
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filters.MaxPrice > 0 {
		query = query.Where("price_per_hour <= ?", filters.MaxPrice)
	}
	if filters.MinCapacity > 0 {
		query = query.Where("capacity >= ?", filters.MinCapacity)
	}
	if filters.VendorID != uuid.Nil {
		query = query.Where("vendor_id = ?", filters.VendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var venues []Venue
	offset := (filters.Page - 1) * filters.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(filters.Limit).Find(&venues).Error; err != nil {
		return nil, err
	}

	totalPages := int(total) / filters.Limit
	if int(total)%filters.Limit != 0 {
		totalPages++
	}

	return &PaginatedVenues{
		Venues:     venues,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages,
	}, nil
}

func (r *repository) GetVenuesByVendorID(ctx context.Context, vendorID uuid.UUID) ([]Venue, error) {
	var venues []Venue
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&venues).Error
	return venues, err
}

func (r *repository) UpdateVenue(ctx context.Context, venue *Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}

func (r *repository) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Venue{}, "id = ?", id).Error
}

// CountActiveEventsForVenue counts published upcoming events held at a venue.
// A venue with active events cannot be deleted.
func (r *repository) CountActiveEventsForVenue(ctx context.Context, venueID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("events").
		Where("venue_id = ? AND status = 'PUBLISHED' AND start_time > NOW()", venueID).
		Count(&count).Error
	return count, err
}
