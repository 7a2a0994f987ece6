package bookings

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, refundRate float64, refundPoints int64, cancelledAt *time.Time) error

	GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetEventBookings(ctx context.Context, eventID uuid.UUID) ([]Booking, error)
	GetActiveBookingsForEvent(ctx context.Context, eventID uuid.UUID) ([]Booking, error)

	CreateVenueBooking(ctx context.Context, booking *VenueBooking) error
	GetVenueBookingByID(ctx context.Context, id uuid.UUID) (*VenueBooking, error)
	UpdateVenueBookingStatus(ctx context.Context, id uuid.UUID, status Status, refundRate float64, refundPoints int64, cancelledAt *time.Time) error
	GetUserVenueBookings(ctx context.Context, userID uuid.UUID) ([]VenueBooking, error)
	GetVenueBookings(ctx context.Context, venueID uuid.UUID) ([]VenueBooking, error)
	HasOverlappingVenueBooking(ctx context.Context, venueID uuid.UUID, checkIn, checkOut time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBooking persists the booking and its seat rows in one transaction;
// gorm cascades the BookedSeats association inserts.
func (r *repository) CreateBooking(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("BookedSeats").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status, refundRate float64, refundPoints int64, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
		updates["refund_rate"] = refundRate
		updates["refund_points"] = refundPoints
	}

	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("user_id = ?", userID)
	baseQuery = r.applyFilters(baseQuery, query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("BookedSeats").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

func (r *repository) GetEventBookings(ctx context.Context, eventID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("BookedSeats").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) GetActiveBookingsForEvent(ctx context.Context, eventID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("BookedSeats").
		Where("event_id = ? AND status = ?", eventID, StatusConfirmed).
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}

// VENUE BOOKINGS

func (r *repository) CreateVenueBooking(ctx context.Context, booking *VenueBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetVenueBookingByID(ctx context.Context, id uuid.UUID) (*VenueBooking, error) {
	var booking VenueBooking
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) UpdateVenueBookingStatus(ctx context.Context, id uuid.UUID, status Status, refundRate float64, refundPoints int64, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
		updates["refund_rate"] = refundRate
		updates["refund_points"] = refundPoints
	}

	return r.db.WithContext(ctx).
		Model(&VenueBooking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) GetUserVenueBookings(ctx context.Context, userID uuid.UUID) ([]VenueBooking, error) {
	var bookings []VenueBooking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("check_in DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) GetVenueBookings(ctx context.Context, venueID uuid.UUID) ([]VenueBooking, error) {
	var bookings []VenueBooking
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("check_in DESC").
		Find(&bookings).Error
	return bookings, err
}

// HasOverlappingVenueBooking reports whether a confirmed booking already
// holds any part of the [checkIn, checkOut) slot.
func (r *repository) HasOverlappingVenueBooking(ctx context.Context, venueID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&VenueBooking{}).
		Where("venue_id = ? AND status = ? AND check_in < ? AND check_out > ?",
			venueID, StatusConfirmed, checkOut, checkIn).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) applyFilters(query *gorm.DB, filters BookingListQuery) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.EventID != "" {
		if eventID, err := uuid.Parse(filters.EventID); err == nil {
			query = query.Where("event_id = ?", eventID)
		}
	}
	if filters.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
			query = query.Where("created_at >= ?", dateFrom)
		}
	}
	if filters.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
			query = query.Where("created_at < ?", dateTo.AddDate(0, 0, 1))
		}
	}
	return query
}

func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
