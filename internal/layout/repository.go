package layout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Category configuration
	GetCategoriesByEventID(ctx context.Context, eventID uuid.UUID) ([]SeatCategory, error)
	ReplaceCategories(ctx context.Context, eventID uuid.UUID, categories []SeatCategory) error

	// Frozen inventory
	SaveSeatRecords(ctx context.Context, eventID uuid.UUID, records []SeatRecord) error
	GetSeatRecords(ctx context.Context, eventID uuid.UUID) ([]SeatRecord, error)
	HasSeatRecords(ctx context.Context, eventID uuid.UUID) (bool, error)

	// Booking state
	GetBookedSeatIDs(ctx context.Context, eventID uuid.UUID) ([]string, error)

	// Event metadata (owned by the events module)
	GetEventMeta(ctx context.Context, eventID uuid.UUID) (*EventMeta, error)

	// Redis claim operations (booking-time guard)
	ClaimSeats(ctx context.Context, eventID string, seatIDs []string, userID string, ttl time.Duration) error
	ReleaseClaims(ctx context.Context, eventID string, seatIDs []string) error
	MarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error
	UnmarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error
}

type repository struct {
	db     *gorm.DB
	atomic *AtomicRedisOperations
}

func NewRepository(db *gorm.DB, redisClient *redis.Client) Repository {
	return &repository{
		db:     db,
		atomic: NewAtomicRedisOperations(redisClient),
	}
}

// CATEGORY CONFIGURATION

func (r *repository) GetCategoriesByEventID(ctx context.Context, eventID uuid.UUID) ([]SeatCategory, error) {
	var categories []SeatCategory
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// ReplaceCategories swaps the whole configuration in one transaction. The
// draft configuration is always edited as a unit, never per category.
func (r *repository) ReplaceCategories(ctx context.Context, eventID uuid.UUID, categories []SeatCategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&SeatCategory{}).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return nil
		}
		return tx.Create(&categories).Error
	})
}

// FROZEN INVENTORY

func (r *repository) SaveSeatRecords(ctx context.Context, eventID uuid.UUID, records []SeatRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&SeatRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error
	})
}

func (r *repository) GetSeatRecords(ctx context.Context, eventID uuid.UUID) ([]SeatRecord, error) {
	var records []SeatRecord
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("row ASC, slot_index ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) HasSeatRecords(ctx context.Context, eventID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SeatRecord{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count > 0, err
}

// BOOKING STATE

func (r *repository) GetBookedSeatIDs(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	var seatIDs []string
	err := r.db.WithContext(ctx).
		Table("booked_seats bs").
		Joins("JOIN bookings b ON b.id = bs.booking_id").
		Where("b.event_id = ? AND b.status != 'CANCELLED'", eventID).
		Pluck("bs.seat_id", &seatIDs).Error
	return seatIDs, err
}

// EventMeta is the slice of the events table the layout module needs.
type EventMeta struct {
	ID       uuid.UUID `json:"id"`
	VendorID uuid.UUID `json:"vendor_id"`
	Status   string    `json:"status"`
}

func (r *repository) GetEventMeta(ctx context.Context, eventID uuid.UUID) (*EventMeta, error) {
	var meta EventMeta
	err := r.db.WithContext(ctx).
		Table("events").
		Select("id, vendor_id, status").
		Where("id = ?", eventID).
		First(&meta).Error
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// REDIS CLAIM OPERATIONS

func (r *repository) ClaimSeats(ctx context.Context, eventID string, seatIDs []string, userID string, ttl time.Duration) error {
	return r.atomic.AtomicClaimSeats(ctx, eventID, seatIDs, userID, ttl)
}

func (r *repository) ReleaseClaims(ctx context.Context, eventID string, seatIDs []string) error {
	return r.atomic.ReleaseClaims(ctx, eventID, seatIDs)
}

func (r *repository) MarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error {
	return r.atomic.MarkSeatsBooked(ctx, eventID, seatIDs)
}

func (r *repository) UnmarkSeatsBooked(ctx context.Context, eventID string, seatIDs []string) error {
	return r.atomic.UnmarkSeatsBooked(ctx, eventID, seatIDs)
}
