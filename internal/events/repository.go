package events

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(event *Event) error
	GetByID(id uuid.UUID) (*Event, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Event, error)
	Delete(id uuid.UUID) error
	GetAll(query EventListQuery) ([]Event, int64, error)
	GetByVendorID(vendorID uuid.UUID) ([]Event, error)
	GetUpcomingEvents(limit int) ([]Event, error)
	DecrementTickets(eventID uuid.UUID, quantity int) error
	RestoreTickets(eventID uuid.UUID, quantity int) error
	CountBookings(eventID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(event *Event) error {
	return r.db.Create(event).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Event, error) {
	var event Event
	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	if err := r.db.Model(&Event{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	var event Event
	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Drafts never have bookings, but may already have seat categories
		if err := tx.Exec("DELETE FROM seat_categories WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Event{}).Error
	})
}

func (r *repository) GetAll(query EventListQuery) ([]Event, int64, error) {
	var events []Event
	var totalCount int64

	db := r.db.Model(&Event{})

	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(events.name) LIKE ? OR LOWER(events.description) LIKE ?", pattern, pattern)
	}
	if query.Category != "" {
		db = db.Where("LOWER(events.category) = ?", strings.ToLower(query.Category))
	}
	if query.City != "" {
		db = db.Joins("JOIN venues ON venues.id = events.venue_id").
			Where("LOWER(venues.city) = ?", strings.ToLower(query.City))
	}
	if query.Status != "" {
		db = db.Where("events.status = ?", query.Status)
	} else {
		// Public listings never surface drafts
		db = db.Where("events.status = ?", EventStatusPublished)
	}
	if query.BookingType != "" {
		db = db.Where("events.booking_type = ?", query.BookingType)
	}
	if query.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("events.start_time >= ?", from)
		}
	}
	if query.DateTo != "" {
		if to, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			db = db.Where("events.start_time < ?", to.AddDate(0, 0, 1))
		}
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	if err := db.Order("events.start_time ASC").Offset(offset).Limit(query.Limit).Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, totalCount, nil
}

func (r *repository) GetByVendorID(vendorID uuid.UUID) ([]Event, error) {
	var events []Event
	err := r.db.Where("vendor_id = ?", vendorID).Order("start_time ASC").Find(&events).Error
	return events, err
}

func (r *repository) GetUpcomingEvents(limit int) ([]Event, error) {
	var events []Event
	err := r.db.
		Where("status = ? AND start_time > ?", EventStatusPublished, time.Now()).
		Order("start_time ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// DecrementTickets atomically reserves tickets for a QUANTITY booking.
// The WHERE guard makes oversell impossible under concurrent bookings.
func (r *repository) DecrementTickets(eventID uuid.UUID, quantity int) error {
	result := r.db.Model(&Event{}).
		Where("id = ? AND tickets_available >= ?", eventID, quantity).
		Update("tickets_available", gorm.Expr("tickets_available - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) RestoreTickets(eventID uuid.UUID, quantity int) error {
	return r.db.Model(&Event{}).
		Where("id = ?", eventID).
		Update("tickets_available", gorm.Expr("LEAST(tickets_available + ?, total_tickets)", quantity)).Error
}

func (r *repository) CountBookings(eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Table("bookings").
		Where("event_id = ? AND status != 'CANCELLED'", eventID).
		Count(&count).Error
	return count, err
}
