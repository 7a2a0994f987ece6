package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetVendorAnalytics(ctx context.Context, vendorID uuid.UUID, trendDays int) (*VendorAnalytics, error)
	GetEventAnalytics(ctx context.Context, eventID uuid.UUID, trendDays int) (*EventAnalytics, error)
	GetPlatformAnalytics(ctx context.Context, trendDays int) (*PlatformAnalytics, error)

	// GetEventVendor reads the events table directly for ownership checks.
	GetEventVendor(ctx context.Context, eventID uuid.UUID) (uuid.UUID, string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type bookingTotals struct {
	Total          int64
	Cancelled      int64
	RevenuePoints  int64
	RefundedPoints int64
	FeePoints      int64
}

func (r *repository) bookingTotals(ctx context.Context, where string, args ...interface{}) (*bookingTotals, error) {
	var totals bookingTotals
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'CANCELLED') AS cancelled,
			COALESCE(SUM(total_points) FILTER (WHERE status = 'CONFIRMED'), 0) AS revenue_points,
			COALESCE(SUM(refund_points), 0) AS refunded_points,
			COALESCE(SUM(platform_fee_points), 0) AS fee_points`).
		Where(where, args...).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *repository) dailyTrend(ctx context.Context, days int, where string, args ...interface{}) ([]DailyStat, error) {
	since := time.Now().AddDate(0, 0, -days)

	var rows []struct {
		Day           time.Time
		Bookings      int64
		RevenuePoints int64
	}
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`DATE(created_at) AS day,
			COUNT(*) AS bookings,
			COALESCE(SUM(total_points) FILTER (WHERE status = 'CONFIRMED'), 0) AS revenue_points`).
		Where(where, args...).
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	trend := make([]DailyStat, 0, len(rows))
	for _, row := range rows {
		trend = append(trend, DailyStat{
			Date:          row.Day.Format("2006-01-02"),
			Bookings:      row.Bookings,
			RevenuePoints: row.RevenuePoints,
		})
	}
	return trend, nil
}

func (r *repository) GetVendorAnalytics(ctx context.Context, vendorID uuid.UUID, trendDays int) (*VendorAnalytics, error) {
	var totalEvents, publishedEvents int64
	if err := r.db.WithContext(ctx).
		Table("events").
		Where("vendor_id = ?", vendorID).
		Count(&totalEvents).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Table("events").
		Where("vendor_id = ? AND status = 'PUBLISHED'", vendorID).
		Count(&publishedEvents).Error; err != nil {
		return nil, err
	}

	totals, err := r.bookingTotals(ctx, "vendor_id = ?", vendorID)
	if err != nil {
		return nil, err
	}

	trend, err := r.dailyTrend(ctx, trendDays, "vendor_id = ?", vendorID)
	if err != nil {
		return nil, err
	}

	var top []EventRank
	err = r.db.WithContext(ctx).
		Table("bookings b").
		Select(`b.event_id::text AS event_id,
			e.name AS event_name,
			COUNT(*) AS bookings,
			COALESCE(SUM(b.total_points), 0) AS revenue_points`).
		Joins("JOIN events e ON e.id = b.event_id").
		Where("b.vendor_id = ? AND b.status = 'CONFIRMED'", vendorID).
		Group("b.event_id, e.name").
		Order("revenue_points DESC").
		Limit(5).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}

	result := &VendorAnalytics{
		VendorID:          vendorID.String(),
		TotalEvents:       totalEvents,
		PublishedEvents:   publishedEvents,
		TotalBookings:     totals.Total,
		CancelledBookings: totals.Cancelled,
		RevenuePoints:     totals.RevenuePoints,
		RefundedPoints:    totals.RefundedPoints,
		DailyTrend:        trend,
		TopEvents:         top,
	}
	if totals.Total > 0 {
		result.CancellationRate = float64(totals.Cancelled) / float64(totals.Total)
	}
	return result, nil
}

func (r *repository) GetEventAnalytics(ctx context.Context, eventID uuid.UUID, trendDays int) (*EventAnalytics, error) {
	_, eventName, err := r.GetEventVendor(ctx, eventID)
	if err != nil {
		return nil, err
	}

	totals, err := r.bookingTotals(ctx, "event_id = ?", eventID)
	if err != nil {
		return nil, err
	}

	trend, err := r.dailyTrend(ctx, trendDays, "event_id = ?", eventID)
	if err != nil {
		return nil, err
	}

	var seatsTotal int64
	if err := r.db.WithContext(ctx).
		Table("compiled_seats").
		Where("event_id = ?", eventID).
		Count(&seatsTotal).Error; err != nil {
		return nil, err
	}

	var seatsBooked int64
	err = r.db.WithContext(ctx).
		Table("booked_seats bs").
		Joins("JOIN bookings b ON b.id = bs.booking_id").
		Where("bs.event_id = ? AND b.status = 'CONFIRMED'", eventID).
		Count(&seatsBooked).Error
	if err != nil {
		return nil, err
	}

	result := &EventAnalytics{
		EventID:           eventID.String(),
		EventName:         eventName,
		TotalBookings:     totals.Total,
		CancelledBookings: totals.Cancelled,
		RevenuePoints:     totals.RevenuePoints,
		RefundedPoints:    totals.RefundedPoints,
		SeatsTotal:        seatsTotal,
		SeatsBooked:       seatsBooked,
		DailyTrend:        trend,
	}
	if seatsTotal > 0 {
		result.SeatFillPercent = float64(seatsBooked) / float64(seatsTotal) * 100
	}
	return result, nil
}

func (r *repository) GetPlatformAnalytics(ctx context.Context, trendDays int) (*PlatformAnalytics, error) {
	var users, vendors, totalEvents, publishedEvents int64
	if err := r.db.WithContext(ctx).
		Table("users").
		Where("role = 'USER'").
		Count(&users).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Table("users").
		Where("role = 'VENDOR'").
		Count(&vendors).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Table("events").
		Count(&totalEvents).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Table("events").
		Where("status = 'PUBLISHED'").
		Count(&publishedEvents).Error; err != nil {
		return nil, err
	}

	totals, err := r.bookingTotals(ctx, "1 = 1")
	if err != nil {
		return nil, err
	}

	trend, err := r.dailyTrend(ctx, trendDays, "1 = 1")
	if err != nil {
		return nil, err
	}

	return &PlatformAnalytics{
		TotalUsers:        users,
		TotalVendors:      vendors,
		TotalEvents:       totalEvents,
		PublishedEvents:   publishedEvents,
		TotalBookings:     totals.Total,
		CancelledBookings: totals.Cancelled,
		RevenuePoints:     totals.RevenuePoints,
		PlatformFeePoints: totals.FeePoints,
		DailyTrend:        trend,
	}, nil
}

func (r *repository) GetEventVendor(ctx context.Context, eventID uuid.UUID) (uuid.UUID, string, error) {
	var row struct {
		VendorID uuid.UUID
		Name     string
	}
	err := r.db.WithContext(ctx).
		Table("events").
		Select("vendor_id, name").
		Where("id = ?", eventID).
		Take(&row).Error
	if err != nil {
		return uuid.Nil, "", err
	}
	return row.VendorID, row.Name, nil
}
