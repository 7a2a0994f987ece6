package analytics

// VendorAnalytics is the per-vendor rollup across all of the vendor's events.
type VendorAnalytics struct {
	VendorID            string       `json:"vendor_id"`
	TotalEvents         int64        `json:"total_events"`
	PublishedEvents     int64        `json:"published_events"`
	TotalBookings       int64        `json:"total_bookings"`
	CancelledBookings   int64        `json:"cancelled_bookings"`
	CancellationRate    float64      `json:"cancellation_rate"`
	RevenuePoints       int64        `json:"revenue_points"`
	RefundedPoints      int64        `json:"refunded_points"`
	DailyTrend          []DailyStat  `json:"daily_trend"`
	TopEvents           []EventRank  `json:"top_events"`
}

// EventAnalytics is the per-event rollup.
type EventAnalytics struct {
	EventID           string      `json:"event_id"`
	EventName         string      `json:"event_name"`
	TotalBookings     int64       `json:"total_bookings"`
	CancelledBookings int64       `json:"cancelled_bookings"`
	RevenuePoints     int64       `json:"revenue_points"`
	RefundedPoints    int64       `json:"refunded_points"`
	SeatsTotal        int64       `json:"seats_total"`
	SeatsBooked       int64       `json:"seats_booked"`
	SeatFillPercent   float64     `json:"seat_fill_percent"`
	DailyTrend        []DailyStat `json:"daily_trend"`
}

// DailyStat is one day of the booking trend.
type DailyStat struct {
	Date          string `json:"date"`
	Bookings      int64  `json:"bookings"`
	RevenuePoints int64  `json:"revenue_points"`
}

// EventRank is one row of a vendor's top-events list.
type EventRank struct {
	EventID       string `json:"event_id"`
	EventName     string `json:"event_name"`
	Bookings      int64  `json:"bookings"`
	RevenuePoints int64  `json:"revenue_points"`
}

// PlatformAnalytics is the admin-wide rollup.
type PlatformAnalytics struct {
	TotalUsers        int64       `json:"total_users"`
	TotalVendors      int64       `json:"total_vendors"`
	TotalEvents       int64       `json:"total_events"`
	PublishedEvents   int64       `json:"published_events"`
	TotalBookings     int64       `json:"total_bookings"`
	CancelledBookings int64       `json:"cancelled_bookings"`
	RevenuePoints     int64       `json:"revenue_points"`
	PlatformFeePoints int64       `json:"platform_fee_points"`
	DailyTrend        []DailyStat `json:"daily_trend"`
}
