package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the application
// Pattern: eventvenue:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for very stable data
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for architectural data
	TTL_STATIC_SHORT  = 6 * time.Hour  // 6 hours - for user profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_LONG   = 4 * time.Hour    // 4 hours - for compiled seat layouts
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for event listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for upcoming events
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for analytics
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for seat availability
	TTL_DYNAMIC_QUICK  = 2 * time.Minute  // 2 minutes - for booking availability
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_MEDIUM = 1 * time.Minute  // 1 minute - for wallet balances
	TTL_REALTIME_SHORT  = 30 * time.Second // 30 seconds - for live seat counts
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "eventvenue"
)

// ================== EVENTS MODULE ==================

// Event Cache Keys
const (
	// Event listings and searches
	CACHE_KEY_EVENTS_LIST      = CACHE_PREFIX + ":events:list"      // + :page:X:limit:Y:status:Z
	CACHE_KEY_EVENTS_UPCOMING  = CACHE_PREFIX + ":events:upcoming"  // + :page:X:limit:Y
	CACHE_KEY_EVENTS_BY_VENDOR = CACHE_PREFIX + ":events:by_vendor" // + :uuid:vendor-id
	CACHE_KEY_EVENTS_SEARCH    = CACHE_PREFIX + ":events:search"    // + :query:X:page:Y

	// Individual event details
	CACHE_KEY_EVENT_DETAIL      = CACHE_PREFIX + ":events:detail:uuid:"      // + event-id
	CACHE_KEY_EVENT_FULL_DETAIL = CACHE_PREFIX + ":events:full_detail:uuid:" // + event-id (with venue info)
)

// Event Cache TTLs
const (
	TTL_EVENT_LIST     = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_EVENT_UPCOMING = TTL_SEMI_STATIC_QUICK  // 15 minutes
	TTL_EVENT_DETAIL   = TTL_SEMI_STATIC_MEDIUM // 2 hours
	TTL_EVENT_SEARCH   = TTL_SEMI_STATIC_QUICK  // 15 minutes
)

// ================== VENUES MODULE ==================

// Venue Cache Keys
const (
	CACHE_KEY_VENUES_LIST      = CACHE_PREFIX + ":venues:list"            // + :page:X:limit:Y
	CACHE_KEY_VENUES_BY_VENDOR = CACHE_PREFIX + ":venues:by_vendor:uuid:" // + vendor-id
	CACHE_KEY_VENUE_DETAIL     = CACHE_PREFIX + ":venues:detail:uuid:"    // + venue-id
)

// Venue Cache TTLs
const (
	TTL_VENUES_LIST  = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_VENUE_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== LAYOUT MODULE ==================

// Seat Layout Cache Keys
const (
	// Compiled layout per event (categories -> seat grid)
	CACHE_KEY_LAYOUT_COMPILED = CACHE_PREFIX + ":layout:compiled:event:" // + event-id

	// Availability view (compiled layout merged with booked seat ids)
	CACHE_KEY_LAYOUT_AVAILABILITY = CACHE_PREFIX + ":layout:availability:event:" // + event-id

	// Booked seat id set, maintained alongside bookings
	CACHE_KEY_LAYOUT_BOOKED = CACHE_PREFIX + ":layout:booked:event:" // + event-id
)

// Seat Layout Cache TTLs
const (
	TTL_LAYOUT_COMPILED     = TTL_SEMI_STATIC_LONG // 4 hours
	TTL_LAYOUT_AVAILABILITY = TTL_REALTIME_SHORT   // 30 seconds
	TTL_LAYOUT_BOOKED       = TTL_DYNAMIC_QUICK    // 2 minutes
)

// ================== REVIEWS MODULE ==================

// Review Cache Keys
const (
	CACHE_KEY_REVIEWS_BY_EVENT = CACHE_PREFIX + ":reviews:event:uuid:"  // + event-id:page:X
	CACHE_KEY_REVIEWS_BY_VENUE = CACHE_PREFIX + ":reviews:venue:uuid:"  // + venue-id:page:X
	CACHE_KEY_REVIEWS_PENDING  = CACHE_PREFIX + ":reviews:pending"      // + :page:X
	CACHE_KEY_REVIEW_SUMMARY   = CACHE_PREFIX + ":reviews:summary:uuid:" // + subject-id
)

// Review Cache TTLs
const (
	TTL_REVIEWS_BY_EVENT = TTL_DYNAMIC_MEDIUM    // 10 minutes
	TTL_REVIEWS_BY_VENUE = TTL_DYNAMIC_MEDIUM    // 10 minutes
	TTL_REVIEW_SUMMARY   = TTL_SEMI_STATIC_SHORT // 1 hour
)

// ================== ANALYTICS MODULE ==================

// Analytics Cache Keys
const (
	// Dashboard analytics
	CACHE_KEY_ANALYTICS_DASHBOARD = CACHE_PREFIX + ":analytics:dashboard:admin"
	CACHE_KEY_ANALYTICS_VENDOR    = CACHE_PREFIX + ":analytics:vendor:uuid:" // + vendor-id

	// Event analytics
	CACHE_KEY_ANALYTICS_EVENT_GLOBAL = CACHE_PREFIX + ":analytics:events:global"
	CACHE_KEY_ANALYTICS_EVENT_DETAIL = CACHE_PREFIX + ":analytics:event:uuid:" // + event-id

	// Booking analytics
	CACHE_KEY_ANALYTICS_BOOKINGS      = CACHE_PREFIX + ":analytics:bookings:overview"
	CACHE_KEY_ANALYTICS_BOOKING_DAILY = CACHE_PREFIX + ":analytics:bookings:daily"
	CACHE_KEY_ANALYTICS_REFUNDS       = CACHE_PREFIX + ":analytics:refunds"
)

// Analytics Cache TTLs
const (
	TTL_ANALYTICS_DASHBOARD = TTL_SEMI_STATIC_SHORT // 1 hour
	TTL_ANALYTICS_VENDOR    = TTL_DYNAMIC_MEDIUM    // 10 minutes
	TTL_ANALYTICS_EVENT     = TTL_SEMI_STATIC_SHORT // 1 hour
	TTL_ANALYTICS_BOOKINGS  = TTL_DYNAMIC_MEDIUM    // 10 minutes
)

// ================== AUTH MODULE ==================

// Auth Cache Keys
const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":auth:user:profile:uuid:" // + user-id
	CACHE_KEY_USER_ROLES   = CACHE_PREFIX + ":auth:user:roles:uuid:"   // + user-id
)

// Auth Cache TTLs
const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT // 6 hours
	TTL_USER_ROLES   = TTL_STATIC_SHORT // 6 hours
)

// ================== BOOKINGS MODULE ==================

// Booking Cache Keys
const (
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":bookings:user:uuid:"   // + user-id:page:X
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":bookings:detail:uuid:" // + booking-id
)

// Booking Cache TTLs
const (
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM // 10 minutes
)

// ================== WALLET MODULE ==================

// Wallet Cache Keys
const (
	CACHE_KEY_WALLET_BALANCE = CACHE_PREFIX + ":wallet:balance:uuid:" // + user-id
	CACHE_KEY_WALLET_HISTORY = CACHE_PREFIX + ":wallet:history:uuid:" // + user-id:page:X
)

// Wallet Cache TTLs
const (
	TTL_WALLET_BALANCE = TTL_REALTIME_MEDIUM // 1 minute
	TTL_WALLET_HISTORY = TTL_DYNAMIC_MEDIUM  // 10 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with Redis SCAN or manual invalidation)
const (
	// Event-related invalidation patterns
	PATTERN_INVALIDATE_EVENT_ALL    = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_EVENT_DETAIL = CACHE_PREFIX + ":events:*:uuid:" // + event-id + *

	// Venue-related invalidation patterns
	PATTERN_INVALIDATE_VENUES_ALL = CACHE_PREFIX + ":venues:*"

	// Layout-related invalidation patterns
	PATTERN_INVALIDATE_LAYOUT_ALL = CACHE_PREFIX + ":layout:*"

	// Review-related invalidation patterns
	PATTERN_INVALIDATE_REVIEWS_ALL = CACHE_PREFIX + ":reviews:*"

	// User-related invalidation patterns
	PATTERN_INVALIDATE_USER_ALL = CACHE_PREFIX + ":*:user:*" // + user-id + *

	// Analytics invalidation patterns
	PATTERN_INVALIDATE_ANALYTICS = CACHE_PREFIX + ":analytics:*"
)

// ================== HELPER FUNCTIONS ==================

// BuildEventListKey constructs the paginated event list key
// Example: BuildEventListKey(1, 10, "PUBLISHED") -> "eventvenue:events:list:page:1:limit:10:status:PUBLISHED"
func BuildEventListKey(page, limit int, status string) string {
	if status != "" {
		return CACHE_KEY_EVENTS_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit) + ":status:" + status
	}
	return CACHE_KEY_EVENTS_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildVenueDetailKey(venueID string) string {
	return CACHE_KEY_VENUE_DETAIL + venueID
}

func BuildCompiledLayoutKey(eventID string) string {
	return CACHE_KEY_LAYOUT_COMPILED + eventID
}

func BuildLayoutAvailabilityKey(eventID string) string {
	return CACHE_KEY_LAYOUT_AVAILABILITY + eventID
}

func BuildBookedSeatsKey(eventID string) string {
	return CACHE_KEY_LAYOUT_BOOKED + eventID
}

func BuildUserBookingsKey(userID string, page int) string {
	return CACHE_KEY_USER_BOOKINGS + userID + ":page:" + fmt.Sprintf("%d", page)
}

func BuildWalletBalanceKey(userID string) string {
	return CACHE_KEY_WALLET_BALANCE + userID
}

func BuildReviewsByEventKey(eventID string, page int) string {
	return CACHE_KEY_REVIEWS_BY_EVENT + eventID + ":page:" + fmt.Sprintf("%d", page)
}

func BuildReviewsByVenueKey(venueID string, page int) string {
	return CACHE_KEY_REVIEWS_BY_VENUE + venueID + ":page:" + fmt.Sprintf("%d", page)
}

func BuildAnalyticsEventKey(eventID string) string {
	return CACHE_KEY_ANALYTICS_EVENT_DETAIL + eventID
}

func BuildAnalyticsVendorKey(vendorID string) string {
	return CACHE_KEY_ANALYTICS_VENDOR + vendorID
}
