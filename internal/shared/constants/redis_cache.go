package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Cinetix application
// Pattern: cinetix:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for movies and theaters
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for theater layouts
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // 2 hours - for show details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // 1 hour - for show listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // 15 minutes - for upcoming shows
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // 10 minutes - for booking lookups
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // 5 minutes - for per-user booking lists
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // 30 seconds - for live seat maps
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cinetix"
)

// ================== CATALOG MODULE ==================

// Show Cache Keys
const (
	CACHE_KEY_SHOWS_LIST     = CACHE_PREFIX + ":shows:list"        // + :page:X:limit:Y
	CACHE_KEY_SHOWS_UPCOMING = CACHE_PREFIX + ":shows:upcoming"    // + :page:X:limit:Y
	CACHE_KEY_SHOW_DETAIL    = CACHE_PREFIX + ":shows:detail:uuid:" // + show-id
)

// Show Cache TTLs
const (
	TTL_SHOW_LIST     = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_SHOW_UPCOMING = TTL_SEMI_STATIC_QUICK  // 15 minutes
	TTL_SHOW_DETAIL   = TTL_SEMI_STATIC_MEDIUM // 2 hours
)

// ================== INVENTORY MODULE ==================

// Seat Map Cache Keys
const (
	CACHE_KEY_SEAT_MAP = CACHE_PREFIX + ":inventory:seat_map:show:" // + show-id
)

// Seat Map Cache TTLs
const (
	TTL_SEAT_MAP = TTL_REALTIME_SHORT // 30 seconds
)

// ================== RESERVATION MODULE ==================

// Booking Cache Keys
const (
	CACHE_KEY_BOOKING_DETAIL = CACHE_PREFIX + ":reservations:detail:uuid:" // + booking-id
	CACHE_KEY_USER_BOOKINGS  = CACHE_PREFIX + ":reservations:user:uuid:"   // + user-id
)

// Booking Cache TTLs
const (
	TTL_BOOKING_DETAIL = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_USER_BOOKINGS  = TTL_DYNAMIC_SHORT  // 5 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with Redis KEYS command)
const (
	PATTERN_INVALIDATE_SHOWS_ALL        = CACHE_PREFIX + ":shows:*"
	PATTERN_INVALIDATE_INVENTORY_ALL    = CACHE_PREFIX + ":inventory:*"
	PATTERN_INVALIDATE_RESERVATIONS_ALL = CACHE_PREFIX + ":reservations:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildShowListKey(page, limit int) string {
	return CACHE_KEY_SHOWS_LIST + ":page:" + fmt.Sprintf("%d", page) + ":limit:" + fmt.Sprintf("%d", limit)
}

func BuildShowDetailKey(showID string) string {
	return CACHE_KEY_SHOW_DETAIL + showID
}

func BuildSeatMapKey(showID string) string {
	return CACHE_KEY_SEAT_MAP + showID
}

func BuildBookingDetailKey(bookingID string) string {
	return CACHE_KEY_BOOKING_DETAIL + bookingID
}

func BuildUserBookingsKey(userID string) string {
	return CACHE_KEY_USER_BOOKINGS + userID
}

func BuildSeatMapInvalidationKey(showID string) string {
	return CACHE_KEY_SEAT_MAP + showID + "*"
}
