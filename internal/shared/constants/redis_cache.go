package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs.
// Pattern: zombieland:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG   = 24 * time.Hour
	TTL_STATIC_MEDIUM = 12 * time.Hour
	TTL_STATIC_SHORT  = 6 * time.Hour
)

const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute
)

const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute
	TTL_DYNAMIC_SHORT  = 5 * time.Minute
)

const (
	CACHE_PREFIX = "zombieland"
)

// ================== PERIODS MODULE ==================

const (
	CACHE_KEY_PERIODS_ALL   = CACHE_PREFIX + ":periods:list:all"
	CACHE_KEY_PERIOD_DETAIL = CACHE_PREFIX + ":periods:detail:uuid:" // + period-id
)

const (
	TTL_PERIODS_LIST   = TTL_STATIC_MEDIUM // 12 hours
	TTL_PERIODS_DETAIL = TTL_STATIC_MEDIUM
)

// ================== ACTIVITIES MODULE ==================

const (
	CACHE_KEY_ACTIVITIES_LIST = CACHE_PREFIX + ":activities:list"         // + :page:X:limit:Y:category:Z:q:W
	CACHE_KEY_ACTIVITY_DETAIL = CACHE_PREFIX + ":activities:detail:uuid:" // + activity-id
	CACHE_KEY_CATEGORIES_ALL  = CACHE_PREFIX + ":categories:list:all"
)

const (
	TTL_ACTIVITIES_LIST = TTL_SEMI_STATIC_SHORT  // 1 hour
	TTL_ACTIVITY_DETAIL = TTL_SEMI_STATIC_MEDIUM // 2 hours
	TTL_CATEGORIES_ALL  = TTL_STATIC_LONG        // 24 hours
)

// ================== USERS MODULE ==================

const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":users:profile:uuid:" // + user-id
)

const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT // 6 hours
)

// ================== AUTH MODULE ==================

const (
	CACHE_KEY_REVOKED_TOKEN = CACHE_PREFIX + ":auth:revoked:jti:" // + token-id
)

// ================== BOOKINGS MODULE ==================

const (
	CACHE_KEY_USER_BOOKINGS = CACHE_PREFIX + ":bookings:user:uuid:" // + user-id
	CACHE_KEY_BOOKING_STATS = CACHE_PREFIX + ":bookings:stats:day:" // + yyyy-mm-dd
)

const (
	TTL_USER_BOOKINGS = TTL_DYNAMIC_MEDIUM // 10 minutes
	TTL_BOOKING_STATS = TTL_DYNAMIC_SHORT  // 5 minutes
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_PERIODS_ALL    = CACHE_PREFIX + ":periods:*"
	PATTERN_INVALIDATE_ACTIVITIES_ALL = CACHE_PREFIX + ":activities:*"
	PATTERN_INVALIDATE_BOOKING_STATS  = CACHE_PREFIX + ":bookings:stats:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildPeriodDetailKey(periodID string) string {
	return CACHE_KEY_PERIOD_DETAIL + periodID
}

// BuildActivityListKey -> "zombieland:activities:list:page:1:limit:10:category:xyz:q:zombie"
func BuildActivityListKey(page, limit int, categoryID, search string) string {
	return fmt.Sprintf("%s:page:%d:limit:%d:category:%s:q:%s", CACHE_KEY_ACTIVITIES_LIST, page, limit, categoryID, search)
}

func BuildActivityDetailKey(activityID string) string {
	return CACHE_KEY_ACTIVITY_DETAIL + activityID
}

func BuildUserProfileKey(userID string) string {
	return CACHE_KEY_USER_PROFILE + userID
}

func BuildUserBookingsKey(userID string) string {
	return CACHE_KEY_USER_BOOKINGS + userID
}

func BuildBookingStatsKey(day string) string {
	return CACHE_KEY_BOOKING_STATS + day
}
