package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the Hawabodol application.
// Pattern: hawabodol:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static data (rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour
	TTL_STATIC_SHORT = 6 * time.Hour
)

// Semi-static data (changes occasionally)
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute
)

// Dynamic data (changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute
	TTL_DYNAMIC_SHORT  = 5 * time.Minute
)

const (
	CACHE_PREFIX = "hawabodol"
)

// ================== PACKAGES MODULE ==================

const (
	CACHE_KEY_PACKAGES_LIST     = CACHE_PREFIX + ":packages:list"         // + :page:X:limit:Y:...
	CACHE_KEY_PACKAGES_FEATURED = CACHE_PREFIX + ":packages:featured"     // + :limit:X
	CACHE_KEY_PACKAGE_DETAIL    = CACHE_PREFIX + ":packages:detail:uuid:" // + package-id
)

const (
	TTL_PACKAGES_LIST     = TTL_SEMI_STATIC_QUICK // seat counts go stale fast
	TTL_PACKAGES_FEATURED = TTL_SEMI_STATIC_SHORT
	TTL_PACKAGE_DETAIL    = TTL_DYNAMIC_MEDIUM
)

// ================== OPERATORS MODULE ==================

const (
	CACHE_KEY_OPERATOR_PROFILE = CACHE_PREFIX + ":operators:profile:uuid:" // + operator-id
)

const (
	TTL_OPERATOR_PROFILE = TTL_STATIC_SHORT
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_PACKAGES_ALL   = CACHE_PREFIX + ":packages:*"
	PATTERN_INVALIDATE_PACKAGE_DETAIL = CACHE_PREFIX + ":packages:detail:uuid:" // + package-id + *
	PATTERN_INVALIDATE_OPERATORS_ALL  = CACHE_PREFIX + ":operators:*"
)

// ================== KEY BUILDERS ==================

func BuildPackageListKey(page, limit int, location, status string) string {
	key := fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_PACKAGES_LIST, page, limit)
	if location != "" {
		key += ":location:" + location
	}
	if status != "" {
		key += ":status:" + status
	}
	return key
}

func BuildPackageDetailKey(packageID string) string {
	return CACHE_KEY_PACKAGE_DETAIL + packageID
}

func BuildFeaturedPackagesKey(limit int) string {
	return fmt.Sprintf("%s:limit:%d", CACHE_KEY_PACKAGES_FEATURED, limit)
}

func BuildOperatorProfileKey(operatorID string) string {
	return CACHE_KEY_OPERATOR_PROFILE + operatorID
}
