package entities

import (
	"time"
)

// Freshness labels derived from the expiry date. Never persisted; always
// recomputed against "today" so they stay correct as time advances.
const (
	StatusFresh      = "Fresh"
	StatusNearExpiry = "NearExpiry"
	StatusExpired    = "Expired"
)

// NearExpiryThresholdDays is the number of remaining days at or below which
// an item counts as near expiry. Fixed policy for now; would become a config
// value if households ever need their own warning window.
const NearExpiryThresholdDays = 3

// DateOnly strips the time-of-day component. All expiry arithmetic works on
// calendar dates anchored at midnight UTC, so an item bought in the evening
// and one bought in the morning of the same day classify identically.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysUntilExpiry returns the signed number of whole calendar days between
// today and the expiry date. Negative once the item has expired.
func DaysUntilExpiry(expiryDate, today time.Time) int {
	return int(DateOnly(expiryDate).Sub(DateOnly(today)).Hours() / 24)
}

// DetermineStatus classifies an expiry date relative to today.
func DetermineStatus(expiryDate, today time.Time) string {
	days := DaysUntilExpiry(expiryDate, today)
	switch {
	case days < 0:
		return StatusExpired
	case days <= NearExpiryThresholdDays:
		return StatusNearExpiry
	default:
		return StatusFresh
	}
}
