package domain

import (
	"errors"
)

var (
	MessageSuccessCalendarSync    = "food items synced to calendar"
	MessageSuccessCalendarCleanup = "expiry events removed from calendar"
	MessageSuccessCalendarAuth    = "calendar authorization completed"
	MessageFailedCalendarSync     = "failed to sync food items to calendar"
	MessageFailedCalendarCleanup  = "failed to remove expiry events"
	MessageFailedCalendarAuth     = "failed to authorize calendar access"

	ErrCalendarNotAuthorized = errors.New("calendar access not authorized")
	ErrCalendarUnavailable   = errors.New("calendar service unavailable")
)

type (
	CalendarAuthURLResponse struct {
		AuthURL string `json:"auth_url"`
	}

	CalendarExchangeRequest struct {
		Code string `json:"code" validate:"required"`
	}

	CalendarSyncResponse struct {
		SuccessCount int `json:"success_count"`
		FailCount    int `json:"fail_count"`
	}

	CalendarCleanupResponse struct {
		DeletedCount int `json:"deleted_count"`
	}
)
