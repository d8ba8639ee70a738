package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddFoodItem    = "food item added successfully"
	MessageSuccessUpdateFoodItem = "food item updated successfully"
	MessageSuccessDeleteFoodItem = "food item deleted successfully"
	MessageSuccessGetFoodItems   = "food items retrieved successfully"
	MessageSuccessGetDashboard   = "dashboard statistics retrieved successfully"
	MessageSuccessSendDigest     = "expiry digest sent successfully"

	MessageFailedAddFoodItem    = "failed to add food item"
	MessageFailedUpdateFoodItem = "failed to update food item"
	MessageFailedDeleteFoodItem = "failed to delete food item"
	MessageFailedGetFoodItems   = "failed to retrieve food items"
	MessageFailedGetDashboard   = "failed to retrieve dashboard statistics"
	MessageFailedSendDigest     = "failed to send expiry digest"

	ErrFoodItemNotFound     = errors.New("food item not found")
	ErrNameRequired         = errors.New("name must not be empty")
	ErrInvalidDateFormat    = errors.New("dates must use the YYYY-MM-DD format")
	ErrExpiryBeforePurchase = errors.New("expiry date must not precede purchase date")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidCategory      = errors.New("unknown category")
	ErrInvalidLocation      = errors.New("unknown storage location")
	ErrInvalidUnit          = errors.New("unknown unit")
	ErrDigestRecipientUnset = errors.New("digest recipient email not configured")
)

type (
	AddFoodItemRequest struct {
		Name         string  `json:"name" validate:"required"`
		Category     string  `json:"category" validate:"required"`
		PurchaseDate string  `json:"purchase_date" validate:"required,datetime=2006-01-02"`
		ExpiryDate   string  `json:"expiry_date" validate:"required,datetime=2006-01-02"`
		Location     string  `json:"location" validate:"required"`
		Quantity     float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit         string  `json:"unit" validate:"omitempty"`
		Memo         *string `json:"memo" validate:"omitempty,max=200"`
	}

	UpdateFoodItemRequest struct {
		Name         string  `json:"name" validate:"omitempty"`
		Category     string  `json:"category" validate:"omitempty"`
		PurchaseDate string  `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
		ExpiryDate   string  `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
		Location     string  `json:"location" validate:"omitempty"`
		Quantity     float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit         string  `json:"unit" validate:"omitempty"`
		Memo         *string `json:"memo" validate:"omitempty,max=200"`
	}

	FoodItemResponse struct {
		ID              uint      `json:"id"`
		Name            string    `json:"name"`
		Category        string    `json:"category"`
		PurchaseDate    string    `json:"purchase_date"`
		ExpiryDate      string    `json:"expiry_date"`
		Location        string    `json:"location"`
		Quantity        float64   `json:"quantity"`
		Unit            string    `json:"unit"`
		Memo            *string   `json:"memo,omitempty"`
		Status          string    `json:"status"`
		DaysUntilExpiry int       `json:"days_until_expiry"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	DashboardStatsResponse struct {
		TotalItems        int `json:"total_items"`
		FreshItems        int `json:"fresh_items"`
		NearExpiryItems   int `json:"near_expiry_items"`
		ExpiredItems      int `json:"expired_items"`
		RefrigeratedItems int `json:"refrigerated_items"`
		FrozenItems       int `json:"frozen_items"`
		RoomTempItems     int `json:"room_temp_items"`
	}

	ExpiryDigestResponse struct {
		Recipient       string `json:"recipient"`
		ExpiringItems   int    `json:"expiring_items"`
		ExpiredItems    int    `json:"expired_items"`
		DigestDelivered bool   `json:"digest_delivered"`
	}
)
