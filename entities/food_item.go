package entities

import (
	"time"
)

const (
	LocationRefrigerated = "refrigerated"
	LocationFrozen       = "frozen"
	LocationRoomTemp     = "room-temperature"
)

const UnitCount = "count"

// Canonical enumerations shared by store validation and every caller.
// The UI renders from these lists, never from its own copies.
var (
	Categories = []string{
		"vegetable", "fruit", "meat", "seafood", "dairy",
		"beverage", "condiment", "grain", "side-dish", "instant", "other",
	}
	Locations = []string{LocationRefrigerated, LocationFrozen, LocationRoomTemp}
	Units     = []string{UnitCount, "kg", "g", "l", "ml", "pack", "bag"}
)

type FoodItem struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Category     string    `gorm:"size:50;not null" json:"category"`
	PurchaseDate time.Time `gorm:"not null" json:"purchase_date"`
	ExpiryDate   time.Time `gorm:"not null" json:"expiry_date"`
	Location     string    `gorm:"size:20;not null;default:refrigerated" json:"location"`
	Quantity     float64   `gorm:"default:1" json:"quantity"`
	Unit         string    `gorm:"size:20;default:count" json:"unit"`
	Memo         *string   `gorm:"size:200" json:"memo,omitempty"`

	Timestamp
}

func (f *FoodItem) DaysUntilExpiry(today time.Time) int {
	return DaysUntilExpiry(f.ExpiryDate, today)
}

func (f *FoodItem) Status(today time.Time) string {
	return DetermineStatus(f.ExpiryDate, today)
}

func ValidCategory(category string) bool {
	return contains(Categories, category)
}

func ValidLocation(location string) bool {
	return contains(Locations, location)
}

func ValidUnit(unit string) bool {
	return contains(Units, unit)
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
