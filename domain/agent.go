package domain

import (
	"errors"
)

var (
	MessageSuccessAnalyzeImage  = "food image analyzed successfully"
	MessageSuccessShelfLife     = "shelf life estimated successfully"
	MessageSuccessRecipes       = "recipe suggestions generated successfully"
	MessageFailedAnalyzeImage   = "failed to analyze food image"
	MessageFailedShelfLife      = "failed to estimate shelf life"
	MessageFailedRecipes        = "failed to generate recipe suggestions"
	MessageFailedReadImage      = "failed to read uploaded image"
	MessageNoIngredientsInStore = "no ingredients available for recipes"

	ErrGeminiProcessingFailed = errors.New("gemini processing failed")
	ErrNoIngredients          = errors.New("no ingredients available")
	ErrInvalidImageFormat     = errors.New("invalid image format")
)

// UncertainConfidenceThreshold: analysis results at or below this confidence
// are flagged so the caller never auto-applies them to the inventory.
const UncertainConfidenceThreshold = 50

type (
	FoodAnalysisResult struct {
		Name                   string  `json:"name"`
		Category               string  `json:"category"`
		EstimatedShelfLifeDays int     `json:"estimated_shelf_life_days"`
		Location               string  `json:"location"`
		Quantity               float64 `json:"quantity"`
		Confidence             int     `json:"confidence"`
		DetectedDate           *string `json:"detected_date,omitempty"`
		Uncertain              bool    `json:"uncertain"`
	}

	ShelfLifeRequest struct {
		Name     string `json:"name" validate:"required"`
		Category string `json:"category" validate:"omitempty"`
		Location string `json:"location" validate:"omitempty"`
	}

	ShelfLifeEstimate struct {
		EstimatedDays int    `json:"estimated_days"`
		MinDays       int    `json:"min_days"`
		MaxDays       int    `json:"max_days"`
		Tips          string `json:"tips"`
	}

	RecipeSuggestionRequest struct {
		Ingredients []string `json:"ingredients" validate:"omitempty"`
	}

	RecipeSuggestionResponse struct {
		Ingredients []string `json:"ingredients"`
		Suggestions string   `json:"suggestions"`
	}
)
