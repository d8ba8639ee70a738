package handlers

import (
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"naengyo-backend/domain"
	"naengyo-backend/internal/api/presenters"
	"naengyo-backend/pkg/agent"
	"naengyo-backend/pkg/food"
)

type (
	AgentHandler interface {
		AnalyzeFoodImage(c *fiber.Ctx) error
		EstimateShelfLife(c *fiber.Ctx) error
		SuggestRecipes(c *fiber.Ctx) error
	}

	agentHandler struct {
		agentService agent.AgentService
		foodService  food.FoodService
		validator    *validator.Validate
	}
)

func NewAgentHandler(agentService agent.AgentService, foodService food.FoodService, validator *validator.Validate) AgentHandler {
	return &agentHandler{
		agentService: agentService,
		foodService:  foodService,
		validator:    validator,
	}
}

func (h *agentHandler) AnalyzeFoodImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReadImage, err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReadImage, err)
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedReadImage, err)
	}

	result, err := h.agentService.AnalyzeFoodImage(c.Context(), imageData, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedAnalyzeImage, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessAnalyzeImage)
}

func (h *agentHandler) EstimateShelfLife(c *fiber.Ctx) error {
	req := new(domain.ShelfLifeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShelfLife, err)
	}

	estimate := h.agentService.EstimateShelfLife(c.Context(), *req)

	return presenters.SuccessResponse(c, estimate, fiber.StatusOK, domain.MessageSuccessShelfLife)
}

func (h *agentHandler) SuggestRecipes(c *fiber.Ctx) error {
	req := new(domain.RecipeSuggestionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	ingredients := req.Ingredients
	if len(ingredients) == 0 {
		// Fall back to the inventory itself, soonest-to-expire first.
		items, err := h.foodService.GetFoodItems(c.Context(), "all")
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRecipes, err)
		}
		for _, item := range items {
			ingredients = append(ingredients, item.Name)
		}
	}

	suggestions, err := h.agentService.SuggestRecipes(c.Context(), ingredients)
	if err != nil {
		if errors.Is(err, domain.ErrNoIngredients) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageNoIngredientsInStore, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedRecipes, err)
	}

	return presenters.SuccessResponse(c, domain.RecipeSuggestionResponse{
		Ingredients: ingredients,
		Suggestions: suggestions,
	}, fiber.StatusOK, domain.MessageSuccessRecipes)
}
