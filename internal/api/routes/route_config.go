package routes

import (
	"github.com/gofiber/fiber/v2"

	"naengyo-backend/internal/api/handlers"
	"naengyo-backend/internal/middleware"
	"naengyo-backend/pkg/jwt"
)

type Config struct {
	App             *fiber.App
	AuthHandler     handlers.AuthHandler
	FoodHandler     handlers.FoodHandler
	AgentHandler    handlers.AgentHandler
	CalendarHandler handlers.CalendarHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.FoodItems()
	c.Agent()
	c.Calendar()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	auth.Post("/login", c.AuthHandler.Login)
}

func (c *Config) FoodItems() {
	foodItems := c.App.Group("/api/v1/food-items", c.Middleware.AuthMiddleware(c.JWTService))
	foodItems.Get("/dashboard", c.FoodHandler.GetDashboardStats)
	foodItems.Get("/expiring", c.FoodHandler.GetExpiringItems)
	foodItems.Get("/expired", c.FoodHandler.GetExpiredItems)
	foodItems.Post("/expiry-digest", c.FoodHandler.SendExpiryDigest)

	// Basic CRUD operations
	foodItems.Post("", c.FoodHandler.AddFoodItem)
	foodItems.Get("", c.FoodHandler.GetFoodItems)
	foodItems.Get("/:id", c.FoodHandler.GetFoodItemDetails)
	foodItems.Patch("/:id", c.FoodHandler.UpdateFoodItem)
	foodItems.Delete("/:id", c.FoodHandler.DeleteFoodItem)
}

func (c *Config) Agent() {
	agent := c.App.Group("/api/v1/agent", c.Middleware.AuthMiddleware(c.JWTService))
	agent.Post("/analyze-image", c.AgentHandler.AnalyzeFoodImage)
	agent.Post("/shelf-life", c.AgentHandler.EstimateShelfLife)
	agent.Post("/recipes", c.AgentHandler.SuggestRecipes)
}

func (c *Config) Calendar() {
	calendar := c.App.Group("/api/v1/calendar", c.Middleware.AuthMiddleware(c.JWTService))
	calendar.Get("/auth-url", c.CalendarHandler.GetAuthURL)
	calendar.Post("/exchange", c.CalendarHandler.ExchangeCode)
	calendar.Post("/sync", c.CalendarHandler.SyncFoodItems)
	calendar.Delete("/events", c.CalendarHandler.DeleteExpiryEvents)
}
