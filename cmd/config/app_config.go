package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"naengyo-backend/internal/api/handlers"
	"naengyo-backend/internal/api/routes"
	"naengyo-backend/internal/middleware"
	"naengyo-backend/internal/utils"
	"naengyo-backend/internal/utils/mailing"
	"naengyo-backend/pkg/agent"
	"naengyo-backend/pkg/calendar"
	"naengyo-backend/pkg/food"
	"naengyo-backend/pkg/jwt"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	mailer := mailing.NewMailer()

	// Repository
	foodRepository := food.NewFoodRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	foodService := food.NewFoodService(foodRepository, mailer)
	agentService := agent.NewAgentService()
	calendarService := calendar.NewCalendarService(foodRepository)

	// Handler
	authHandler := handlers.NewAuthHandler(jwtService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	agentHandler := handlers.NewAgentHandler(agentService, foodService, validator)
	calendarHandler := handlers.NewCalendarHandler(calendarService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		AuthHandler:     authHandler,
		FoodHandler:     foodHandler,
		AgentHandler:    agentHandler,
		CalendarHandler: calendarHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
