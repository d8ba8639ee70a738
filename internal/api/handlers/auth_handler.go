package handlers

import (
	"crypto/subtle"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"naengyo-backend/domain"
	"naengyo-backend/internal/api/presenters"
	"naengyo-backend/internal/utils"
	"naengyo-backend/pkg/jwt"
)

type (
	AuthHandler interface {
		Login(c *fiber.Ctx) error
	}

	authHandler struct {
		jwtService jwt.JWTService
		validator  *validator.Validate
	}

	loginRequest struct {
		Passcode string `json:"passcode" validate:"required"`
		Device   string `json:"device" validate:"omitempty,max=100"`
	}
)

func NewAuthHandler(jwtService jwt.JWTService, validator *validator.Validate) AuthHandler {
	return &authHandler{
		jwtService: jwtService,
		validator:  validator,
	}
}

// Login exchanges the household passcode for a bearer token. Single
// household, no user accounts.
func (h *authHandler) Login(c *fiber.Ctx) error {
	req := new(loginRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	passcode := utils.GetConfig("APP_PASSCODE")
	if passcode == "" || subtle.ConstantTimeCompare([]byte(req.Passcode), []byte(passcode)) != 1 {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedLogin, domain.ErrInvalidPasscode)
	}

	device := req.Device
	if device == "" {
		device = "unknown-device"
	}

	token, err := h.jwtService.GenerateToken(device)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedLogin, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"token": token}, fiber.StatusOK, domain.MessageSuccessLogin)
}
