package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"naengyo-backend/domain"
	"naengyo-backend/internal/api/presenters"
	"naengyo-backend/pkg/calendar"
)

type (
	CalendarHandler interface {
		GetAuthURL(c *fiber.Ctx) error
		ExchangeCode(c *fiber.Ctx) error
		SyncFoodItems(c *fiber.Ctx) error
		DeleteExpiryEvents(c *fiber.Ctx) error
	}

	calendarHandler struct {
		calendarService calendar.CalendarService
		validator       *validator.Validate
	}
)

func NewCalendarHandler(calendarService calendar.CalendarService, validator *validator.Validate) CalendarHandler {
	return &calendarHandler{
		calendarService: calendarService,
		validator:       validator,
	}
}

func calendarStatus(err error) int {
	if errors.Is(err, domain.ErrCalendarNotAuthorized) {
		return fiber.StatusUnauthorized
	}
	return fiber.StatusBadGateway
}

func (h *calendarHandler) GetAuthURL(c *fiber.Ctx) error {
	authURL := h.calendarService.AuthURL()
	if authURL == "" {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCalendarAuth, domain.ErrCalendarNotAuthorized)
	}

	return presenters.SuccessResponse(c, domain.CalendarAuthURLResponse{AuthURL: authURL}, fiber.StatusOK, domain.MessageSuccessCalendarAuth)
}

func (h *calendarHandler) ExchangeCode(c *fiber.Ctx) error {
	req := new(domain.CalendarExchangeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCalendarAuth, err)
	}

	if err := h.calendarService.Exchange(c.Context(), req.Code); err != nil {
		return presenters.ErrorResponse(c, calendarStatus(err), domain.MessageFailedCalendarAuth, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCalendarAuth)
}

func (h *calendarHandler) SyncFoodItems(c *fiber.Ctx) error {
	res, err := h.calendarService.SyncFoodItems(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, calendarStatus(err), domain.MessageFailedCalendarSync, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCalendarSync)
}

func (h *calendarHandler) DeleteExpiryEvents(c *fiber.Ctx) error {
	res, err := h.calendarService.DeleteExpiryEvents(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, calendarStatus(err), domain.MessageFailedCalendarCleanup, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCalendarCleanup)
}
