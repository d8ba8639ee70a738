package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"naengyo-backend/entities"
	"naengyo-backend/internal/api/handlers"
	"naengyo-backend/internal/api/presenters"
	"naengyo-backend/pkg/food"
)

type nopMailer struct{}

func (nopMailer) SendMail(string, string, string) error { return nil }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.FoodItem{}))

	repo := food.NewFoodRepository(db)
	today := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	svc := food.NewFoodServiceWithClock(repo, nopMailer{}, func() time.Time { return today })
	h := handlers.NewFoodHandler(svc, validator.New())

	app := fiber.New()
	app.Post("/api/v1/food-items", h.AddFoodItem)
	app.Get("/api/v1/food-items", h.GetFoodItems)
	app.Get("/api/v1/food-items/expiring", h.GetExpiringItems)
	app.Get("/api/v1/food-items/expired", h.GetExpiredItems)
	app.Get("/api/v1/food-items/dashboard", h.GetDashboardStats)
	app.Get("/api/v1/food-items/:id", h.GetFoodItemDetails)
	app.Patch("/api/v1/food-items/:id", h.UpdateFoodItem)
	app.Delete("/api/v1/food-items/:id", h.DeleteFoodItem)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, presenters.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed presenters.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp, parsed
}

func addViaAPI(t *testing.T, app *fiber.App, name, expiry string) uint {
	t.Helper()

	resp, parsed := doJSON(t, app, http.MethodPost, "/api/v1/food-items", fiber.Map{
		"name":          name,
		"category":      "other",
		"purchase_date": "2024-01-01",
		"expiry_date":   expiry,
		"location":      "refrigerated",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data, _ := parsed.Data.(map[string]interface{})
	id, _ := data["id"].(float64)
	return uint(id)
}

func TestAddFoodItemEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp, parsed := doJSON(t, app, http.MethodPost, "/api/v1/food-items", fiber.Map{
		"name":          "milk",
		"category":      "dairy",
		"purchase_date": "2024-01-01",
		"expiry_date":   "2024-01-10",
		"location":      "refrigerated",
		"quantity":      2,
		"unit":          "l",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, parsed.Status)

	data, _ := parsed.Data.(map[string]interface{})
	assert.Equal(t, "milk", data["name"])
	assert.Equal(t, "NearExpiry", data["status"])
	assert.Equal(t, 2.0, data["days_until_expiry"])
}

func TestAddFoodItemEndpointRejectsBadDates(t *testing.T) {
	app := newTestApp(t)

	resp, parsed := doJSON(t, app, http.MethodPost, "/api/v1/food-items", fiber.Map{
		"name":          "milk",
		"category":      "dairy",
		"purchase_date": "2024-01-10",
		"expiry_date":   "2024-01-01",
		"location":      "refrigerated",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, parsed.Status)
	assert.Contains(t, parsed.Error, "expiry date")
}

func TestGetExpiringEndpoint(t *testing.T) {
	app := newTestApp(t)

	addViaAPI(t, app, "tomorrow", "2024-01-09")
	addViaAPI(t, app, "next-month", "2024-02-08")

	resp, parsed := doJSON(t, app, http.MethodGet, "/api/v1/food-items/expiring?days=3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, _ := parsed.Data.(map[string]interface{})
	assert.Equal(t, 1.0, data["total"])
}

func TestUpdateEndpointNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPatch, "/api/v1/food-items/999", fiber.Map{"name": "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteEndpoint(t *testing.T) {
	app := newTestApp(t)

	id := addViaAPI(t, app, "leftovers", "2024-01-10")

	resp, parsed := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/food-items/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ := parsed.Data.(map[string]interface{})
	assert.Equal(t, true, data["deleted"])

	// deleting again reports false without an error status
	resp, parsed = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/food-items/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ = parsed.Data.(map[string]interface{})
	assert.Equal(t, false, data["deleted"])
}
