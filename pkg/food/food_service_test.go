package food_test

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"naengyo-backend/domain"
	"naengyo-backend/entities"
	"naengyo-backend/pkg/food"
)

// today used by every test; the service clock is pinned to it.
var testToday = time.Date(2024, 1, 8, 10, 30, 0, 0, time.UTC)

type fakeMailer struct {
	sentTo      string
	sentSubject string
	sentBody    string
	calls       int
}

func (f *fakeMailer) SendMail(toEmail, subject, body string) error {
	f.calls++
	f.sentTo = toEmail
	f.sentSubject = subject
	f.sentBody = body
	return nil
}

func newTestService(t *testing.T) (food.FoodService, *fakeMailer) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.FoodItem{}))

	mailer := &fakeMailer{}
	repo := food.NewFoodRepository(db)
	svc := food.NewFoodServiceWithClock(repo, mailer, func() time.Time { return testToday })
	return svc, mailer
}

func addItem(t *testing.T, svc food.FoodService, name, expiry string) domain.FoodItemResponse {
	t.Helper()
	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:         name,
		Category:     "other",
		PurchaseDate: "2024-01-01",
		ExpiryDate:   expiry,
		Location:     entities.LocationRefrigerated,
	})
	require.NoError(t, err)
	return res
}

func strPtr(s string) *string { return &s }

func TestAddFoodItemRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	added, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:         "milk",
		Category:     "dairy",
		PurchaseDate: "2024-01-01",
		ExpiryDate:   "2024-01-10",
		Location:     entities.LocationRefrigerated,
		Quantity:     2,
		Unit:         "l",
		Memo:         strPtr("opened on monday"),
	})
	require.NoError(t, err)
	assert.NotZero(t, added.ID)
	assert.False(t, added.CreatedAt.IsZero())
	assert.False(t, added.UpdatedAt.IsZero())

	got, err := svc.GetFoodItemByID(context.Background(), added.ID)
	require.NoError(t, err)
	assert.Equal(t, "milk", got.Name)
	assert.Equal(t, "dairy", got.Category)
	assert.Equal(t, "2024-01-01", got.PurchaseDate)
	assert.Equal(t, "2024-01-10", got.ExpiryDate)
	assert.Equal(t, entities.LocationRefrigerated, got.Location)
	assert.Equal(t, 2.0, got.Quantity)
	assert.Equal(t, "l", got.Unit)
	require.NotNil(t, got.Memo)
	assert.Equal(t, "opened on monday", *got.Memo)
	assert.Equal(t, entities.StatusNearExpiry, got.Status)
	assert.Equal(t, 2, got.DaysUntilExpiry)
}

func TestAddFoodItemDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	res := addItem(t, svc, "apple", "2024-02-01")
	assert.Equal(t, 1.0, res.Quantity)
	assert.Equal(t, entities.UnitCount, res.Unit)
	assert.Equal(t, entities.StatusFresh, res.Status)
}

func TestAddFoodItemValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	base := domain.AddFoodItemRequest{
		Name:         "eggs",
		Category:     "other",
		PurchaseDate: "2024-01-05",
		ExpiryDate:   "2024-02-01",
		Location:     entities.LocationRefrigerated,
	}

	tests := []struct {
		name    string
		mutate  func(r *domain.AddFoodItemRequest)
		wantErr error
	}{
		{"empty name", func(r *domain.AddFoodItemRequest) { r.Name = "  " }, domain.ErrNameRequired},
		{"expiry before purchase", func(r *domain.AddFoodItemRequest) { r.ExpiryDate = "2024-01-04" }, domain.ErrExpiryBeforePurchase},
		{"bad date format", func(r *domain.AddFoodItemRequest) { r.ExpiryDate = "01/04/2024" }, domain.ErrInvalidDateFormat},
		{"negative quantity", func(r *domain.AddFoodItemRequest) { r.Quantity = -1 }, domain.ErrInvalidQuantity},
		{"unknown category", func(r *domain.AddFoodItemRequest) { r.Category = "uranium" }, domain.ErrInvalidCategory},
		{"unknown location", func(r *domain.AddFoodItemRequest) { r.Location = "attic" }, domain.ErrInvalidLocation},
		{"unknown unit", func(r *domain.AddFoodItemRequest) { r.Unit = "barrel" }, domain.ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := svc.AddFoodItem(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing was persisted by the rejected requests.
	items, err := svc.GetFoodItems(ctx, "all")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestExpiryEqualToPurchaseIsAllowed(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:         "fresh bread",
		Category:     "grain",
		PurchaseDate: "2024-01-08",
		ExpiryDate:   "2024-01-08",
		Location:     entities.LocationRoomTemp,
	})
	assert.NoError(t, err)
}

func TestListAllSortedByExpiryThenID(t *testing.T) {
	svc, _ := newTestService(t)

	addItem(t, svc, "late", "2024-02-01")
	addItem(t, svc, "early", "2024-01-09")
	addItem(t, svc, "early-too", "2024-01-09")

	items, err := svc.GetFoodItems(context.Background(), "all")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "early", items[0].Name)
	assert.Equal(t, "early-too", items[1].Name)
	assert.Equal(t, "late", items[2].Name)
}

func TestExpiringWithinAndExpired(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// expiry = today+1, today+5, today-2
	addItem(t, svc, "tomorrow", "2024-01-09")
	addItem(t, svc, "next-week", "2024-01-13")
	addItem(t, svc, "gone", "2024-01-06")

	expiring, err := svc.GetExpiringItems(ctx, 3)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "tomorrow", expiring[0].Name)

	expired, err := svc.GetExpiredItems(ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "gone", expired[0].Name)
}

func TestExpiringWithinZeroDays(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	addItem(t, svc, "today-item", "2024-01-08")
	addItem(t, svc, "tomorrow-item", "2024-01-09")

	items, err := svc.GetExpiringItems(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "today-item", items[0].Name)
}

func TestExpiringWithinRejectsNegativeDays(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetExpiringItems(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidDaysRange)
}

func TestExpiredSortedMostRecentFirst(t *testing.T) {
	svc, _ := newTestService(t)

	addItem(t, svc, "long-gone", "2024-01-02")
	addItem(t, svc, "just-gone", "2024-01-07")

	expired, err := svc.GetExpiredItems(context.Background())
	require.NoError(t, err)
	require.Len(t, expired, 2)
	assert.Equal(t, "just-gone", expired[0].Name)
	assert.Equal(t, "long-gone", expired[1].Name)
}

func TestUpdatePartialFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	added := addItem(t, svc, "cheese", "2024-01-20")

	res, err := svc.UpdateFoodItem(ctx, added.ID, domain.UpdateFoodItemRequest{
		Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Quantity)
	// untouched fields survive
	assert.Equal(t, "cheese", res.Name)
	assert.Equal(t, "2024-01-20", res.ExpiryDate)
	assert.Equal(t, "2024-01-01", res.PurchaseDate)
}

func TestUpdateRejectsExpiryBeforePurchase(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	added := addItem(t, svc, "yogurt", "2024-01-20")

	// purchaseDate is 2024-01-01; one day earlier must be rejected
	_, err := svc.UpdateFoodItem(ctx, added.ID, domain.UpdateFoodItemRequest{
		ExpiryDate: "2023-12-31",
	})
	assert.ErrorIs(t, err, domain.ErrExpiryBeforePurchase)

	// stored record unchanged
	got, err := svc.GetFoodItemByID(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-20", got.ExpiryDate)
}

func TestUpdateMissingItem(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateFoodItem(context.Background(), 999, domain.UpdateFoodItemRequest{Name: "ghost"})
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestDeleteFoodItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	added := addItem(t, svc, "leftovers", "2024-01-10")

	deleted, err := svc.DeleteFoodItem(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = svc.GetFoodItemByID(ctx, added.ID)
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestDeleteMissingItemReturnsFalse(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	addItem(t, svc, "keeper", "2024-01-10")

	before, err := svc.GetFoodItems(ctx, "all")
	require.NoError(t, err)

	deleted, err := svc.DeleteFoodItem(ctx, 12345)
	require.NoError(t, err)
	assert.False(t, deleted)

	after, err := svc.GetFoodItems(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGetFoodItemsStatusFilter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	addItem(t, svc, "fresh-item", "2024-02-01")
	addItem(t, svc, "near-item", "2024-01-09")
	addItem(t, svc, "expired-item", "2024-01-05")

	near, err := svc.GetFoodItems(ctx, entities.StatusNearExpiry)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, "near-item", near[0].Name)

	all, err := svc.GetFoodItems(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDashboardStats(t *testing.T) {
	svc, _ := newTestService(t)

	addItem(t, svc, "fresh-item", "2024-02-01")
	addItem(t, svc, "near-item", "2024-01-09")
	addItem(t, svc, "expired-item", "2024-01-05")

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalItems)
	assert.Equal(t, 1, stats.FreshItems)
	assert.Equal(t, 1, stats.NearExpiryItems)
	assert.Equal(t, 1, stats.ExpiredItems)
	assert.Equal(t, 3, stats.RefrigeratedItems)
}

func TestSendExpiryDigest(t *testing.T) {
	svc, mailer := newTestService(t)

	addItem(t, svc, "near-item", "2024-01-09")
	addItem(t, svc, "expired-item", "2024-01-05")
	addItem(t, svc, "fresh-item", "2024-03-01")

	res, err := svc.SendExpiryDigest(context.Background(), "home@example.com")
	require.NoError(t, err)
	assert.True(t, res.DigestDelivered)
	assert.Equal(t, 1, res.ExpiringItems)
	assert.Equal(t, 1, res.ExpiredItems)

	assert.Equal(t, 1, mailer.calls)
	assert.Equal(t, "home@example.com", mailer.sentTo)
	assert.Contains(t, mailer.sentBody, "near-item")
	assert.Contains(t, mailer.sentBody, "expired-item")
	assert.NotContains(t, mailer.sentBody, "fresh-item")
}

func TestSendExpiryDigestWithoutRecipient(t *testing.T) {
	svc, mailer := newTestService(t)

	_, err := svc.SendExpiryDigest(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrDigestRecipientUnset)
	assert.Zero(t, mailer.calls)
}
