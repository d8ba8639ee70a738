package food

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"naengyo-backend/domain"
	"naengyo-backend/entities"
	"naengyo-backend/internal/utils/mailing"
)

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error)
		GetFoodItemByID(ctx context.Context, id uint) (domain.FoodItemResponse, error)
		GetFoodItems(ctx context.Context, status string) ([]domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id uint, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id uint) (bool, error)
		GetExpiringItems(ctx context.Context, days int) ([]domain.FoodItemResponse, error)
		GetExpiredItems(ctx context.Context) ([]domain.FoodItemResponse, error)
		GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error)
		SendExpiryDigest(ctx context.Context, toEmail string) (domain.ExpiryDigestResponse, error)
	}

	foodService struct {
		foodRepository FoodRepository
		mailer         mailing.Mailer
		now            func() time.Time
	}
)

func NewFoodService(foodRepository FoodRepository, mailer mailing.Mailer) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		mailer:         mailer,
		now:            time.Now,
	}
}

// NewFoodServiceWithClock pins "today" for deterministic expiry tests.
func NewFoodServiceWithClock(foodRepository FoodRepository, mailer mailing.Mailer, now func() time.Time) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		mailer:         mailer,
		now:            now,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return domain.FoodItemResponse{}, domain.ErrNameRequired
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidDateFormat
	}
	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidDateFormat
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	unit := req.Unit
	if unit == "" {
		unit = entities.UnitCount
	}

	foodItem := &entities.FoodItem{
		Name:         req.Name,
		Category:     req.Category,
		PurchaseDate: entities.DateOnly(purchaseDate),
		ExpiryDate:   entities.DateOnly(expiryDate),
		Location:     req.Location,
		Quantity:     quantity,
		Unit:         unit,
		Memo:         req.Memo,
	}

	if err := validateFoodItem(foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return s.toResponse(foodItem), nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id uint) (domain.FoodItemResponse, error) {
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodItemResponse{}, domain.ErrFoodItemNotFound
		}
		return domain.FoodItemResponse{}, err
	}

	return s.toResponse(foodItem), nil
}

func (s *foodService) GetFoodItems(ctx context.Context, status string) ([]domain.FoodItemResponse, error) {
	foodItems, err := s.foodRepository.GetFoodItems(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now()
	response := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		// Status is derived at read time, so status filtering happens here
		// rather than in SQL.
		if status != "" && status != "all" && item.Status(today) != status {
			continue
		}
		response = append(response, s.toResponse(item))
	}

	return response, nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id uint, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error) {
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodItemResponse{}, domain.ErrFoodItemNotFound
		}
		return domain.FoodItemResponse{}, err
	}

	// Apply the partial update to a copy first so a validation failure
	// leaves the stored record untouched.
	updated := *foodItem

	if req.Name != "" {
		updated.Name = req.Name
	}
	if req.Category != "" {
		updated.Category = req.Category
	}
	if req.PurchaseDate != "" {
		purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidDateFormat
		}
		updated.PurchaseDate = entities.DateOnly(purchaseDate)
	}
	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidDateFormat
		}
		updated.ExpiryDate = entities.DateOnly(expiryDate)
	}
	if req.Location != "" {
		updated.Location = req.Location
	}
	if req.Quantity > 0 {
		updated.Quantity = req.Quantity
	}
	if req.Unit != "" {
		updated.Unit = req.Unit
	}
	if req.Memo != nil {
		updated.Memo = req.Memo
	}

	if err := validateFoodItem(&updated); err != nil {
		return domain.FoodItemResponse{}, err
	}

	if err := s.foodRepository.UpdateFoodItem(ctx, &updated); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return s.toResponse(&updated), nil
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id uint) (bool, error) {
	return s.foodRepository.DeleteFoodItem(ctx, id)
}

func (s *foodService) GetExpiringItems(ctx context.Context, days int) ([]domain.FoodItemResponse, error) {
	if days < 0 {
		return nil, domain.ErrInvalidDaysRange
	}

	today := entities.DateOnly(s.now())
	endDate := today.AddDate(0, 0, days)

	foodItems, err := s.foodRepository.GetFoodItemsByExpiryRange(ctx, today, endDate)
	if err != nil {
		return nil, err
	}

	response := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		response = append(response, s.toResponse(item))
	}
	return response, nil
}

func (s *foodService) GetExpiredItems(ctx context.Context) ([]domain.FoodItemResponse, error) {
	today := entities.DateOnly(s.now())

	foodItems, err := s.foodRepository.GetExpiredFoodItems(ctx, today)
	if err != nil {
		return nil, err
	}

	response := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		response = append(response, s.toResponse(item))
	}
	return response, nil
}

func (s *foodService) GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error) {
	foodItems, err := s.foodRepository.GetFoodItems(ctx)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	today := s.now()
	stats := domain.DashboardStatsResponse{TotalItems: len(foodItems)}
	for _, item := range foodItems {
		switch item.Status(today) {
		case entities.StatusFresh:
			stats.FreshItems++
		case entities.StatusNearExpiry:
			stats.NearExpiryItems++
		case entities.StatusExpired:
			stats.ExpiredItems++
		}

		switch item.Location {
		case entities.LocationRefrigerated:
			stats.RefrigeratedItems++
		case entities.LocationFrozen:
			stats.FrozenItems++
		case entities.LocationRoomTemp:
			stats.RoomTempItems++
		}
	}

	return stats, nil
}

func (s *foodService) SendExpiryDigest(ctx context.Context, toEmail string) (domain.ExpiryDigestResponse, error) {
	if toEmail == "" {
		return domain.ExpiryDigestResponse{}, domain.ErrDigestRecipientUnset
	}

	expiring, err := s.GetExpiringItems(ctx, entities.NearExpiryThresholdDays)
	if err != nil {
		return domain.ExpiryDigestResponse{}, err
	}
	expired, err := s.GetExpiredItems(ctx)
	if err != nil {
		return domain.ExpiryDigestResponse{}, err
	}

	body := buildDigestBody(expiring, expired)
	if err := s.mailer.SendMail(toEmail, "Fridge expiry digest", body); err != nil {
		return domain.ExpiryDigestResponse{}, err
	}

	return domain.ExpiryDigestResponse{
		Recipient:       toEmail,
		ExpiringItems:   len(expiring),
		ExpiredItems:    len(expired),
		DigestDelivered: true,
	}, nil
}

func (s *foodService) toResponse(item *entities.FoodItem) domain.FoodItemResponse {
	today := s.now()
	return domain.FoodItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		PurchaseDate:    item.PurchaseDate.Format("2006-01-02"),
		ExpiryDate:      item.ExpiryDate.Format("2006-01-02"),
		Location:        item.Location,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		Memo:            item.Memo,
		Status:          item.Status(today),
		DaysUntilExpiry: item.DaysUntilExpiry(today),
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// validateFoodItem enforces the store invariants on the full record; both
// add and update go through it so no mutation can slip past.
func validateFoodItem(item *entities.FoodItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return domain.ErrNameRequired
	}
	if item.ExpiryDate.Before(item.PurchaseDate) {
		return domain.ErrExpiryBeforePurchase
	}
	if item.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !entities.ValidCategory(item.Category) {
		return domain.ErrInvalidCategory
	}
	if !entities.ValidLocation(item.Location) {
		return domain.ErrInvalidLocation
	}
	if !entities.ValidUnit(item.Unit) {
		return domain.ErrInvalidUnit
	}
	return nil
}

func buildDigestBody(expiring, expired []domain.FoodItemResponse) string {
	var b strings.Builder
	b.WriteString("<h2>Fridge expiry digest</h2>")

	b.WriteString(fmt.Sprintf("<h3>Expiring within %d days</h3>", entities.NearExpiryThresholdDays))
	if len(expiring) == 0 {
		b.WriteString("<p>Nothing expiring soon.</p>")
	} else {
		b.WriteString("<ul>")
		for _, item := range expiring {
			b.WriteString(fmt.Sprintf("<li>%s (%g %s) - D-%d, expires %s</li>",
				item.Name, item.Quantity, item.Unit, item.DaysUntilExpiry, item.ExpiryDate))
		}
		b.WriteString("</ul>")
	}

	b.WriteString("<h3>Already expired</h3>")
	if len(expired) == 0 {
		b.WriteString("<p>Nothing expired. Nice.</p>")
	} else {
		b.WriteString("<ul>")
		for _, item := range expired {
			b.WriteString(fmt.Sprintf("<li>%s (%g %s) - expired %s</li>",
				item.Name, item.Quantity, item.Unit, item.ExpiryDate))
		}
		b.WriteString("</ul>")
	}

	return b.String()
}
