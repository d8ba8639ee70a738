package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"naengyo-backend/domain"
	"naengyo-backend/entities"
	"naengyo-backend/internal/utils"
	"naengyo-backend/pkg/food"
)

const defaultCalendarBaseURL = "https://www.googleapis.com"

// EventMarker tags every event this app creates so cleanup never touches the
// user's own calendar entries.
const EventMarker = "Added automatically by the Naengyo fridge tracker."

type (
	CalendarService interface {
		AuthURL() string
		Exchange(ctx context.Context, code string) error
		SyncFoodItems(ctx context.Context) (domain.CalendarSyncResponse, error)
		DeleteExpiryEvents(ctx context.Context) (domain.CalendarCleanupResponse, error)
	}

	calendarService struct {
		foodRepository food.FoodRepository
		baseURL        string
		oauthConfig    *oauth2.Config
		tokenFile      string
		client         *http.Client
	}
)

func NewCalendarService(foodRepository food.FoodRepository) CalendarService {
	tokenFile := utils.GetConfig("GOOGLE_TOKEN_FILE")
	if tokenFile == "" {
		tokenFile = "token.json"
	}

	s := &calendarService{
		foodRepository: foodRepository,
		baseURL:        defaultCalendarBaseURL,
		tokenFile:      tokenFile,
		oauthConfig: &oauth2.Config{
			ClientID:     utils.GetConfig("GOOGLE_CLIENT_ID"),
			ClientSecret: utils.GetConfig("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
			Scopes:       []string{"https://www.googleapis.com/auth/calendar"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
		},
	}

	if token, err := loadToken(tokenFile); err == nil {
		// The oauth2 client refreshes expired tokens transparently.
		s.client = s.oauthConfig.Client(context.Background(), token)
	}

	return s
}

// NewCalendarServiceWith is used by tests to target a fake API server with a
// plain HTTP client.
func NewCalendarServiceWith(foodRepository food.FoodRepository, baseURL string, client *http.Client) CalendarService {
	return &calendarService{
		foodRepository: foodRepository,
		baseURL:        baseURL,
		client:         client,
	}
}

func (s *calendarService) AuthURL() string {
	if s.oauthConfig == nil {
		return ""
	}
	return s.oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

func (s *calendarService) Exchange(ctx context.Context, code string) error {
	if s.oauthConfig == nil {
		return domain.ErrCalendarNotAuthorized
	}
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return domain.ErrCalendarNotAuthorized
	}

	if err := saveToken(s.tokenFile, token); err != nil {
		return err
	}

	s.client = s.oauthConfig.Client(context.Background(), token)
	return nil
}

func (s *calendarService) SyncFoodItems(ctx context.Context) (domain.CalendarSyncResponse, error) {
	if s.client == nil {
		return domain.CalendarSyncResponse{}, domain.ErrCalendarNotAuthorized
	}

	foodItems, err := s.foodRepository.GetFoodItems(ctx)
	if err != nil {
		return domain.CalendarSyncResponse{}, err
	}

	var response domain.CalendarSyncResponse
	for _, item := range foodItems {
		if err := s.createExpiryEvent(ctx, item); err != nil {
			response.FailCount++
			continue
		}
		response.SuccessCount++
	}

	return response, nil
}

func (s *calendarService) createExpiryEvent(ctx context.Context, item *entities.FoodItem) error {
	expiry := item.ExpiryDate.Format("2006-01-02")

	description := fmt.Sprintf(
		"Fridge expiry reminder\n\nFood: %s\nCategory: %s\nStorage: %s\nQuantity: %g %s\nExpiry date: %s\n\n%s",
		item.Name, item.Category, item.Location, item.Quantity, item.Unit, expiry, EventMarker,
	)

	event := map[string]interface{}{
		"summary":     fmt.Sprintf("Expiry: %s", item.Name),
		"description": description,
		"start":       map[string]string{"date": expiry},
		"end":         map[string]string{"date": expiry},
		"reminders": map[string]interface{}{
			"useDefault": false,
			"overrides": []map[string]interface{}{
				{"method": "popup", "minutes": 24 * 60},
				{"method": "popup", "minutes": 3 * 24 * 60},
			},
		},
		"colorId": "11",
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/calendar/v3/calendars/primary/events", s.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("calendar API error: %s - %s", resp.Status, string(bodyBytes))
	}

	return nil
}

func (s *calendarService) DeleteExpiryEvents(ctx context.Context) (domain.CalendarCleanupResponse, error) {
	if s.client == nil {
		return domain.CalendarCleanupResponse{}, domain.ErrCalendarNotAuthorized
	}

	now := time.Now().UTC()
	query := url.Values{}
	query.Set("timeMin", now.Format(time.RFC3339))
	query.Set("timeMax", now.AddDate(1, 0, 0).Format(time.RFC3339))
	query.Set("q", "Expiry")
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")

	listURL := fmt.Sprintf("%s/calendar/v3/calendars/primary/events?%s", s.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return domain.CalendarCleanupResponse{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.CalendarCleanupResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.CalendarCleanupResponse{}, fmt.Errorf("calendar API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var eventList struct {
		Items []struct {
			ID          string `json:"id"`
			Description string `json:"description"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&eventList); err != nil {
		return domain.CalendarCleanupResponse{}, err
	}

	var response domain.CalendarCleanupResponse
	for _, event := range eventList.Items {
		if !strings.Contains(event.Description, EventMarker) {
			continue
		}

		deleteURL := fmt.Sprintf("%s/calendar/v3/calendars/primary/events/%s", s.baseURL, event.ID)
		delReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
		if err != nil {
			continue
		}

		delResp, err := s.client.Do(delReq)
		if err != nil {
			continue
		}
		delResp.Body.Close()

		if delResp.StatusCode == http.StatusNoContent || delResp.StatusCode == http.StatusOK {
			response.DeletedCount++
		}
	}

	return response, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
