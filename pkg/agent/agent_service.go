package agent

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"naengyo-backend/domain"
	"naengyo-backend/entities"
	"naengyo-backend/internal/utils"
	"naengyo-backend/internal/utils/images"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

type (
	AgentService interface {
		AnalyzeFoodImage(ctx context.Context, imageData []byte, mimeType string) (domain.FoodAnalysisResult, error)
		EstimateShelfLife(ctx context.Context, req domain.ShelfLifeRequest) domain.ShelfLifeEstimate
		SuggestRecipes(ctx context.Context, ingredients []string) (string, error)
	}

	agentService struct {
		baseURL string
		apiKey  string
		model   string
		client  *http.Client
	}
)

func NewAgentService() AgentService {
	baseURL := utils.GetConfig("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &agentService{
		baseURL: baseURL,
		apiKey:  utils.GetConfig("GEMINI_API_KEY"),
		model:   utils.GetConfig("GEMINI_MODEL"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewAgentServiceWith is used by tests to point the service at a fake server.
func NewAgentServiceWith(baseURL, apiKey, model string, client *http.Client) AgentService {
	return &agentService{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  client,
	}
}

func (s *agentService) AnalyzeFoodImage(ctx context.Context, imageData []byte, mimeType string) (domain.FoodAnalysisResult, error) {
	if len(imageData) == 0 {
		return domain.FoodAnalysisResult{}, domain.ErrInvalidImageFormat
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	imageData = images.NormalizeOrientation(imageData)
	base64Image := base64.StdEncoding.EncodeToString(imageData)

	today := time.Now().Format("2006-01-02")
	prompt := fmt.Sprintf(`Analyze the food in this image. Today's date: %s.

If a date is printed on the packaging, read it with OCR and use it to compute
the real remaining shelf life. A code printed on an egg shell is the laying
date; refrigerated eggs keep for 40 days after that.

Respond ONLY with a valid JSON object containing exactly these fields:
"name" (string, specific food name),
"category" (one of: %s),
"estimated_shelf_life_days" (integer, remaining days from today),
"location" (one of: %s),
"quantity" (integer, count the visible items),
"confidence" (integer between 0 and 100),
"detected_date" (string YYYY-MM-DD read from the image, or null).

If the image does not show food, set confidence to 0.
Do not include any explanations, markdown formatting, or extra text.`,
		today,
		strings.Join(entities.Categories, "/"),
		strings.Join(entities.Locations, "/"),
	)

	parts := []map[string]interface{}{
		{"text": prompt},
		{
			"inline_data": map[string]interface{}{
				"mime_type": mimeType,
				"data":      base64Image,
			},
		},
	}

	responseText, err := s.generateContent(ctx, parts, 0.1)
	if err != nil {
		return domain.FoodAnalysisResult{}, err
	}

	var result domain.FoodAnalysisResult
	if err := json.Unmarshal([]byte(extractJSON(responseText)), &result); err != nil {
		return domain.FoodAnalysisResult{}, fmt.Errorf("failed to parse analysis response: %w - raw response: %s", err, responseText)
	}

	if result.Name == "" {
		result.Name = "unknown food"
	}
	if result.Quantity <= 0 {
		result.Quantity = 1
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 100 {
		result.Confidence = 100
	}
	result.Uncertain = result.Confidence <= domain.UncertainConfidenceThreshold

	return result, nil
}

// EstimateShelfLife never fails: any transport or parse error falls back to
// a generic one-week estimate rather than blocking manual entry.
func (s *agentService) EstimateShelfLife(ctx context.Context, req domain.ShelfLifeRequest) domain.ShelfLifeEstimate {
	fallback := domain.ShelfLifeEstimate{
		EstimatedDays: 7,
		MinDays:       5,
		MaxDays:       10,
		Tips:          "Using a generic storage window; check the packaging.",
	}

	prompt := fmt.Sprintf(`Food name: %s
Category: %s
Storage location: %s

Give the typical shelf life for this food. Respond ONLY with a valid JSON
object containing exactly these fields:
"estimated_days" (integer), "min_days" (integer), "max_days" (integer),
"tips" (string, one or two short sentences of storage advice).
Do not include any explanations, markdown formatting, or extra text.`,
		req.Name, req.Category, req.Location)

	responseText, err := s.generateContent(ctx, []map[string]interface{}{{"text": prompt}}, 0.1)
	if err != nil {
		log.Printf("shelf life estimation failed, using fallback: %v", err)
		return fallback
	}

	var estimate domain.ShelfLifeEstimate
	if err := json.Unmarshal([]byte(extractJSON(responseText)), &estimate); err != nil {
		log.Printf("shelf life response unparseable, using fallback: %v", err)
		return fallback
	}
	if estimate.EstimatedDays <= 0 {
		return fallback
	}

	return estimate
}

func (s *agentService) SuggestRecipes(ctx context.Context, ingredients []string) (string, error) {
	if len(ingredients) == 0 {
		return "", domain.ErrNoIngredients
	}

	prompt := fmt.Sprintf(`The fridge contains these ingredients, listed soonest-to-expire first:
%s

Suggest 3 recipes that can be cooked with them. For each recipe give:
1. Dish name
2. Main ingredients used (from the list above)
3. Short preparation steps (3-4 steps)
4. Estimated cooking time

Prefer recipes that use the ingredients closest to expiry.`,
		strings.Join(ingredients, ", "))

	return s.generateContent(ctx, []map[string]interface{}{{"text": prompt}}, 0.7)
}

func (s *agentService) generateContent(ctx context.Context, parts []map[string]interface{}, temperature float64) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}
	if s.model == "" {
		return "", fmt.Errorf("GEMINI_MODEL not set")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": map[string]interface{}{
			"temperature": temperature,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrGeminiProcessingFailed
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSON digs a JSON object out of a model reply that may be wrapped in
// markdown fences or surrounding prose.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	if match := jsonPattern.FindString(text); match != "" {
		return match
	}
	return text
}
