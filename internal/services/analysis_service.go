package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/maitri-app/maitri-backend/internal/config"
)

var (
	ErrImageRequired   = errors.New("image is required")
	ErrAINotConfigured = errors.New("AI analysis is not configured")
	ErrAIUnavailable   = errors.New("AI analysis is currently unavailable")
)

const analysisSystemPrompt = `You are an expert animal rescue assistant. Your task is to analyze images of animals to determine if they are injured and assess the situation.

Analyze the image and provide a JSON response with the following structure:
{
  "isAnimal": boolean,
  "animalType": string | null,
  "isInjured": boolean,
  "injuryDetails": {
    "severity": "low" | "medium" | "high" | "critical" | "unknown",
    "description": string,
    "condition": string
  },
  "environment": {
    "description": string,
    "safetyAssessment": string
  },
  "recommendations": string[]
}

If no animal is found, set isAnimal to false and other fields to null or empty.
If an animal is found but not injured, set isInjured to false.
Be precise and helpful. This data will be used to prioritize rescue efforts.`

// AnalysisResult is the typed classification contract. The model's reply is
// validated against it at this boundary rather than stored verbatim.
type AnalysisResult struct {
	IsAnimal        bool           `json:"isAnimal"`
	AnimalType      *string        `json:"animalType"`
	IsInjured       bool           `json:"isInjured"`
	InjuryDetails   *InjuryDetails `json:"injuryDetails,omitempty"`
	Environment     *Environment   `json:"environment,omitempty"`
	Recommendations []string       `json:"recommendations"`
}

type InjuryDetails struct {
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
}

type Environment struct {
	Description      string `json:"description"`
	SafetyAssessment string `json:"safetyAssessment"`
}

// --- OpenAI wire types (internal) ---

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	MaxTokens      int             `json:"max_tokens"`
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalysisService wraps the external vision-language classification call.
// The call is slow and may fail outright; callers surface that as a
// distinct upstream failure and persist nothing.
type AnalysisService struct {
	cfg    *config.Config
	client *http.Client
}

func NewAnalysisService(cfg *config.Config) *AnalysisService {
	return &AnalysisService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.AITimeout},
	}
}

// Analyze classifies an image (URL or base64 data URI) into a structured
// injury assessment. Severity outside the known set is coerced to unknown.
func (s *AnalysisService) Analyze(image string) (*AnalysisResult, error) {
	if strings.TrimSpace(image) == "" {
		return nil, ErrImageRequired
	}
	if s.cfg.OpenAIAPIKey == "" {
		return nil, ErrAINotConfigured
	}

	model := s.cfg.OpenAIModel
	if model == "" {
		model = "gpt-4o"
	}

	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: analysisSystemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: "Analyze this image for animal injuries."},
				{Type: "image_url", ImageURL: &imageURL{URL: image}},
			}},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
		MaxTokens:      1000,
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", s.cfg.OpenAIAPIURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.OpenAIAPIKey)

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIUnavailable, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(httpResp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrAIUnavailable, httpResp.StatusCode, string(bodyBytes))
	}

	var resp chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrAIUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrAIUnavailable)
	}

	content := cleanJSONContent(resp.Choices[0].Message.Content)

	var result AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse analysis: %v", ErrAIUnavailable, err)
	}

	if result.InjuryDetails != nil && !validSeverity(result.InjuryDetails.Severity) {
		result.InjuryDetails.Severity = "unknown"
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}

	return &result, nil
}

func validSeverity(s string) bool {
	switch s {
	case "low", "medium", "high", "critical", "unknown":
		return true
	}
	return false
}

func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
