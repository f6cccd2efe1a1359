package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maitri-app/maitri-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisConfig(url string) *config.Config {
	return &config.Config{
		OpenAIAPIKey: "test-key",
		OpenAIAPIURL: url,
		OpenAIModel:  "gpt-4o",
		AITimeout:    5 * time.Second,
	}
}

func chatReply(t *testing.T, content string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		body := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}
}

func TestAnalyzeRequiresImage(t *testing.T) {
	svc := NewAnalysisService(analysisConfig("http://localhost"))

	_, err := svc.Analyze("")
	assert.ErrorIs(t, err, ErrImageRequired)
}

func TestAnalyzeNotConfigured(t *testing.T) {
	cfg := analysisConfig("http://localhost")
	cfg.OpenAIAPIKey = ""
	svc := NewAnalysisService(cfg)

	_, err := svc.Analyze("data:image/jpeg;base64,abc")
	assert.ErrorIs(t, err, ErrAINotConfigured)
}

func TestAnalyzeParsesAssessment(t *testing.T) {
	server := httptest.NewServer(chatReply(t, `{
		"isAnimal": true,
		"animalType": "dog",
		"isInjured": true,
		"injuryDetails": {"severity": "high", "description": "visible wound", "condition": "bleeding"},
		"environment": {"description": "busy road", "safetyAssessment": "unsafe - traffic nearby"},
		"recommendations": ["call rescue", "keep distance"]
	}`))
	defer server.Close()

	svc := NewAnalysisService(analysisConfig(server.URL))
	result, err := svc.Analyze("http://x/a.jpg")
	require.NoError(t, err)

	assert.True(t, result.IsAnimal)
	require.NotNil(t, result.AnimalType)
	assert.Equal(t, "dog", *result.AnimalType)
	assert.True(t, result.IsInjured)
	require.NotNil(t, result.InjuryDetails)
	assert.Equal(t, "high", result.InjuryDetails.Severity)
	assert.Len(t, result.Recommendations, 2)
}

func TestAnalyzeCoercesUnknownSeverity(t *testing.T) {
	server := httptest.NewServer(chatReply(t, `{
		"isAnimal": true,
		"animalType": "cat",
		"isInjured": true,
		"injuryDetails": {"severity": "catastrophic", "description": "", "condition": ""}
	}`))
	defer server.Close()

	svc := NewAnalysisService(analysisConfig(server.URL))
	result, err := svc.Analyze("http://x/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "unknown", result.InjuryDetails.Severity)
	assert.NotNil(t, result.Recommendations)
}

func TestAnalyzeStripsCodeFences(t *testing.T) {
	server := httptest.NewServer(chatReply(t, "```json\n{\"isAnimal\": false, \"animalType\": null, \"isInjured\": false}\n```"))
	defer server.Close()

	svc := NewAnalysisService(analysisConfig(server.URL))
	result, err := svc.Analyze("http://x/a.jpg")
	require.NoError(t, err)
	assert.False(t, result.IsAnimal)
	assert.Nil(t, result.AnimalType)
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewAnalysisService(analysisConfig(server.URL))
	_, err := svc.Analyze("http://x/a.jpg")
	assert.ErrorIs(t, err, ErrAIUnavailable)
}

func TestAnalyzeMalformedReply(t *testing.T) {
	server := httptest.NewServer(chatReply(t, "sorry, I cannot help with that"))
	defer server.Close()

	svc := NewAnalysisService(analysisConfig(server.URL))
	_, err := svc.Analyze("http://x/a.jpg")
	assert.ErrorIs(t, err, ErrAIUnavailable)
}
