package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/m-bouhaba/MindTrack/utils"
)

const (
	defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

	reflectionPrompt = "You are a supportive life coach. Analyze this user data and provide a short, 3-sentence motivating reflection: "

	// fallbackReflection is served whenever the model is unavailable. One
	// fallback path, no retries.
	fallbackReflection = "You're making great progress! Your consistency in tracking habits shows dedication. Keep maintaining this positive momentum."
)

// Reflector generates a short AI reflection from a plain-text summary.
type Reflector interface {
	GenerateReflection(ctx context.Context, summary string) (string, error)
}

// InsightsService wraps a Reflector with the fallback policy: any failure,
// including an unconfigured model, degrades to a static encouragement.
type InsightsService struct {
	reflector Reflector
	logger    *zap.Logger
}

func NewInsightsService(r Reflector, logger *zap.Logger) *InsightsService {
	return &InsightsService{reflector: r, logger: logger}
}

func (s *InsightsService) Reflect(ctx context.Context, summary string) string {
	if s.reflector == nil {
		utils.ReflectionCount.WithLabelValues("fallback").Inc()
		return fallbackReflection
	}

	text, err := s.reflector.GenerateReflection(ctx, summary)
	if err != nil || text == "" {
		if err != nil {
			s.logger.Warn("reflection_failed", zap.Error(err))
		}
		utils.ReflectionCount.WithLabelValues("fallback").Inc()
		return fallbackReflection
	}

	utils.ReflectionCount.WithLabelValues("model").Inc()
	return text
}

// BuildWeeklySummary produces the plain-text summary passed to the model.
func BuildWeeklySummary(stats UserStats) string {
	return fmt.Sprintf(
		"User has %d active habits, has tracked mood on %d days, and completed habits %d times (%d%% success rate). The goal is to improve emotional stability and productivity.",
		stats.HabitsCount, stats.DaysTracked, stats.TotalCompletions, stats.SuccessRate,
	)
}

// GeminiReflector calls the Gemini REST API.
type GeminiReflector struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGeminiReflectorFromEnv returns nil when GOOGLE_API_KEY is unset, which
// makes InsightsService fall back for every request.
func NewGeminiReflectorFromEnv() *GeminiReflector {
	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		return nil
	}
	return NewGeminiReflector(apiKey, defaultGeminiURL)
}

func NewGeminiReflector(apiKey, baseURL string) *GeminiReflector {
	return &GeminiReflector{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiReflector) GenerateReflection(ctx context.Context, summary string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: reflectionPrompt + summary}},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", g.baseURL, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
