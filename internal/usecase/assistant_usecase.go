package usecase

import (
	"context"
	"strings"
	"time"

	"barangku/internal/infrastructure/presence"
	"barangku/pkg/errors"
	"barangku/pkg/logger"
)

// EdgeInvoker calls a serverless function with the caller's bearer token.
type EdgeInvoker interface {
	Invoke(ctx context.Context, fn, bearerToken string, payload interface{}, out interface{}) error
}

// RecentQueryStore keeps the per-user shopping lookup history.
type RecentQueryStore interface {
	Add(ctx context.Context, userID string, query presence.RecentQuery) error
	List(ctx context.Context, userID string) ([]presence.RecentQuery, error)
}

type AssistantUseCase struct {
	edge        EdgeInvoker
	recent      RecentQueryStore
	rateLimiter RateLimiter
}

func NewAssistantUseCase(edge EdgeInvoker, recent RecentQueryStore, rateLimiter RateLimiter) *AssistantUseCase {
	return &AssistantUseCase{
		edge:        edge,
		recent:      recent,
		rateLimiter: rateLimiter,
	}
}

type AnalyzeInput struct {
	Query    string
	ImageURL string
}

// AnalyzeResult mirrors the shopping-analyze function's response.
type AnalyzeResult struct {
	Name         string   `json:"name"`
	Summary      string   `json:"summary"`
	PriceLow     float64  `json:"price_low"`
	PriceHigh    float64  `json:"price_high"`
	Currency     string   `json:"currency"`
	Alternatives []string `json:"alternatives,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	SessionID    string   `json:"session_id"`
}

// Analyze runs a shopping lookup through the shopping-analyze function and
// records it in the user's recent-query history. History failures never fail
// the lookup.
func (uc *AssistantUseCase) Analyze(ctx context.Context, userID, bearerToken string, input AnalyzeInput) (*AnalyzeResult, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" && input.ImageURL == "" {
		return nil, errors.BadRequest("Describe or photograph what you want to look up", nil)
	}

	if allowed, wait := uc.rateLimiter.Allow(userID, "assistant"); !allowed {
		return nil, errors.TooManyRequests("Assistant limit reached", wait)
	}

	var result AnalyzeResult
	payload := map[string]string{"query": query}
	if input.ImageURL != "" {
		payload["image_url"] = input.ImageURL
	}
	if err := uc.edge.Invoke(ctx, "shopping-analyze", bearerToken, payload, &result); err != nil {
		return nil, err
	}

	name := result.Name
	if name == "" {
		name = query
	}
	if err := uc.recent.Add(ctx, userID, presence.RecentQuery{
		Name:         name,
		ThumbnailURL: result.ThumbnailURL,
		CreatedAt:    time.Now(),
	}); err != nil {
		logger.SideEffect("record_recent_query", err)
	}

	return &result, nil
}

// FollowupResult mirrors the shopping-followup function's response.
type FollowupResult struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
}

// Followup asks a question in the context of an earlier analysis session.
func (uc *AssistantUseCase) Followup(ctx context.Context, userID, bearerToken, sessionID, question string) (*FollowupResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.BadRequest("Question cannot be empty", nil)
	}
	if sessionID == "" {
		return nil, errors.BadRequest("Missing analysis session", nil)
	}

	if allowed, wait := uc.rateLimiter.Allow(userID, "assistant"); !allowed {
		return nil, errors.TooManyRequests("Assistant limit reached", wait)
	}

	var result FollowupResult
	payload := map[string]string{
		"session_id": sessionID,
		"question":   question,
	}
	if err := uc.edge.Invoke(ctx, "shopping-followup", bearerToken, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RecentQueries returns the pruned lookup history, newest first.
func (uc *AssistantUseCase) RecentQueries(ctx context.Context, userID string) ([]presence.RecentQuery, error) {
	queries, err := uc.recent.List(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to load recent lookups", err)
	}
	return queries, nil
}
