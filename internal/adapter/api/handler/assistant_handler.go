package handler

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/usecase"
	"barangku/pkg/response"
)

type AssistantHandler struct {
	assistantUseCase *usecase.AssistantUseCase
}

func NewAssistantHandler(assistantUseCase *usecase.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{
		assistantUseCase: assistantUseCase,
	}
}

type analyzeRequest struct {
	Query    string `json:"query"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

type followupRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Question  string `json:"question" validate:"required"`
}

// Analyze proxies the lookup to the shopping-analyze function with the
// caller's own bearer token, so upstream usage limits apply per user.
func (h *AssistantHandler) Analyze(c echo.Context) error {
	uid := c.Get("uid").(string)
	idToken, _ := c.Get("idToken").(string)

	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.assistantUseCase.Analyze(c.Request().Context(), uid, idToken, usecase.AnalyzeInput{
		Query:    req.Query,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *AssistantHandler) Followup(c echo.Context) error {
	uid := c.Get("uid").(string)
	idToken, _ := c.Get("idToken").(string)

	var req followupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.assistantUseCase.Followup(c.Request().Context(), uid, idToken, req.SessionID, req.Question)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *AssistantHandler) RecentQueries(c echo.Context) error {
	uid := c.Get("uid").(string)

	queries, err := h.assistantUseCase.RecentQueries(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, queries)
}
