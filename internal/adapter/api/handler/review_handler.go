package handler

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/usecase"
	"barangku/pkg/response"
	"barangku/pkg/utils"
)

type ReviewHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{
		reviewUseCase: reviewUseCase,
	}
}

type submitReviewRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Content       string `json:"content"`
}

func (h *ReviewHandler) Submit(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.reviewUseCase.Submit(c.Request().Context(), uid, req.TransactionID, req.Rating, req.Content)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, review)
}

func (h *ReviewHandler) Pending(c echo.Context) error {
	uid := c.Get("uid").(string)

	pending, err := h.reviewUseCase.Pending(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, pending)
}

func (h *ReviewHandler) ListByUser(c echo.Context) error {
	pagination := utils.GetPage(c, utils.DefaultPageSize)

	reviews, total, err := h.reviewUseCase.ListByTarget(c.Request().Context(), c.Param("id"), pagination.Size, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, reviews, total, pagination.Number, pagination.Size)
}

func (h *ReviewHandler) Profile(c echo.Context) error {
	profile, err := h.reviewUseCase.Profile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}
