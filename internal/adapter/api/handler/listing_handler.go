package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"barangku/internal/domain/repository"
	"barangku/internal/usecase"
	"barangku/pkg/response"
	"barangku/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type createListingRequest struct {
	ItemID      string   `json:"item_id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"omitempty,gte=0"`
	PriceType   string   `json:"price_type" validate:"required,oneof=fixed negotiable free"`
	PhotoURLs   []string `json:"photo_urls" validate:"omitempty,dive,url"`
}

type updateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	PriceType   *string  `json:"price_type" validate:"omitempty,oneof=fixed negotiable free"`
	PhotoURLs   []string `json:"photo_urls" validate:"omitempty,dive,url"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active reserved removed"`
}

type markSoldRequest struct {
	BuyerID string `json:"buyer_id" validate:"required"`
}

func (h *ListingHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.Create(c.Request().Context(), uid, usecase.CreateListingInput{
		ItemID:      req.ItemID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		PriceType:   req.PriceType,
		PhotoURLs:   req.PhotoURLs,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, listing)
}

func (h *ListingHandler) Get(c echo.Context) error {
	uid, _ := c.Get("uid").(string)

	listing, err := h.listingUseCase.GetByID(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) Browse(c echo.Context) error {
	pagination := utils.GetPage(c, utils.DefaultPageSize)

	filter := repository.ListingFilter{
		Status:    c.QueryParam("status"),
		PriceType: c.QueryParam("price_type"),
		Search:    c.QueryParam("q"),
		Sort:      c.QueryParam("sort"),
	}
	if v := c.QueryParam("min_price"); v != "" {
		filter.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.QueryParam("max_price"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}

	listings, total, err := h.listingUseCase.Browse(c.Request().Context(), filter, pagination.Size, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, listings, total, pagination.Number, pagination.Size)
}

func (h *ListingHandler) MyListings(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPage(c, utils.DefaultPageSize)

	listings, total, err := h.listingUseCase.ListBySeller(c.Request().Context(), uid, c.QueryParam("status"), pagination.Size, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, listings, total, pagination.Number, pagination.Size)
}

func (h *ListingHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.Update(c.Request().Context(), uid, c.Param("id"), usecase.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		PriceType:   req.PriceType,
		PhotoURLs:   req.PhotoURLs,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) SetStatus(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.SetStatus(c.Request().Context(), uid, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) MarkSold(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req markSoldRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	transaction, err := h.listingUseCase.MarkSold(c.Request().Context(), uid, c.Param("id"), req.BuyerID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, transaction)
}
