package handler

import (
	"github.com/labstack/echo/v4"

	"barangku/internal/usecase"
	"barangku/pkg/response"
)

type TaxonomyHandler struct {
	taxonomyUseCase *usecase.TaxonomyUseCase
}

func NewTaxonomyHandler(taxonomyUseCase *usecase.TaxonomyUseCase) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyUseCase: taxonomyUseCase,
	}
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon"`
}

type createLocationRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID string `json:"parent_id"`
	Icon     string `json:"icon"`
}

func (h *TaxonomyHandler) ListCategories(c echo.Context) error {
	uid := c.Get("uid").(string)

	categories, err := h.taxonomyUseCase.ListCategories(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, categories)
}

func (h *TaxonomyHandler) CreateCategory(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.taxonomyUseCase.CreateCategory(c.Request().Context(), uid, req.Name, req.Icon)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, category)
}

type updateCategoryRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
	Icon *string `json:"icon"`
}

func (h *TaxonomyHandler) UpdateCategory(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.taxonomyUseCase.UpdateCategory(c.Request().Context(), uid, c.Param("id"), req.Name, req.Icon)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, category)
}

func (h *TaxonomyHandler) DeleteCategory(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.taxonomyUseCase.DeleteCategory(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Category deleted"})
}

func (h *TaxonomyHandler) ListLocations(c echo.Context) error {
	uid := c.Get("uid").(string)

	locations, err := h.taxonomyUseCase.ListLocations(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, locations)
}

func (h *TaxonomyHandler) CreateLocation(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	location, err := h.taxonomyUseCase.CreateLocation(c.Request().Context(), uid, req.Name, req.ParentID, req.Icon)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, location)
}

type updateLocationRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	ParentID *string `json:"parent_id"`
	Icon     *string `json:"icon"`
}

func (h *TaxonomyHandler) UpdateLocation(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	location, err := h.taxonomyUseCase.UpdateLocation(c.Request().Context(), uid, c.Param("id"), usecase.UpdateLocationInput{
		Name:     req.Name,
		ParentID: req.ParentID,
		Icon:     req.Icon,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, location)
}

func (h *TaxonomyHandler) DeleteLocation(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.taxonomyUseCase.DeleteLocation(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"message": "Location deleted"})
}
