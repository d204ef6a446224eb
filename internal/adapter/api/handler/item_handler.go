package handler

import (
	"io"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"barangku/internal/domain/entity"
	"barangku/internal/domain/repository"
	"barangku/internal/usecase"
	"barangku/pkg/errors"
	"barangku/pkg/response"
	"barangku/pkg/utils"
)

const maxUploadBytes = 15 << 20

type ItemHandler struct {
	itemUseCase *usecase.ItemUseCase
}

func NewItemHandler(itemUseCase *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
	}
}

type detectionRequest struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence" validate:"omitempty,gte=0,max=1"`
	BoxX       float64 `json:"box_x"`
	BoxY       float64 `json:"box_y"`
	BoxW       float64 `json:"box_w"`
	BoxH       float64 `json:"box_h"`
}

type createItemRequest struct {
	Name         string            `json:"name" validate:"required"`
	Description  string            `json:"description"`
	CategoryID   string            `json:"category_id"`
	LocationID   string            `json:"location_id"`
	Tags         []string          `json:"tags"`
	Quantity     int               `json:"quantity" validate:"omitempty,min=1"`
	Price        *float64          `json:"price" validate:"omitempty,gte=0"`
	Currency     string            `json:"currency"`
	PurchaseDate *time.Time        `json:"purchase_date"`
	ExpireDate   *time.Time        `json:"expire_date"`
	WarrantyDate *time.Time        `json:"warranty_date"`
	ReminderDate *time.Time        `json:"reminder_date"`
	KeepForever  bool              `json:"keep_forever"`
	Detection    *detectionRequest `json:"detection"`
}

type updateItemRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	CategoryID   *string    `json:"category_id"`
	LocationID   *string    `json:"location_id"`
	Tags         []string   `json:"tags"`
	Quantity     *int       `json:"quantity" validate:"omitempty,min=1"`
	Price        *float64   `json:"price" validate:"omitempty,gte=0"`
	Currency     *string    `json:"currency"`
	PurchaseDate *time.Time `json:"purchase_date"`
	ExpireDate   *time.Time `json:"expire_date"`
	WarrantyDate *time.Time `json:"warranty_date"`
	ReminderDate *time.Time `json:"reminder_date"`
	Favorite     *bool      `json:"favorite"`
	KeepForever  *bool      `json:"keep_forever"`
}

func (h *ItemHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	input := usecase.CreateItemInput{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		LocationID:   req.LocationID,
		Tags:         req.Tags,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Currency:     req.Currency,
		PurchaseDate: req.PurchaseDate,
		ExpireDate:   req.ExpireDate,
		WarrantyDate: req.WarrantyDate,
		ReminderDate: req.ReminderDate,
		KeepForever:  req.KeepForever,
	}
	if req.Detection != nil {
		input.Detection = &entity.Detection{
			Label:      req.Detection.Label,
			Confidence: req.Detection.Confidence,
			BoxX:       req.Detection.BoxX,
			BoxY:       req.Detection.BoxY,
			BoxW:       req.Detection.BoxW,
			BoxH:       req.Detection.BoxH,
		}
	}

	item, err := h.itemUseCase.Create(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, item)
}

func (h *ItemHandler) Get(c echo.Context) error {
	uid := c.Get("uid").(string)

	item, err := h.itemUseCase.GetByID(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}

func (h *ItemHandler) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPage(c, utils.DefaultPageSize)

	filter := repository.ItemFilter{
		CategoryID: c.QueryParam("category_id"),
		LocationID: c.QueryParam("location_id"),
		Tag:        c.QueryParam("tag"),
		Search:     c.QueryParam("q"),
	}
	if fav := c.QueryParam("favorite"); fav != "" {
		favorite, err := strconv.ParseBool(fav)
		if err != nil {
			return response.Error(c, errors.BadRequest("favorite must be true or false", err))
		}
		filter.Favorite = &favorite
	}

	items, total, err := h.itemUseCase.List(c.Request().Context(), uid, filter, pagination.Size, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, items, total, pagination.Number, pagination.Size)
}

func (h *ItemHandler) Update(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.itemUseCase.Update(c.Request().Context(), uid, c.Param("id"), usecase.UpdateItemInput{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		LocationID:   req.LocationID,
		Tags:         req.Tags,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Currency:     req.Currency,
		PurchaseDate: req.PurchaseDate,
		ExpireDate:   req.ExpireDate,
		WarrantyDate: req.WarrantyDate,
		ReminderDate: req.ReminderDate,
		Favorite:     req.Favorite,
		KeepForever:  req.KeepForever,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}

// Delete soft-deletes the item and returns the undo deadline for the toast
// countdown.
func (h *ItemHandler) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.itemUseCase.Delete(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]interface{}{
		"message":      "Item deleted",
		"undo_seconds": int(usecase.UndoWindow.Seconds()),
	})
}

func (h *ItemHandler) Undo(c echo.Context) error {
	uid := c.Get("uid").(string)

	item, err := h.itemUseCase.Undo(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}

// UploadPhoto accepts a multipart photo, compresses it to the byte budget and
// points the item at the stored copy.
func (h *ItemHandler) UploadPhoto(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return response.Error(c, errors.BadRequest("photo file is required", err))
	}
	if fileHeader.Size > maxUploadBytes {
		return response.Error(c, errors.BadRequest("Photo is too large", nil))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read upload", err))
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read upload", err))
	}

	item, err := h.itemUseCase.AttachPhoto(c.Request().Context(), uid, c.Param("id"), raw)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}
