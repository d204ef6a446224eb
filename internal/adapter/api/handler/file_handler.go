package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"barangku/internal/imaging"
	"barangku/internal/usecase"
	"barangku/pkg/errors"
	"barangku/pkg/response"
)

type FileHandler struct {
	uploader usecase.PhotoUploader
}

func NewFileHandler(uploader usecase.PhotoUploader) *FileHandler {
	return &FileHandler{
		uploader: uploader,
	}
}

// UploadChatAttachment compresses a chat image and stores it, returning the
// URL the client then sends inside the message.
func (h *FileHandler) UploadChatAttachment(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("file is required", err))
	}
	if fileHeader.Size > maxUploadBytes {
		return response.Error(c, errors.BadRequest("File is too large", nil))
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

	compressed, err := imaging.Compress(raw, imaging.MaxBytes)
	if err != nil {
		return response.Error(c, err)
	}

	url, err := h.uploader.UploadChatAttachment(c.Request().Context(), uid, compressed.Data)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}
	return response.Created(c, map[string]string{"url": url})
}
