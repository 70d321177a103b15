package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/uploads"
	"github.com/gofiber/fiber/v2"
)

const maxImageSize = 5 << 20

type UploadHandler struct {
	uploader uploads.Uploader
}

func NewUploadHandler(uploader uploads.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// ProductImage uploads the multipart "image" field and returns its hosted URL.
func (h *UploadHandler) ProductImage(c *fiber.Ctx) error {
	header, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "image file is required")
	}
	if header.Size > maxImageSize {
		return badRequest(c, "image must be 5MB or smaller")
	}

	file, err := header.Open()
	if err != nil {
		return badRequest(c, "image file could not be read")
	}
	defer file.Close()

	res, err := h.uploader.UploadProductImage(c.UserContext(), file)
	if err != nil {
		if errors.Is(err, uploads.ErrNotConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return internalError(c, "upload product image", err)
	}
	return c.JSON(dto.UploadResponse{URL: res.URL, PublicID: res.PublicID})
}
