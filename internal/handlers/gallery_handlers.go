package handlers

import (
	"net/http"

	"catalogadmin/internal/services"

	"github.com/labstack/echo/v4"
)

// GalleryHandlers handles gallery HTTP requests
type GalleryHandlers struct {
	service services.GalleryService
}

func NewGalleryHandlers(service services.GalleryService) *GalleryHandlers {
	return &GalleryHandlers{service: service}
}

func (h *GalleryHandlers) List(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), params)
	if err != nil {
		return err
	}
	return respondList(c, page)
}

func (h *GalleryHandlers) Create(c echo.Context) error {
	image, closeFn, err := openUpload(c, "image")
	defer closeFn()
	if err != nil {
		return err
	}
	created, err := h.service.Create(c.Request().Context(), image)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, "Image uploaded successfully", created)
}

func (h *GalleryHandlers) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	image, closeFn, err := openUpload(c, "image")
	defer closeFn()
	if err != nil {
		return err
	}
	updated, err := h.service.Update(c.Request().Context(), id, image)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, "Image updated successfully", updated)
}

func (h *GalleryHandlers) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Image deleted successfully"})
}
