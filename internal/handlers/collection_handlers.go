package handlers

import (
	"net/http"

	"catalogadmin/internal/services"

	"github.com/labstack/echo/v4"
)

// CollectionHandlers handles collection-related HTTP requests
type CollectionHandlers struct {
	service services.CollectionService
}

func NewCollectionHandlers(service services.CollectionService) *CollectionHandlers {
	return &CollectionHandlers{service: service}
}

// CollectionRequest represents the collection create/update payload
type CollectionRequest struct {
	Name string `json:"name" form:"name"`
}

func (h *CollectionHandlers) List(c echo.Context) error {
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

func (h *CollectionHandlers) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	collection, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, "", collection)
}

func (h *CollectionHandlers) Create(c echo.Context) error {
	var req CollectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	collection, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, "Collection created successfully", collection)
}

func (h *CollectionHandlers) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req CollectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	collection, err := h.service.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, "Collection updated successfully", collection)
}

func (h *CollectionHandlers) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Collection deleted successfully"})
}
