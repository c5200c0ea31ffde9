package handlers

import (
	"net/http"

	"catalogadmin/internal/services"

	"github.com/labstack/echo/v4"
)

// VariantHandlers handles product-variant HTTP requests
type VariantHandlers struct {
	service services.VariantService
}

func NewVariantHandlers(service services.VariantService) *VariantHandlers {
	return &VariantHandlers{service: service}
}

func (h *VariantHandlers) List(c echo.Context) error {
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

func (h *VariantHandlers) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	variant, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, "", variant)
}

func (h *VariantHandlers) ListByProduct(c echo.Context) error {
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return err
	}
	variants, err := h.service.GetByProductID(c.Request().Context(), productID)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, "", variants)
}

// variantInput reads the multipart fields productId, name and images.
func variantInput(c echo.Context) (*services.VariantInput, func(), error) {
	images, closeFn, err := openUploads(c, "images")
	if err != nil {
		return nil, closeFn, err
	}
	return &services.VariantInput{
		ProductID: c.FormValue("productId"),
		Name:      c.FormValue("name"),
		Images:    images,
	}, closeFn, nil
}

func (h *VariantHandlers) Create(c echo.Context) error {
	input, closeFn, err := variantInput(c)
	defer closeFn()
	if err != nil {
		return err
	}
	variant, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, "Product variant created successfully", variant)
}

func (h *VariantHandlers) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	input, closeFn, err := variantInput(c)
	defer closeFn()
	if err != nil {
		return err
	}
	variant, err := h.service.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, "Product variant updated successfully", variant)
}

func (h *VariantHandlers) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Product variant deleted successfully"})
}
