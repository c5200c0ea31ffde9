package handlers

import (
	"net/http"

	"catalogadmin/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles product-related HTTP requests
type ProductHandlers struct {
	service services.ProductService
}

func NewProductHandlers(service services.ProductService) *ProductHandlers {
	return &ProductHandlers{service: service}
}

func (h *ProductHandlers) List(c echo.Context) error {
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

func (h *ProductHandlers) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	product, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, "", product)
}

func (h *ProductHandlers) ListByCollection(c echo.Context) error {
	collectionID, err := parseIDParam(c, "collectionId")
	if err != nil {
		return err
	}
	products, err := h.service.GetByCollectionID(c.Request().Context(), collectionID)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, "", products)
}

// productInput reads the multipart fields name, collection_id and image.
func productInput(c echo.Context) (*services.ProductInput, func(), error) {
	image, closeFn, err := openUpload(c, "image")
	if err != nil {
		return nil, closeFn, err
	}
	return &services.ProductInput{
		Name:         c.FormValue("name"),
		CollectionID: c.FormValue("collection_id"),
		Image:        image,
	}, closeFn, nil
}

func (h *ProductHandlers) Create(c echo.Context) error {
	input, closeFn, err := productInput(c)
	defer closeFn()
	if err != nil {
		return err
	}
	product, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandlers) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	input, closeFn, err := productInput(c)
	defer closeFn()
	if err != nil {
		return err
	}
	product, err := h.service.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return respondData(c, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandlers) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Product deleted successfully"})
}
