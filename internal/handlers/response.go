package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"catalogadmin/internal/common"
	"catalogadmin/internal/storage"

	"github.com/labstack/echo/v4"
)

type DataResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ListResponse struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data"`
	Pagination common.Pagination `json:"pagination"`
}

func respondData(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, DataResponse{Success: true, Message: message, Data: data})
}

func respondList[T any](c echo.Context, page *common.Page[T]) error {
	return c.JSON(http.StatusOK, ListResponse{Success: true, Data: page.Items, Pagination: page.Pagination})
}

func bindListParams(c echo.Context) (common.ListParams, error) {
	var params common.ListParams
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &params); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	return params.Normalize(), nil
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError("Invalid %s", name)
	}
	return id, nil
}

// openUpload returns the file in field, or nil when the request carries none.
// The returned closer must be called once the upload has been consumed.
func openUpload(c echo.Context, field string) (*storage.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, common.NewValidationError("Invalid upload: %v", err)
	}
	uploads, closeAll, err := openHeaders([]*multipart.FileHeader{header})
	if err != nil {
		return nil, closeAll, err
	}
	return uploads[0], closeAll, nil
}

// openUploads returns every file sent under field, in order.
func openUploads(c echo.Context, field string) ([]*storage.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, common.NewValidationError("Invalid upload: %v", err)
	}
	return openHeaders(form.File[field])
}

func openHeaders(headers []*multipart.FileHeader) ([]*storage.Upload, func(), error) {
	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	uploads := make([]*storage.Upload, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		files = append(files, f)
		uploads = append(uploads, &storage.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get(echo.HeaderContentType),
			Size:        header.Size,
			Content:     f,
		})
	}
	return uploads, closeAll, nil
}
