package handlers

import (
	"errors"
	"net/http"
	"path"

	"catalogadmin/internal/storage"

	"github.com/labstack/echo/v4"
)

// UploadHandlers serves stored images under /uploads/*.
type UploadHandlers struct {
	store storage.ImageStore
}

func NewUploadHandlers(store storage.ImageStore) *UploadHandlers {
	return &UploadHandlers{store: store}
}

func (h *UploadHandlers) Serve(c echo.Context) error {
	url := storage.URLPrefix + c.Param("*")

	f, modTime, err := h.store.Open(c.Request().Context(), url)
	if err != nil {
		if errors.Is(err, storage.ErrImageNotFound) || errors.Is(err, storage.ErrInvalidURL) {
			return echo.NewHTTPError(http.StatusNotFound, "File not found")
		}
		return err
	}
	defer f.Close()

	http.ServeContent(c.Response(), c.Request(), path.Base(url), modTime, f)
	return nil
}
