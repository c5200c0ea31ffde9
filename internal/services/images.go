package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"catalogadmin/internal/common"
	"catalogadmin/internal/storage"
	"catalogadmin/pkg/log"
)

// removeImage deletes url from the store when present.
func removeImage(ctx context.Context, store storage.ImageStore, logger log.LoggerService, url string) error {
	if url != "" {
		if _, err := storage.KeyFromURL(url); err != nil {
			logger.Warn("skipping image %s: %v", url, err)
			return nil
		}
	}
	removed, err := storage.RemoveIfExists(ctx, store, url)
	if err != nil {
		return fmt.Errorf("failed to remove image %s: %w", url, err)
	}
	if removed {
		logger.Debug("removed image %s", url)
	} else if url != "" {
		logger.Debug("image %s already gone, skipping", url)
	}
	return nil
}

// discardImages removes freshly saved files after a failed write. Errors
// are logged only; the write error is what the caller reports.
func discardImages(ctx context.Context, store storage.ImageStore, logger log.LoggerService, urls ...string) {
	for _, url := range urls {
		if err := removeImage(ctx, store, logger, url); err != nil {
			logger.Warn("orphaned image %s: %v", url, err)
		}
	}
}

// saveImages validates every upload before writing any of them.
func saveImages(ctx context.Context, store storage.ImageStore, logger log.LoggerService, category storage.Category, uploads []*storage.Upload) ([]string, error) {
	for _, upload := range uploads {
		if err := storage.ValidateImage(upload.Filename); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		url, err := store.Save(ctx, category, upload)
		if err != nil {
			discardImages(ctx, store, logger, urls...)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// parseID reads a numeric form value. Empty means absent.
func parseID(raw, field string) (int64, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, common.NewValidationError("Invalid %s", field)
	}
	return id, true, nil
}
