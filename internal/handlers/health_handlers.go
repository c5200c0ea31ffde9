package handlers

import (
	"context"
	"net/http"
	"time"

	"catalogadmin/internal/storage"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers handles health check endpoints
type HealthHandlers struct {
	db    Pinger
	store storage.ImageStore
}

func NewHealthHandlers(db Pinger, store storage.ImageStore) *HealthHandlers {
	return &HealthHandlers{db: db, store: store}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck reports 503 when any dependency is unreachable.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	check := func(name string, ping func(context.Context) error) {
		if err := ping(ctx); err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
			return
		}
		health.Services[name] = "healthy"
	}
	check("database", h.db.Ping)
	check("storage", h.store.Ping)

	status := http.StatusOK
	if health.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, health)
}
