// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/mercadito/internal/core"
)

type Handler struct {
	dbPing    func(ctx context.Context) error
	redisPing func(ctx context.Context) error
	version   string
}

func NewHandler(
	dbPing, redisPing func(ctx context.Context) error,
	version string,
) *Handler {
	return &Handler{
		dbPing:    dbPing,
		redisPing: redisPing,
		version:   version,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

type livenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type readinessResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	core.OK(w, livenessResponse{
		Status:  "ok",
		Version: h.version,
	})
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := readinessResponse{
		Status:   "ready",
		Database: "ok",
		Redis:    "ok",
	}
	status := http.StatusOK

	if err := h.dbPing(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	if err := h.redisPing(ctx); err != nil {
		resp.Status = "degraded"
		resp.Redis = "unreachable"
		status = http.StatusServiceUnavailable
	}

	core.JSON(w, status, resp)
}
