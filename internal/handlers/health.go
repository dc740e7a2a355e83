package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dimitrije/workspace-api/internal/respond"
	"github.com/dimitrije/workspace-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const serviceName = "workspace-api"

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *drift.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		respond.JSON(c, http.StatusServiceUnavailable, dto.HealthResponse{Status: "down", Service: serviceName, Database: "unreachable"})
		return
	}
	respond.JSON(c, http.StatusOK, dto.HealthResponse{Status: "ok", Service: serviceName, Database: "ok"})
}
