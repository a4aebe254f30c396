package http

import (
	"context"
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/graph"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether the persistence store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
	Driver() string
}

type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Store     string                 `json:"store,omitempty"`
	StoreUp   string                 `json:"store_status,omitempty"`
	Resolvers *graph.MetricsSnapshot `json:"resolvers,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	store       Pinger
	metrics     *graph.Metrics
}

func NewHealthHandler(serviceName, version string, store Pinger, metrics *graph.Metrics) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		store:       store,
		metrics:     metrics,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
	}

	if h.store != nil {
		resp.Store = h.store.Driver()
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.store.Ping(pingCtx); err != nil {
			resp.StoreUp = "down"
		} else {
			resp.StoreUp = "up"
		}
	}

	if h.metrics != nil {
		snap := h.metrics.Snapshot()
		resp.Resolvers = &snap
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
