// internal/app/features/health/health.go
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger checks one backing service. The content store backend decides
// which implementation the bootstrap wires in.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Handler provides health check endpoints.
type Handler struct {
	pingers []Pinger
	logger  *zap.Logger
}

// NewHandler creates a new health check Handler over the given backends.
func NewHandler(logger *zap.Logger, pingers ...Pinger) *Handler {
	return &Handler{
		pingers: pingers,
		logger:  logger,
	}
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (full check), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds /ready and /livez endpoints directly on the root router.
// This is the standard convention for Kubernetes probes:
//   - /ready (or /readyz) - readiness probe
//   - /livez - liveness probe
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// Check performs a full health check including storage connectivity.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:   "ok",
		Services: make(map[string]string),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	for _, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			resp.Status = "degraded"
			resp.Services[p.Name()] = "unavailable"
			h.logger.Warn("health check: backend ping failed",
				zap.String("service", p.Name()),
				zap.Error(err))
		} else {
			resp.Services[p.Name()] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(resp)
}

// Ready checks if the service is ready to accept requests.
// Used by Kubernetes readiness probes.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	for _, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed",
				zap.String("service", p.Name()),
				zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not ready"}`))
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ready"}`))
}

// Live checks if the service is alive.
// Used by Kubernetes liveness probes.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"alive"}`))
}

// MongoPinger checks MongoDB connectivity for mongo-backed deployments.
type MongoPinger struct {
	Client *mongo.Client
}

func (p MongoPinger) Name() string { return "mongodb" }

func (p MongoPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, readpref.Primary())
}

// DataDirPinger checks that the data directory is reachable for file-backed
// deployments.
type DataDirPinger struct {
	Dir string
}

func (p DataDirPinger) Name() string { return "datadir" }

func (p DataDirPinger) Ping(ctx context.Context) error {
	_, err := os.Stat(p.Dir)
	return err
}
