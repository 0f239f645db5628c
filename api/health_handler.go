package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gbur-rwanda/gbur-backend/services"
)

type healthHandler struct {
	responder Responder
	logger    zerolog.Logger
	health    *services.HealthService
}

func newHealthHandler(health *services.HealthService, production bool) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder: NewResponder(logger, production),
		logger:    logger,
		health:    health,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// check serves GET /health. An unreachable database is a 503.
func (h healthHandler) check(startupTime time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{
			Status:   "ok",
			Database: "ok",
			Uptime:   time.Since(startupTime).Round(time.Second).String(),
		}
		if err := h.health.Database(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, resp)
			return
		}
		h.responder.WriteJSON(w, resp)
	}
}
