package status

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/oncall-dev/monitor-agent/api/server/config"
	"github.com/oncall-dev/monitor-agent/api/server/types"
	"github.com/oncall-dev/monitor-agent/pkg/evaluator"
)

type GetStatusHandler struct {
	config *config.Config
}

func NewGetStatusHandler(config *config.Config) *GetStatusHandler {
	return &GetStatusHandler{config}
}

func (h *GetStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	heartbeat, err := h.config.Repository.SystemStatus.GetByService(evaluator.HeartbeatService)

	if err != nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "no heartbeat recorded yet"})
		return
	}

	render.JSON(w, r, &types.GetStatusResponse{
		Service:       heartbeat.Service,
		Status:        heartbeat.Status,
		LastHeartbeat: heartbeat.LastHeartbeat,
	})
}
