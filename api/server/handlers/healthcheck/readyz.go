package healthcheck

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/oncall-dev/monitor-agent/api/server/config"
)

type ReadyzHandler struct {
	config *config.Config
}

func NewReadyzHandler(config *config.Config) *ReadyzHandler {
	return &ReadyzHandler{config}
}

func (h *ReadyzHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.config.Repository.DB.DB()

	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		h.config.Logger.Error().Caller().Msgf("readiness check failed: %v", err)

		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "database unreachable"})
		return
	}

	writeHealthy(w, r)
}
