package incident

import (
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/gorilla/schema"
	"github.com/oncall-dev/monitor-agent/api/server/config"
	"github.com/oncall-dev/monitor-agent/api/server/types"
	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/internal/utils"
)

const pageSize = 50

type ListIncidentsHandler struct {
	decoder *schema.Decoder
	config  *config.Config
}

func NewListIncidentsHandler(config *config.Config) *ListIncidentsHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &ListIncidentsHandler{
		decoder: decoder,
		config:  config,
	}
}

func (h *ListIncidentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := &types.ListIncidentsRequest{}

	if err := h.decoder.Decode(req, r.URL.Query()); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "malformed query parameters"})
		return
	}

	filter := &utils.ListIncidentsFilter{}

	if req.Status != "" {
		status := models.IncidentStatus(strings.ToUpper(req.Status))
		filter.Status = &status
	}

	if req.RuleID != 0 {
		filter.RuleID = &req.RuleID
	}

	incidents, err := h.config.Repository.Incident.ListIncidents(
		filter,
		utils.WithSortBy("updated_at"),
		utils.WithOrder(utils.OrderDesc),
		utils.WithLimit(pageSize),
		utils.WithOffset(uint(req.Page*pageSize)),
	)

	if err != nil {
		h.config.Logger.Error().Caller().Msgf("listing incidents failed: %v", err)

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "internal server error"})
		return
	}

	res := &types.ListIncidentsResponse{}

	for _, incident := range incidents {
		res.Incidents = append(res.Incidents, incident.ToAPIType())
	}

	render.JSON(w, r, res)
}
