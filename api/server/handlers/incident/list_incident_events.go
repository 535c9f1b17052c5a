package incident

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/gorilla/schema"
	"github.com/oncall-dev/monitor-agent/api/server/config"
	"github.com/oncall-dev/monitor-agent/api/server/types"
	"github.com/oncall-dev/monitor-agent/internal/utils"
)

type ListIncidentEventsHandler struct {
	decoder *schema.Decoder
	config  *config.Config
}

func NewListIncidentEventsHandler(config *config.Config) *ListIncidentEventsHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &ListIncidentEventsHandler{
		decoder: decoder,
		config:  config,
	}
}

func (h *ListIncidentEventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := &types.ListIncidentEventsRequest{}

	if err := h.decoder.Decode(req, r.URL.Query()); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "malformed query parameters"})
		return
	}

	filter := &utils.ListIncidentEventsFilter{}

	if req.IncidentID != 0 {
		filter.IncidentID = &req.IncidentID
	}

	events, err := h.config.Repository.IncidentEvent.ListIncidentEvents(
		filter,
		utils.WithOrder(utils.OrderDesc),
		utils.WithLimit(pageSize),
		utils.WithOffset(uint(req.Page*pageSize)),
	)

	if err != nil {
		h.config.Logger.Error().Caller().Msgf("listing incident events failed: %v", err)

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": "internal server error"})
		return
	}

	res := &types.ListIncidentEventsResponse{}

	for _, event := range events {
		res.Events = append(res.Events, event.ToAPIType())
	}

	render.JSON(w, r, res)
}
