// README: Dispatch handler: ranks a candidate driver set by priority.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/dispatch"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

type DispatchHandler struct {
	dispatch *dispatch.Service
}

func NewDispatchHandler(svc *dispatch.Service) *DispatchHandler {
	return &DispatchHandler{dispatch: svc}
}

func (h *DispatchHandler) Rank(c *gin.Context) {
	raw := c.Query("driver_ids")
	if raw == "" {
		writeError(c, http.StatusBadRequest, "missing driver_ids")
		return
	}
	var ids []types.ID
	for _, p := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(p); s != "" {
			ids = append(ids, types.ID(s))
		}
	}
	ranked, err := h.dispatch.Rank(c.Request.Context(), ids)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	out := make([]map[string]any, len(ranked))
	for i, r := range ranked {
		out[i] = map[string]any{"driver_id": r.DriverID, "score": r.Score}
	}
	writeJSON(c, http.StatusOK, map[string]any{"drivers": out})
}
