// README: Handlers for trip lifecycle events and metrics snapshot reads.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/metrics"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

type MetricsHandler struct {
	metrics *metrics.Service
}

func NewMetricsHandler(svc *metrics.Service) *MetricsHandler {
	return &MetricsHandler{metrics: svc}
}

func (h *MetricsHandler) TripRequested(c *gin.Context) {
	h.applyEvent(c, h.metrics.OnTripRequested)
}

func (h *MetricsHandler) TripAccepted(c *gin.Context) {
	h.applyEvent(c, h.metrics.OnTripAccepted)
}

func (h *MetricsHandler) TripRejected(c *gin.Context) {
	h.applyEvent(c, h.metrics.OnTripRejected)
}

func (h *MetricsHandler) TripCompleted(c *gin.Context) {
	h.applyEvent(c, h.metrics.OnTripCompleted)
}

type cancelReq struct {
	Reason string `json:"reason"`
}

func (h *MetricsHandler) TripCancelled(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}
	var req cancelReq
	// An absent or malformed body means no reason given, which counts
	// against the driver; it is not a client error.
	_ = c.ShouldBindJSON(&req)
	if err := h.metrics.OnTripCancelled(c.Request.Context(), types.ID(id), req.Reason); err != nil {
		writeMetricsError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *MetricsHandler) GetSnapshot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}
	snap, err := h.metrics.GetSnapshot(c.Request.Context(), types.ID(id))
	if err != nil {
		writeMetricsError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, snapshotResponse(snap))
}

func (h *MetricsHandler) Initialize(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}
	if err := h.metrics.InitializeIfMissing(c.Request.Context(), types.ID(id)); err != nil {
		writeMetricsError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *MetricsHandler) applyEvent(c *gin.Context, apply func(ctx context.Context, id types.ID) error) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}
	if err := apply(c.Request.Context(), types.ID(id)); err != nil {
		writeMetricsError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "ok"})
}

type windowView struct {
	WindowStart time.Time `json:"window_start"`
	Requested   int64     `json:"requested"`
	Accepted    int64     `json:"accepted"`
	Rejected    int64     `json:"rejected"`
	Cancelled   int64     `json:"cancelled"`
	Rate        float64   `json:"rate"`
}

type snapshotView struct {
	DriverID         string     `json:"driver_id"`
	TripsRequested   int64      `json:"trips_requested"`
	TripsAccepted    int64      `json:"trips_accepted"`
	TripsCancelled   int64      `json:"trips_cancelled"`
	TripsCompleted   int64      `json:"trips_completed"`
	Last24h          windowView `json:"last_24h"`
	Last7Days        windowView `json:"last_7_days"`
	Last30Days       windowView `json:"last_30_days"`
	AcceptanceRate   float64    `json:"acceptance_rate"`
	CancellationRate float64    `json:"cancellation_rate"`
	ReliabilityScore float64    `json:"reliability_score"`
	Tier             string     `json:"tier"`
	InGracePeriod    bool       `json:"in_grace_period"`
	LastUpdated      time.Time  `json:"last_updated"`
}

func snapshotResponse(s metrics.Snapshot) snapshotView {
	return snapshotView{
		DriverID:         string(s.DriverID),
		TripsRequested:   s.TripsRequested,
		TripsAccepted:    s.TripsAccepted,
		TripsCancelled:   s.TripsCancelled,
		TripsCompleted:   s.TripsCompleted,
		Last24h:          windowResponse(s.Last24h),
		Last7Days:        windowResponse(s.Last7Days),
		Last30Days:       windowResponse(s.Last30Days),
		AcceptanceRate:   s.AcceptanceRate,
		CancellationRate: s.CancellationRate,
		ReliabilityScore: s.ReliabilityScore,
		Tier:             string(s.Tier),
		InGracePeriod:    s.InGracePeriod,
		LastUpdated:      s.LastUpdated,
	}
}

func windowResponse(w metrics.AcceptanceWindow) windowView {
	return windowView{
		WindowStart: w.WindowStart,
		Requested:   w.Requested,
		Accepted:    w.Accepted,
		Rejected:    w.Rejected,
		Cancelled:   w.Cancelled,
		Rate:        w.Rate(),
	}
}
