// README: Driver profile handlers: create, get, rate.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/driver"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/types"
)

type DriverHandler struct {
	driver *driver.Service
}

func NewDriverHandler(svc *driver.Service) *DriverHandler {
	return &DriverHandler{driver: svc}
}

type createDriverReq struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehiclePlate string `json:"vehicle_plate"`
}

func (h *DriverHandler) Create(c *gin.Context) {
	var req createDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.driver.Create(c.Request.Context(), driver.CreateCommand{
		Name:         req.Name,
		Phone:        req.Phone,
		VehiclePlate: req.VehiclePlate,
	})
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{"driver_id": id})
}

func (h *DriverHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}
	d, err := h.driver.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"driver_id":     d.ID,
		"name":          d.Name,
		"phone":         d.Phone,
		"vehicle_plate": d.VehiclePlate,
		"rating":        d.Rating,
		"rating_count":  d.RatingCount,
	})
}

type rateDriverReq struct {
	Stars float64 `json:"stars"`
}

func (h *DriverHandler) Rate(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing driver id")
		return
	}
	var req rateDriverReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.driver.Rate(c.Request.Context(), types.ID(id), req.Stars); err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "ok"})
}
