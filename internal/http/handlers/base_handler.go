// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/dispatch"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/driver"
	"github.com/Hasanakramprog/Drivertaxi-sub000/internal/modules/metrics"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeMetricsError maps engine errors onto HTTP statuses. Conflict maps to
// 409 so the caller knows to retry the whole event.
func writeMetricsError(c *gin.Context, err error) {
	switch err {
	case metrics.ErrBadRequest, metrics.ErrInvalidInput:
		writeError(c, http.StatusBadRequest, err.Error())
	case metrics.ErrNotFound, driver.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case metrics.ErrConflict:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusServiceUnavailable, "store unavailable")
	}
}

func writeDriverError(c *gin.Context, err error) {
	switch err {
	case driver.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case driver.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case driver.ErrExists:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusServiceUnavailable, "store unavailable")
	}
}

func writeDispatchError(c *gin.Context, err error) {
	switch err {
	case dispatch.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusServiceUnavailable, "cache unavailable")
	}
}
