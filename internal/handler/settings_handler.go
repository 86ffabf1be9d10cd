package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/storefront-email-reports/internal/dto"
	"github.com/anyulbade/storefront-email-reports/internal/scheduler"
)

type SettingsHandler struct {
	sched    *scheduler.Daily
	adminKey string
}

func NewSettingsHandler(sched *scheduler.Daily, adminKey string) *SettingsHandler {
	return &SettingsHandler{sched: sched, adminKey: adminKey}
}

func (h *SettingsHandler) authorized(c *gin.Context) bool {
	if h.adminKey == "" {
		return false
	}
	key := c.GetHeader("X-Admin-Key")
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) == 1
}

func (h *SettingsHandler) GetDeliveryTime(c *gin.Context) {
	if !h.authorized(c) {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.DeliveryTimeResponse{Hour: h.sched.Hour()})
}

// UpdateDeliveryTime moves the daily send to a new hour. The scheduler
// clears the pending occurrence, so the old time cannot fire as well.
func (h *SettingsHandler) UpdateDeliveryTime(c *gin.Context) {
	if !h.authorized(c) {
		c.Status(http.StatusNotFound)
		return
	}

	var req dto.UpdateDeliveryTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hour must be between 13 and 23"})
		return
	}

	h.sched.Reschedule(req.Hour)
	c.JSON(http.StatusOK, dto.DeliveryTimeResponse{Hour: req.Hour})
}
