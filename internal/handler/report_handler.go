package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/storefront-email-reports/internal/dto"
	"github.com/anyulbade/storefront-email-reports/internal/mailer"
	"github.com/anyulbade/storefront-email-reports/internal/report"
	"github.com/anyulbade/storefront-email-reports/internal/service"
)

type ReportHandler struct {
	svc      *service.ReportService
	registry *report.Registry
	adminKey string
}

func NewReportHandler(svc *service.ReportService, registry *report.Registry, adminKey string) *ReportHandler {
	return &ReportHandler{svc: svc, registry: registry, adminKey: adminKey}
}

// authorized checks the admin key from either the query string (so the
// preview link works from a browser) or a header.
func (h *ReportHandler) authorized(c *gin.Context) bool {
	if h.adminKey == "" {
		return false
	}
	key := c.Query("key")
	if key == "" {
		key = c.GetHeader("X-Admin-Key")
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) == 1
}

// Preview renders the report inline instead of emailing it. Unauthorized
// callers get a bare 404 so the endpoint's existence is not revealed.
func (h *ReportHandler) Preview(c *gin.Context) {
	if !h.authorized(c) {
		c.Status(http.StatusNotFound)
		return
	}

	rendered, err := h.svc.BuildReport(c.Request.Context(), time.Now())
	if err != nil {
		log.Error().Err(err).Msg("preview render failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rendered.HTMLBody))
}

// Send triggers an immediate report delivery outside the daily schedule.
func (h *ReportHandler) Send(c *gin.Context) {
	if !h.authorized(c) {
		c.Status(http.StatusNotFound)
		return
	}

	err := h.svc.SendDailyReport(c.Request.Context(), time.Now())
	if err != nil {
		var delivery *mailer.DeliveryError
		if errors.As(err, &delivery) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "mail delivery failed"})
			return
		}
		log.Error().Err(err).Msg("on-demand report failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate report"})
		return
	}

	c.JSON(http.StatusAccepted, dto.SendReportResponse{Status: "sent", Subject: h.svc.Subject()})
}

// Tags lists the registered report tags and what they produce, for
// template authors.
func (h *ReportHandler) Tags(c *gin.Context) {
	if !h.authorized(c) {
		c.Status(http.StatusNotFound)
		return
	}

	tags := h.registry.Tags()
	out := make([]dto.TagDescription, len(tags))
	for i, t := range tags {
		out[i] = dto.TagDescription{Tag: t.Name, Description: t.Description}
	}
	c.JSON(http.StatusOK, out)
}
