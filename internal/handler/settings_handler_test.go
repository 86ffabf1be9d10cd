package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/anyulbade/storefront-email-reports/internal/scheduler"
)

func setupSettingsRouter(t *testing.T) (*gin.Engine, *scheduler.Daily) {
	t.Helper()

	sched := scheduler.NewDaily(18, time.UTC, func(context.Context) {})
	h := NewSettingsHandler(sched, testAdminKey)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/settings/delivery-time", h.GetDeliveryTime)
	api.PUT("/settings/delivery-time", h.UpdateDeliveryTime)
	return router, sched
}

func TestSettingsHandler_DeliveryTime(t *testing.T) {
	t.Run("happy: reads the configured hour", func(t *testing.T) {
		router, _ := setupSettingsRouter(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/settings/delivery-time", nil)
		req.Header.Set("X-Admin-Key", testAdminKey)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"hour":18}`, w.Body.String())
	})

	t.Run("happy: update moves the schedule", func(t *testing.T) {
		router, sched := setupSettingsRouter(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/settings/delivery-time", strings.NewReader(`{"hour":21}`))
		req.Header.Set("X-Admin-Key", testAdminKey)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 21, sched.Hour())
	})

	t.Run("bad: hour outside the offered range", func(t *testing.T) {
		router, sched := setupSettingsRouter(t)

		for _, body := range []string{`{"hour":3}`, `{"hour":24}`, `{}`} {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("PUT", "/api/v1/settings/delivery-time", strings.NewReader(body))
			req.Header.Set("X-Admin-Key", testAdminKey)
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		}
		assert.Equal(t, 18, sched.Hour(), "rejected updates must not touch the schedule")
	})

	t.Run("bad: unauthorized is a silent 404", func(t *testing.T) {
		router, sched := setupSettingsRouter(t)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/settings/delivery-time", strings.NewReader(`{"hour":21}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, 18, sched.Hour())
	})
}
