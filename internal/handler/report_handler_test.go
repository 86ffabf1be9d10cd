package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/storefront-email-reports/internal/report"
	"github.com/anyulbade/storefront-email-reports/internal/service"
)

type recordingMailer struct {
	sent int
}

func (m *recordingMailer) Send(recipients []string, subject, htmlBody string) error {
	m.sent++
	return nil
}

const testAdminKey = "test-admin-key"

func setupReportRouter(t *testing.T, mail service.Mailer) *gin.Engine {
	t.Helper()

	registry := report.NewRegistry()
	require.NoError(t, registry.Register(report.Tag{
		Name:        "daily_total",
		Description: "Total earnings for today.",
		Produce: func(ctx context.Context, now time.Time) (string, error) {
			return "1,234.50", nil
		},
	}))
	renderer := report.NewRenderer(registry)

	svc, err := service.NewReportService(renderer, mail, "Example Store",
		[]string{"admin@example.com"}, true,
		"<h1>{daily_total}</h1>", "<html><body>{{ .Body }}</body></html>")
	require.NoError(t, err)

	h := NewReportHandler(svc, registry, testAdminKey)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/reports/preview", h.Preview)
	api := router.Group("/api/v1")
	api.POST("/reports/send", h.Send)
	api.GET("/reports/tags", h.Tags)
	return router
}

func TestReportHandler_Preview(t *testing.T) {
	router := setupReportRouter(t, &recordingMailer{})

	t.Run("happy: authorized preview renders HTML inline", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/reports/preview?key="+testAdminKey, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "<h1>1,234.50</h1>")
	})

	t.Run("happy: header key also works", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/reports/preview", nil)
		req.Header.Set("X-Admin-Key", testAdminKey)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad: missing key is a silent 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/reports/preview", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String(), "unauthorized callers learn nothing")
	})

	t.Run("bad: wrong key is a silent 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/reports/preview?key=guess", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestReportHandler_Send(t *testing.T) {
	t.Run("happy: authorized send delivers the report", func(t *testing.T) {
		mail := &recordingMailer{}
		router := setupReportRouter(t, mail)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/reports/send", nil)
		req.Header.Set("X-Admin-Key", testAdminKey)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, 1, mail.sent)
		assert.Contains(t, w.Body.String(), "Daily Sales Report for Example Store",
			"response echoes the mailed subject")
	})

	t.Run("bad: unauthorized send does not deliver", func(t *testing.T) {
		mail := &recordingMailer{}
		router := setupReportRouter(t, mail)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/reports/send", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Zero(t, mail.sent)
	})
}

func TestReportHandler_Tags(t *testing.T) {
	router := setupReportRouter(t, &recordingMailer{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reports/tags", nil)
	req.Header.Set("X-Admin-Key", testAdminKey)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "daily_total")
	assert.Contains(t, w.Body.String(), "Total earnings for today.")
}
