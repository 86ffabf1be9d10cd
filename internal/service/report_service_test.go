package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/storefront-email-reports/internal/report"
	"github.com/anyulbade/storefront-email-reports/internal/templates"
)

type fakeMailer struct {
	sent     int
	subject  string
	body     string
	to       []string
	sendErr  error
}

func (f *fakeMailer) Send(recipients []string, subject, htmlBody string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent++
	f.to = recipients
	f.subject = subject
	f.body = htmlBody
	return nil
}

func testRenderer(t *testing.T, values map[string]string) *report.Renderer {
	t.Helper()
	r := report.NewRegistry()
	for name, value := range values {
		v := value
		require.NoError(t, r.Register(report.Tag{
			Name: name,
			Produce: func(ctx context.Context, now time.Time) (string, error) {
				return v, nil
			},
		}))
	}
	return report.NewRenderer(r)
}

func allBodyTags(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		"email_report_currency":                      "$",
		"email_report_letters_of_days_in_week":       "T M S S F T W",
		"email_report_daily_total":                   "1,234.50",
		"email_report_daily_transactions":            "17",
		"email_report_weekly_best_selling_downloads": "<ul><li>Album A</li></ul>",
		"email_report_weekly_total":                  "$2,000.00",
		"email_report_monthly_total":                 "$9,000.00",
		"email_report_rolling_weekly_total":          "$1,800.00",
		"email_report_rolling_monthly_total":         "$8,500.00",
		"email_report_cold_selling_downloads":        "<p>No sales found.</p>",
	}
}

func TestReportService_BuildReport(t *testing.T) {
	now := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	renderer := testRenderer(t, allBodyTags(t))

	svc, err := NewReportService(renderer, &fakeMailer{}, "Example Store",
		[]string{"admin@example.com"}, true, templates.ReportBody, templates.ReportShell)
	require.NoError(t, err)

	t.Run("happy: renders subject and substituted body", func(t *testing.T) {
		rendered, err := svc.BuildReport(context.Background(), now)
		require.NoError(t, err)

		assert.Equal(t, "Daily Sales Report for Example Store", rendered.Subject)
		assert.Contains(t, rendered.HTMLBody, "Daily Sales Report – Example Store")
		assert.Contains(t, rendered.HTMLBody, "September 1, 2026")
		assert.Contains(t, rendered.HTMLBody, "Happy Tuesday!")
		assert.Contains(t, rendered.HTMLBody, "1,234.50")
		assert.Contains(t, rendered.HTMLBody, "17 orders today")
		assert.Contains(t, rendered.HTMLBody, "<ul><li>Album A</li></ul>")
		assert.NotContains(t, rendered.HTMLBody, "{email_report_", "no placeholder may survive rendering")
	})

	t.Run("happy: deterministic for frozen time", func(t *testing.T) {
		first, err := svc.BuildReport(context.Background(), now)
		require.NoError(t, err)
		second, err := svc.BuildReport(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestReportService_SendDailyReport(t *testing.T) {
	now := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	t.Run("happy: delivers to configured recipients", func(t *testing.T) {
		mail := &fakeMailer{}
		svc, err := NewReportService(testRenderer(t, allBodyTags(t)), mail, "Example Store",
			[]string{"a@example.com", "b@example.com"}, true, templates.ReportBody, templates.ReportShell)
		require.NoError(t, err)

		require.NoError(t, svc.SendDailyReport(context.Background(), now))
		assert.Equal(t, 1, mail.sent)
		assert.Equal(t, []string{"a@example.com", "b@example.com"}, mail.to)
		assert.Equal(t, "Daily Sales Report for Example Store", mail.subject)
	})

	t.Run("bad: failed render sends no email", func(t *testing.T) {
		mail := &fakeMailer{}
		// Registry missing most of the body's tags.
		renderer := testRenderer(t, map[string]string{"email_report_currency": "$"})
		svc, err := NewReportService(renderer, mail, "Example Store",
			[]string{"a@example.com"}, true, templates.ReportBody, templates.ReportShell)
		require.NoError(t, err)

		err = svc.SendDailyReport(context.Background(), now)
		var unknown *report.UnknownTagError
		require.ErrorAs(t, err, &unknown)
		assert.Zero(t, mail.sent, "no partial report may ever be sent")
	})

	t.Run("bad: delivery failure is surfaced", func(t *testing.T) {
		mail := &fakeMailer{sendErr: errors.New("smtp: connection reset")}
		svc, err := NewReportService(testRenderer(t, allBodyTags(t)), mail, "Example Store",
			[]string{"a@example.com"}, true, templates.ReportBody, templates.ReportShell)
		require.NoError(t, err)

		assert.Error(t, svc.SendDailyReport(context.Background(), now))
	})
}
