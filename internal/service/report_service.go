package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anyulbade/storefront-email-reports/internal/report"
)

// Mailer delivers a rendered report. The SMTP implementation lives in
// internal/mailer; tests substitute their own.
type Mailer interface {
	Send(recipients []string, subject, htmlBody string) error
}

// RenderedReport is the final subject/body pair handed to the mailer. It
// is consumed immediately and never persisted.
type RenderedReport struct {
	Subject  string
	HTMLBody string
}

type ReportService struct {
	renderer       *report.Renderer
	mail           Mailer
	storeName      string
	recipients     []string
	currencyBefore bool
	bodyTmpl       *template.Template
	shellTmpl      *template.Template
}

func NewReportService(renderer *report.Renderer, mail Mailer, storeName string, recipients []string, currencyBefore bool, bodyTemplate, shellTemplate string) (*ReportService, error) {
	bodyTmpl, err := template.New("report-body").Parse(bodyTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse body template: %w", err)
	}
	shellTmpl, err := template.New("report-shell").Parse(shellTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse shell template: %w", err)
	}

	return &ReportService{
		renderer:       renderer,
		mail:           mail,
		storeName:      storeName,
		recipients:     recipients,
		currencyBefore: currencyBefore,
		bodyTmpl:       bodyTmpl,
		shellTmpl:      shellTmpl,
	}, nil
}

// Subject is the mail subject line every daily report carries.
func (s *ReportService) Subject() string {
	return fmt.Sprintf("Daily Sales Report for %s", s.storeName)
}

type bodyData struct {
	Date           string
	Weekday        string
	CurrencyBefore bool
}

type shellData struct {
	Heading   string
	StoreName string
	Body      template.HTML
}

// BuildReport renders the full report for the given point in time. The
// body template executes first (date header, greeting, currency
// position), then every {tag_name} placeholder in the result is resolved.
// Any failure aborts; no partial report is produced.
func (s *ReportService) BuildReport(ctx context.Context, now time.Time) (*RenderedReport, error) {
	var body bytes.Buffer
	err := s.bodyTmpl.Execute(&body, bodyData{
		Date:           now.Format("January 2, 2006"),
		Weekday:        now.Weekday().String(),
		CurrencyBefore: s.currencyBefore,
	})
	if err != nil {
		return nil, fmt.Errorf("execute body template: %w", err)
	}

	rendered, err := s.renderer.Render(ctx, body.String(), now)
	if err != nil {
		return nil, err
	}

	var shell bytes.Buffer
	err = s.shellTmpl.Execute(&shell, shellData{
		Heading:   fmt.Sprintf("Daily Sales Report – %s", s.storeName),
		StoreName: s.storeName,
		Body:      template.HTML(rendered),
	})
	if err != nil {
		return nil, fmt.Errorf("execute shell template: %w", err)
	}

	return &RenderedReport{
		Subject:  s.Subject(),
		HTMLBody: shell.String(),
	}, nil
}

// SendDailyReport renders the report and mails it to the configured
// recipients. A failed render sends nothing; a failed delivery is
// surfaced but not retried here, since the next scheduled run tries
// again naturally.
func (s *ReportService) SendDailyReport(ctx context.Context, now time.Time) error {
	rendered, err := s.BuildReport(ctx, now)
	if err != nil {
		return fmt.Errorf("build daily report: %w", err)
	}

	if err := s.mail.Send(s.recipients, rendered.Subject, rendered.HTMLBody); err != nil {
		return err
	}

	log.Info().
		Int("recipients", len(s.recipients)).
		Str("subject", rendered.Subject).
		Msg("daily report sent")
	return nil
}
