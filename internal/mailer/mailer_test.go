package mailer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("reports@example.com",
		[]string{"a@example.com", "b@example.com"},
		"Daily Sales Report for Example Store",
		"<h1>$1,234.50</h1>")

	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found, "message must separate headers from body")

	assert.Contains(t, headers, "From: reports@example.com")
	assert.Contains(t, headers, "To: a@example.com, b@example.com")
	assert.Contains(t, headers, "Subject: Daily Sales Report for Example Store")
	assert.Contains(t, headers, "Content-Type: text/html")
	assert.Equal(t, "<h1>$1,234.50</h1>", body)
}

func TestSMTPMailer_Send(t *testing.T) {
	t.Run("disabled mailer drops silently", func(t *testing.T) {
		m := New(Config{Enabled: false})
		assert.NoError(t, m.Send([]string{"a@example.com"}, "subject", "body"))
	})

	t.Run("no recipients is a delivery error", func(t *testing.T) {
		m := New(Config{Enabled: true, Host: "localhost", Port: "2525", From: "x@example.com"})
		err := m.Send(nil, "subject", "body")

		var delivery *DeliveryError
		require.ErrorAs(t, err, &delivery)
	})

	t.Run("unreachable server surfaces as delivery error", func(t *testing.T) {
		m := New(Config{Enabled: true, Host: "127.0.0.1", Port: "1", From: "x@example.com"})
		err := m.Send([]string{"a@example.com"}, "subject", "body")

		var delivery *DeliveryError
		require.ErrorAs(t, err, &delivery)
		assert.Error(t, errors.Unwrap(err))
	})
}
