package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool
	GinMode     string

	StoreName        string
	CurrencySymbol   string
	CurrencyPosition string
	Timezone         string
	DeliveryHour     int
	AdminKey         string
	ReportRecipients []string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailEnabled  bool
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "reports"),
		DBPassword:  getEnv("DB_PASSWORD", "reports_secret"),
		DBName:      getEnv("DB_NAME", "reports"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",
		GinMode:     getEnv("GIN_MODE", "debug"),

		StoreName:        getEnv("STORE_NAME", "Example Store"),
		CurrencySymbol:   getEnv("CURRENCY_SYMBOL", "$"),
		CurrencyPosition: getEnv("CURRENCY_POSITION", "before"),
		Timezone:         getEnv("TIMEZONE", "UTC"),
		DeliveryHour:     getDeliveryHour(),
		AdminKey:         getEnv("ADMIN_KEY", ""),
		ReportRecipients: splitList(getEnv("REPORT_RECIPIENTS", "")),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		MailFrom:     getEnv("MAIL_FROM", "reports@localhost"),
		MailEnabled:  getEnv("MAIL_ENABLED", "false") == "true",
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// getDeliveryHour reads the daily send hour. The store only offers whole
// hours between 1 PM and 11 PM local time; anything else falls back to
// the 6 PM default.
func getDeliveryHour() int {
	hour, err := strconv.Atoi(getEnv("DELIVERY_HOUR", "18"))
	if err != nil || hour < 13 || hour > 23 {
		return 18
	}
	return hour
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
