package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/anyulbade/storefront-email-reports/internal/config"
	"github.com/anyulbade/storefront-email-reports/internal/currency"
	"github.com/anyulbade/storefront-email-reports/internal/database"
	"github.com/anyulbade/storefront-email-reports/internal/handler"
	"github.com/anyulbade/storefront-email-reports/internal/mailer"
	"github.com/anyulbade/storefront-email-reports/internal/middleware"
	"github.com/anyulbade/storefront-email-reports/internal/report"
	"github.com/anyulbade/storefront-email-reports/internal/repository"
	"github.com/anyulbade/storefront-email-reports/internal/scheduler"
	"github.com/anyulbade/storefront-email-reports/internal/service"
	"github.com/anyulbade/storefront-email-reports/internal/templates"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(connectCtx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed data")
		}
	}

	statsRepo := repository.NewStatsRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	statsService := service.NewStatsService(statsRepo)
	fmtr := currency.Formatter{Symbol: cfg.CurrencySymbol, Position: cfg.CurrencyPosition}

	registry := report.NewRegistry()
	for _, tag := range report.DefaultTags(statsService, orderRepo, productRepo, fmtr) {
		if err := registry.Register(tag); err != nil {
			log.Fatal().Err(err).Str("tag", tag.Name).Msg("failed to register report tag")
		}
	}
	renderer := report.NewRenderer(registry)

	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		Enabled:  cfg.MailEnabled,
	})

	reportService, err := service.NewReportService(renderer, mail, cfg.StoreName,
		cfg.ReportRecipients, fmtr.Before(), templates.ReportBody, templates.ReportShell)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build report service")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}

	sched := scheduler.NewDaily(cfg.DeliveryHour, loc, func(ctx context.Context) {
		if err := reportService.SendDailyReport(ctx, time.Now().In(loc)); err != nil {
			log.Error().Err(err).Msg("scheduled report delivery failed")
		}
	})

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool)
	router.GET("/health", healthHandler.Health)

	reportHandler := handler.NewReportHandler(reportService, registry, cfg.AdminKey)
	settingsHandler := handler.NewSettingsHandler(sched, cfg.AdminKey)

	router.GET("/reports/preview", reportHandler.Preview)

	api := router.Group("/api/v1")
	{
		api.POST("/reports/send", reportHandler.Send)
		api.GET("/reports/tags", reportHandler.Tags)
		api.GET("/settings/delivery-time", settingsHandler.GetDeliveryTime)
		api.PUT("/settings/delivery-time", settingsHandler.UpdateDeliveryTime)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		log.Info().Int("hour", sched.Hour()).Str("timezone", cfg.Timezone).Msg("starting report scheduler")
		return sched.Start(gCtx)
	})

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server exited")
}
