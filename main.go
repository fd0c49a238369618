package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/finwall/backend/internal/config"
	v1 "github.com/finwall/backend/internal/controllers/v1"
	"github.com/finwall/backend/internal/ledger"
	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/notifications"
	"github.com/finwall/backend/internal/recurring"
	"github.com/finwall/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(os.Getenv("FINWALL_CONFIG"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && cfg.Server.Mode == gin.DebugMode) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Server.Mode == gin.DebugMode {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create the data directory for the database file
	err = os.MkdirAll(filepath.Dir(cfg.Database.Path), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(cfg.Database.Path + "?_pragma=foreign_keys(1)")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Default categories for the shared owner, created only when missing
	err = models.SeedCategories(models.DB, uuid.Nil)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	var sink notifications.Sink = notifications.LogSink{}
	if cfg.Email.Enabled {
		sink = notifications.MultiSink{
			notifications.LogSink{},
			notifications.NewMailSink(notifications.MailConfig{
				Host:     cfg.Email.Host,
				Port:     cfg.Email.Port,
				Username: cfg.Email.Username,
				Password: cfg.Email.Password,
				From:     cfg.Email.From,
				To:       cfg.Email.To,
			}),
		}
	}

	budgetLedger := ledger.New(sink)
	v1.Configure(budgetLedger)

	r := router.Config(*cfg)
	router.AttachRoutes(*cfg, r.Group("/"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Trigger the recurring processor on an interval so due schedules are
	// picked up without an API call
	processor := recurring.NewProcessor(models.DB, budgetLedger)
	go func() {
		ticker := time.NewTicker(cfg.Recurring.Interval)
		defer ticker.Stop()

		for {
			if _, err := processor.Run(ctx, time.Now()); err != nil {
				log.Error().Err(err).Msg("recurring processing failed")
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()
	log.Info().Str("port", cfg.Server.Port).Msg("backend started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
