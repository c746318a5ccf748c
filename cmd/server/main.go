package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/dairy-collection-service/internal/config"
	"github.com/sangkips/dairy-collection-service/internal/db"
	"github.com/sangkips/dairy-collection-service/internal/domains/customers"
	"github.com/sangkips/dairy-collection-service/internal/domains/entries"
	"github.com/sangkips/dairy-collection-service/internal/health"
	"github.com/sangkips/dairy-collection-service/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	config.ConfigureLogger(cfg)

	dbConn, err := db.ConnectAndMigrate(cfg.DBURL, db.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		Migrate:         cfg.MigrateOnStart,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbConn.Close()

	router := server.NewRouter(server.Handlers{
		Customers: customers.NewHandler(dbConn),
		Entries:   entries.NewHandler(dbConn),
		Health:    health.NewHandler(dbConn),
	}, cfg.CORSOrigin)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("cors_origin", cfg.CORSOrigin).Msg("server starting on :" + cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("failed to start server")
	}

	<-shutdownDone

	log.Info().Msg("server stopped")
}
