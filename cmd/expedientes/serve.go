package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expedientes/internal/db"
	"expedientes/internal/ia"
	"expedientes/internal/reniec"
	"expedientes/internal/server"
	"expedientes/internal/storage"
	"expedientes/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	expedienteRepo := store.NewExpedienteRepository(pool)
	eventoRepo := store.NewEventoRepository(pool)
	reporteRepo := store.NewReporteRepository(pool)
	archivoRepo := store.NewArchivoRepository(pool)
	usuarioRepo := store.NewUsuarioRepository(pool)
	dashboardRepo := store.NewDashboardRepository(pool)

	uploads, err := storage.NewLocalStore(config.UploadDir)
	if err != nil {
		return err
	}

	reniecClient := reniec.New(config.ReniecBaseURL, config.ReniecToken)
	iaClient := ia.New(config.IABaseURL, config.IAAPIKey, config.IAModel)

	if !iaClient.Configured() {
		logger.Warn("OPENAI_API_KEY not set, document analysis is disabled")
	}

	srv := server.New(
		config,
		logger,
		expedienteRepo,
		eventoRepo,
		reporteRepo,
		archivoRepo,
		usuarioRepo,
		dashboardRepo,
		uploads,
		reniecClient,
		iaClient,
	)

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
