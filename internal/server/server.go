package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"expedientes/internal/ia"
	"expedientes/internal/reniec"
	"expedientes/internal/storage"
	"expedientes/internal/store"
	"expedientes/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	expedientes *store.ExpedienteRepository
	eventos     *store.EventoRepository
	reportes    *store.ReporteRepository
	archivos    *store.ArchivoRepository
	usuarios    *store.UsuarioRepository
	dashboard   *store.DashboardRepository

	uploads   *storage.LocalStore
	reniec    *reniec.Client
	ia        *ia.Client
	extractor *ia.Extractor

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	expedienteRepo *store.ExpedienteRepository,
	eventoRepo *store.EventoRepository,
	reporteRepo *store.ReporteRepository,
	archivoRepo *store.ArchivoRepository,
	usuarioRepo *store.UsuarioRepository,
	dashboardRepo *store.DashboardRepository,
	uploads *storage.LocalStore,
	reniecClient *reniec.Client,
	iaClient *ia.Client,
) *Service {
	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,

		expedientes: expedienteRepo,
		eventos:     eventoRepo,
		reportes:    reporteRepo,
		archivos:    archivoRepo,
		usuarios:    usuarioRepo,
		dashboard:   dashboardRepo,

		uploads:   uploads,
		reniec:    reniecClient,
		ia:        iaClient,
		extractor: ia.NewExtractor(uploads),

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.RecoverPanic)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/", s.handleHealth, http.MethodGet)

	r.HandleFunc("/api/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/api/reniec/:doc", s.handleReniecLookup, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/api/me", s.handleMe, http.MethodGet)

		r.HandleFunc("/api/expedientes/:id/analizar", s.handleAnalizarExpediente, http.MethodPost)
		r.HandleFunc("/api/archivos/:id/analizar", s.handleAnalizarArchivo, http.MethodPost)

		r.HandleFunc("/api/eventos/:id", s.handleUpdateEvento, http.MethodPut)
		r.HandleFunc("/api/eventos/:id", s.handleDeleteEvento, http.MethodDelete)
		r.HandleFunc("/api/reportes/:id", s.handleUpdateReporte, http.MethodPut)
		r.HandleFunc("/api/reportes/:id", s.handleDeleteReporte, http.MethodDelete)

		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireRole(types.RolAdmin))

			r.HandleFunc("/api/usuarios", s.handleListUsuarios, http.MethodGet)
			r.HandleFunc("/api/usuarios", s.handleCreateUsuario, http.MethodPost)

			r.HandleFunc("/api/expedientes/:id", s.handleDeleteExpediente, http.MethodDelete)
		})

		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireRole(types.RolAdmin, types.RolAbogado))

			r.HandleFunc("/api/expedientes/:id/eventos", s.handleCreateEvento, http.MethodPost)
			r.HandleFunc("/api/expedientes/:id/reportes", s.handleCreateReporte, http.MethodPost)
		})
	})

	// Read-mostly surface: works anonymously, attributes writes to the
	// caller when a valid token is present.
	r.Group(func(r *flow.Mux) {
		r.Use(s.OptionalAuth)

		r.HandleFunc("/api/expedientes", s.handleListExpedientes, http.MethodGet)
		r.HandleFunc("/api/expedientes", s.handleCreateExpediente, http.MethodPost)
		r.HandleFunc("/api/expedientes/:id", s.handleGetExpediente, http.MethodGet)
		r.HandleFunc("/api/expedientes/:id", s.handleUpdateExpediente, http.MethodPut)

		r.HandleFunc("/api/expedientes/:id/eventos", s.handleListEventos, http.MethodGet)
		r.HandleFunc("/api/expedientes/:id/reportes", s.handleListReportes, http.MethodGet)

		r.HandleFunc("/api/expedientes/:id/archivos", s.handleListArchivos, http.MethodGet)
		r.HandleFunc("/api/expedientes/:id/archivos", s.handleUploadArchivos, http.MethodPost)
		r.HandleFunc("/api/archivos/:id/download", s.handleDownloadArchivo, http.MethodGet)
		r.HandleFunc("/api/archivos/:id", s.handleDeleteArchivo, http.MethodDelete)

		r.HandleFunc("/api/dashboard", s.handleDashboard, http.MethodGet)
		r.HandleFunc("/api/dashboard/estado", s.handleDashboardEstado, http.MethodGet)
		r.HandleFunc("/api/dashboard/usuario", s.handleDashboardUsuario, http.MethodGet)
		r.HandleFunc("/api/dashboard/mes", s.handleDashboardMes, http.MethodGet)
		r.HandleFunc("/api/dashboard/resumen", s.handleDashboardResumen, http.MethodGet)
		r.HandleFunc("/api/dashboard/abiertos-cerrados", s.handleDashboardAbiertosCerrados, http.MethodGet)
	})

	r.Handle("/uploads/...", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploads.Root()))), http.MethodGet)
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondOK(w, map[string]any{"message": "Backend funcionando"})
}
