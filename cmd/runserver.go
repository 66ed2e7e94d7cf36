package cmd

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/homedash/homedash-services/api/middleware"
	"github.com/homedash/homedash-services/api/services"
	"github.com/homedash/homedash-services/db"
	"github.com/homedash/homedash-services/internal/appconfig"
	"github.com/homedash/homedash-services/internal/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var runServerCmd = &cobra.Command{
	Use:   "runserver",
	Short: "Run the server",
	Long:  `Run the homedash services server`,
	Run: func(cmd *cobra.Command, args []string) {

		// Init the logging
		setUp()

		appCfg, err := appconfig.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		if host != "" {
			appCfg.Host = host
		}
		if port != 0 {
			appCfg.Port = port
		}

		logger := log.With().Str("component", "db").Logger()
		dashboardDB, err := db.NewDashboardDB(appCfg.Database, &logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		defer dashboardDB.Close()

		svc := &services.Service{
			Config:  appCfg,
			DB:      dashboardDB,
			Checker: healthcheck.New(time.Duration(appCfg.Health.Timeout)),
		}

		r := newRouter(svc, appCfg)

		addr := fmt.Sprintf("%s:%d", appCfg.Host, appCfg.Port)
		log.Info().Msg(fmt.Sprintf("Server started at %s", addr))
		if err := http.ListenAndServe(addr, r); err != nil {
			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func newRouter(svc *services.Service, appCfg *appconfig.Config) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.WithLogger, middleware.Metrics)

	// The resource routes all use the same auth guard
	guard := middleware.JWTMiddleware(appCfg.Auth.Secret)
	protected := func(h http.HandlerFunc) http.Handler { return guard(h) }

	// Auth
	r.HandleFunc("/api/auth/signup", svc.SignupService).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", svc.LoginService).Methods(http.MethodPost)
	r.Handle("/api/auth/check", protected(svc.CheckService)).Methods(http.MethodGet)

	// Dashboard
	r.Handle("/api/dashboard", protected(svc.DashboardService)).Methods(http.MethodGet)

	// Tiles. The fixed paths must be registered before the {id} routes.
	r.Handle("/api/tiles/order", protected(svc.ReorderTilesService)).Methods(http.MethodPut)
	r.Handle("/api/tiles/move", protected(svc.MoveTileService)).Methods(http.MethodPut)
	r.Handle("/api/tiles", protected(svc.CreateTileService)).Methods(http.MethodPost)
	r.Handle("/api/tiles/{id:[0-9]+}", protected(svc.UpdateTileService)).Methods(http.MethodPut)
	r.Handle("/api/tiles/{id:[0-9]+}", protected(svc.DeleteTileService)).Methods(http.MethodDelete)

	// Groups
	r.Handle("/api/groups/order", protected(svc.ReorderGroupsService)).Methods(http.MethodPut)
	r.Handle("/api/groups", protected(svc.CreateGroupService)).Methods(http.MethodPost)
	r.Handle("/api/groups/{id:[0-9]+}", protected(svc.RenameGroupService)).Methods(http.MethodPut)
	r.Handle("/api/groups/{id:[0-9]+}", protected(svc.DeleteGroupService)).Methods(http.MethodDelete)

	// Backup
	r.Handle("/api/backup/export", protected(svc.ExportBackupService)).Methods(http.MethodGet)
	r.Handle("/api/backup/import", protected(svc.ImportBackupService)).Methods(http.MethodPost)

	// Backgrounds: management endpoints plus static serving of the images
	r.Handle("/api/backgrounds", protected(svc.ListBackgroundsService)).Methods(http.MethodGet)
	r.Handle("/api/backgrounds/upload", protected(svc.UploadBackgroundService)).Methods(http.MethodPost)
	r.Handle("/api/backgrounds/{filename}", protected(svc.DeleteBackgroundService)).Methods(http.MethodDelete)
	r.PathPrefix("/api/backgrounds/").Handler(
		http.StripPrefix("/api/backgrounds/",
			noDirListing(http.FileServer(http.Dir(appCfg.Backgrounds.Dir))))).Methods(http.MethodGet)

	// Health probe
	r.Handle("/api/health/check", protected(svc.HealthCheckService)).Methods(http.MethodPost)

	// Metrics
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// noDirListing serves individual files only. Directory requests would
// otherwise render the file server's auto-index, disclosing the filename
// list that GET /api/backgrounds guards behind auth.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func init() {
	rootCmd.AddCommand(runServerCmd)
	runServerCmd.Flags().StringVar(&host, "host", "", "host to run the server on (overrides config)")
	runServerCmd.Flags().IntVar(&port, "port", 0, "port to run the server on (overrides config)")
}
