// File: warrantydesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warrantydesk/clients/appointment"
	"warrantydesk/clients/scheduling"
	"warrantydesk/clients/suggestion"
	"warrantydesk/config"
	"warrantydesk/handlers"
	"warrantydesk/middleware"
	"warrantydesk/routes"
	"warrantydesk/services/draft"
	"warrantydesk/services/reconcile"
	"warrantydesk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitDraftCache()
	utils.StartHealthMonitor(utils.GetDraftCacheClient())

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.SessionMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-User-Id", "X-User-Role"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Backend collaborator clients.
	httpTimeout := time.Duration(config.AppConfig.HTTPTimeoutSec) * time.Second
	schedulingAPI := scheduling.NewHTTPSchedulingAPI(config.AppConfig.SchedulingAPIURL, httpTimeout)
	suggestionAPI := suggestion.NewHTTPSuggestionAPI(config.AppConfig.SuggestionAPIURL, httpTimeout)
	appointmentAPI := appointment.NewHTTPAppointmentAPI(config.AppConfig.AppointmentAPIURL, httpTimeout)

	// Draft session service around the reconciliation engine.
	engineDeps := reconcile.Deps{
		Scheduling:     schedulingAPI,
		Suggestion:     suggestionAPI,
		Appointment:    appointmentAPI,
		DebounceWindow: time.Duration(config.AppConfig.SuggestDebounceMs) * time.Millisecond,
		Logger:         logger,
	}
	snapshotStore := draft.NewRedisSnapshotStore(utils.GetDraftCacheClient())
	draftService := draft.NewDraftSessionService(
		engineDeps,
		snapshotStore,
		time.Duration(config.AppConfig.DraftTTLMin)*time.Minute,
		logger,
	)

	draftHandler := handlers.NewDraftHandler(draftService, logger)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentAPI, logger)

	routes.RegisterDraftRoutes(router, draftHandler)
	routes.RegisterAppointmentRoutes(router, appointmentHandler)
	routes.RegisterHealthRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
