package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hundvakt-service/internal/infrastructure/config"
	"hundvakt-service/internal/infrastructure/persistence"
	"hundvakt-service/internal/interface/httpapi"
	docRepo "hundvakt-service/internal/interface/repository"
	"hundvakt-service/internal/usecase"
	"hundvakt-service/pkg/logger"
	"hundvakt-service/pkg/metrics"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Hundvakt Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection (remote store)
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	db := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Set up SQLite (device-local store)
	log.Info("Opening local store", "path", cfg.SQLitePath)
	sqliteDB, err := persistence.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		log.Fatal("Failed to open local store", "error", err)
	}

	// Set up repositories
	localRepo, err := docRepo.NewSQLiteDocumentRepository(sqliteDB)
	if err != nil {
		log.Fatal("Failed to set up local repository", "error", err)
	}
	remoteRepo := docRepo.NewMongoDocumentRepository(db)
	photoRepo := docRepo.NewMongoPhotoRepository(db)
	notifierRepo := docRepo.NewSMSNotifierRepository(cfg.SMSGatewayURL, cfg.SMSGatewayToken, log)

	// Set up metrics and usecases
	m := metrics.NewMetrics(cfg.MetricsNamespace)
	sessions := usecase.NewSessionManager(localRepo, remoteRepo, log, m)
	photoService := usecase.NewPhotoService(photoRepo, log, m)
	notifyService := usecase.NewNotifyService(notifierRepo, log)

	// Set up HTTP server
	handler := httpapi.NewHandler(sessions, photoService, notifyService, log)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(handler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect failed", "error", err)
	}
	if err := sqliteDB.Close(); err != nil {
		log.Error("Local store close failed", "error", err)
	}

	log.Info("Stopped")
}
