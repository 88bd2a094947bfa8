package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"super-app-media/conf"
	"super-app-media/controller"
	"super-app-media/database"
	"super-app-media/service/upload_service"
	"super-app-media/store"
)

var ENV string

func init() {
	flag.StringVar(&ENV, "env", "mainnet", "Environment: loc/mainnet/testnet")
}

// @title           Super App Media API
// @version         1.0
// @description     Media upload and serving service with chunked storage and byte-range downloads

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes https http

func main() {
	// Initialize all components
	srv, cleanup := initAll()
	defer cleanup()

	// Start HTTP API service (in goroutine)
	go startServer(srv)
	log.Println("Media API service started successfully")

	// Wait for shutdown signal
	waitForShutdown()

	log.Println("Shutting down media service...")

	// Gracefully shutdown HTTP service
	shutdownServer(srv)

	log.Println("Server exited")
}

// initEnv initialize environment
func initEnv() {
	if ENV == "loc" {
		conf.SystemEnvironmentEnum = conf.LocalEnvironmentEnum
	} else if ENV == "mainnet" {
		conf.SystemEnvironmentEnum = conf.MainnetEnvironmentEnum
	} else if ENV == "testnet" {
		conf.SystemEnvironmentEnum = conf.TestnetEnvironmentEnum
	} else if ENV == "example" {
		conf.SystemEnvironmentEnum = conf.ExampleEnvironmentEnum
	}
	fmt.Printf("Environment: %s\n", ENV)
}

// initAll initialize all components
func initAll() (*http.Server, func()) {
	// Parse command line parameters
	flag.Parse()

	// Set environment
	initEnv()

	// Initialize configuration
	if err := conf.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	log.Printf("Configuration loaded: env=%s, port=%s, db=%s", ENV, conf.Cfg.Port, conf.Cfg.Database.Type)

	// Initialize database
	db, err := newDatabase()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis cache (optional, nil when disabled or unreachable)
	cache := database.NewCache(&conf.Cfg.Redis)

	// Wire the chunked store and upload service
	bucket := store.NewBucket(db, cache, conf.Cfg.Uploader.BucketName, conf.Cfg.Uploader.ChunkSize)
	uploadService := upload_service.NewUploadService(bucket, &upload_service.Limits{
		AllowedTypes:     conf.Cfg.Uploader.AllowedTypes,
		MaxFileSize:      conf.Cfg.Uploader.MaxFileSize,
		MaxVideoDuration: conf.Cfg.Uploader.MaxVideoDuration,
	}, conf.Cfg.Uploader.MaxFilesPerBatch)

	// Setup router
	router := controller.SetupRouter(bucket, uploadService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + conf.Cfg.Port,
		Handler: router,
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
		if err := cache.Close(); err != nil {
			log.Printf("Failed to close Redis: %v", err)
		}
	}

	return srv, cleanup
}

// newDatabase create the database from configuration
func newDatabase() (database.Database, error) {
	switch database.DBType(conf.Cfg.Database.Type) {
	case database.DBTypePebble:
		return database.NewDatabase(database.DBTypePebble, &database.PebbleConfig{
			DataDir: conf.Cfg.Database.DataDir,
		})
	default:
		return database.NewDatabase(database.DBTypeMySQL, &database.MySQLConfig{
			DSN:          conf.Cfg.Database.Dsn,
			MaxOpenConns: conf.Cfg.Database.MaxOpenConns,
			MaxIdleConns: conf.Cfg.Database.MaxIdleConns,
		})
	}
}

// startServer start HTTP server
func startServer(srv *http.Server) {
	log.Printf("Media API service starting on port %s...", conf.Cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// waitForShutdown wait for shutdown signal
func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

// shutdownServer gracefully shutdown server
func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
