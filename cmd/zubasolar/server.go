package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmkabwe/zubasolar/internal/catalog"
	"github.com/dmkabwe/zubasolar/internal/job"
	"github.com/dmkabwe/zubasolar/internal/logger"
	"github.com/dmkabwe/zubasolar/internal/order"
	"github.com/dmkabwe/zubasolar/internal/profile"
	"github.com/dmkabwe/zubasolar/internal/rating"
	"github.com/dmkabwe/zubasolar/internal/router"
	storage "github.com/dmkabwe/zubasolar/internal/storage/postgres"
	"github.com/dmkabwe/zubasolar/internal/user"
)

func main() {
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	cfg, err := NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := storage.NewPostgresStorage(cfg.DatabaseConnection)
	if err != nil {
		log.Fatalf("Failed to initialize Postgres storage: %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: failed to close storage: %v", err)
		}
	}()

	userSvc := user.NewService(store, []byte(cfg.JWTSecret), cfg.JWTTTL)
	userHandler := user.NewHandler(userSvc)

	orderSvc := order.NewService(store)
	orderHandler := order.NewHandler(orderSvc)

	jobSvc := job.NewService(store)
	jobHandler := job.NewHandler(jobSvc)

	ratingSvc := rating.NewService(store)
	ratingHandler := rating.NewHandler(ratingSvc)

	profileSvc := profile.NewService(store)
	profileHandler := profile.NewHandler(profileSvc)

	catalogHandler := catalog.NewHandler()

	r := router.NewRouter(
		userHandler,
		orderHandler,
		jobHandler,
		ratingHandler,
		profileHandler,
		catalogHandler,
		[]byte(cfg.JWTSecret),
		store,
	)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}
	fulfillment := &order.HTTPFulfillmentClient{
		Client:             httpClient,
		FulfillmentAddress: cfg.FulfillmentAddress,
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	go func() {
		order.DispatcherLoop(
			workerCtx,
			fulfillment,
			orderSvc,
			cfg.FulfillmentWorkers,
			cfg.FulfillmentInterval,
		)
	}()

	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
