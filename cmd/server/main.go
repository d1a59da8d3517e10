// Package main is the entry point for the flight passenger registry service.
//
//	@title						Flight Passenger Registry API
//	@version					1.0.0
//	@description				Stores flights and their passenger manifests and answers passenger and flight queries.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-registry/flight-passenger-service/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/api
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-registry/flight-passenger-service/docs"

	// Application layers
	flighthttp "github.com/flight-registry/flight-passenger-service/internal/adapter/http"
	"github.com/flight-registry/flight-passenger-service/internal/adapter/http/middleware"
	"github.com/flight-registry/flight-passenger-service/internal/adapter/repository/dynamodb"
	"github.com/flight-registry/flight-passenger-service/internal/adapter/repository/memory"
	"github.com/flight-registry/flight-passenger-service/internal/adapter/repository/mongo"
	"github.com/flight-registry/flight-passenger-service/internal/config"
	"github.com/flight-registry/flight-passenger-service/internal/domain"
	"github.com/flight-registry/flight-passenger-service/internal/infrastructure/logger"
	"github.com/flight-registry/flight-passenger-service/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: logger.DefaultServiceName,
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("store", cfg.Store.Driver).
		Msg("Configuration loaded")

	store, err := newStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure store")
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	err = store.Connect(connectCtx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("Failed to connect to store")
	}

	if cfg.App.SeedSample {
		seedCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
		if _, err := usecase.SeedSampleData(seedCtx, store.Flights(), log); err != nil {
			log.Warn().Err(err).Msg("Failed to seed sample data")
		}
		cancel()
	}

	service := usecase.NewFlightService(store.Flights(), &usecase.Config{
		OperationTimeout: cfg.Store.Timeout,
		Logger:           log,
	})

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log, cfg.Server.CORSOrigins...)
	flighthttp.RegisterRoutes(e, flighthttp.NewFlightHandler(service, log))

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, store, log)
}

// newStore builds the persistence backend selected by STORE_DRIVER.
func newStore(cfg *config.Config, log *logger.Logger) (domain.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		database, err := cfg.Mongo.DatabaseName()
		if err != nil {
			return nil, err
		}
		return mongo.New(mongo.Config{
			URI:            cfg.Mongo.URI,
			Database:       database,
			Collection:     cfg.Mongo.Collection,
			ConnectTimeout: cfg.Store.Timeout,
			Logger:         log,
		}), nil
	case config.DriverDynamoDB:
		return dynamodb.New(dynamodb.Config{
			Table:    cfg.DynamoDB.Table,
			Region:   cfg.DynamoDB.Region,
			Endpoint: cfg.DynamoDB.Endpoint,
			Logger:   log,
		}), nil
	case config.DriverMemory:
		return memory.New(memory.Config{Logger: log}), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, store domain.Store, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}
	if err := store.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("Error closing store")
	}

	log.Info().Msg("Server stopped")
}
