// Copyright 2026 The Plantstein Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plantstein/plantstein/internal/audit"
	"github.com/plantstein/plantstein/internal/config"
	"github.com/plantstein/plantstein/internal/monitor"
	"github.com/plantstein/plantstein/internal/mqtt"
	"github.com/plantstein/plantstein/internal/observability/logger"
	"github.com/plantstein/plantstein/internal/observability/metrics"
	"github.com/plantstein/plantstein/internal/observability/tracing"
	"github.com/plantstein/plantstein/internal/plant"
	"github.com/plantstein/plantstein/internal/sensor"
	"github.com/plantstein/plantstein/internal/store/postgres"
	transportHTTP "github.com/plantstein/plantstein/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.InitLogger(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})
	slog.Info("starting plantstein server")

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrate(cfg); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Initialize context
	ctx := context.Background()

	// Initialize tracer
	tracer, err := tracing.New(ctx, tracing.Config{
		Enabled:        cfg.Observability.OTELEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		SamplingRate:   1.0,
	})
	if err != nil {
		slog.Error("failed to initialize tracer", logger.Error(err))
	}
	defer tracer.Shutdown(ctx)

	// Initialize meter
	_, err = metrics.New(ctx, metrics.Config{
		Enabled: cfg.Observability.OTELEnabled,
	}, cfg.Observability.ServiceName)
	if err != nil {
		slog.Error("failed to initialize meter", logger.Error(err))
	}

	// Initialize database
	db, err := postgres.New(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		slog.Error("failed to connect to database", logger.Error(err))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to database")

	// Initialize repositories
	plantRepo := postgres.NewPlantRepository(db)
	speciesRepo := postgres.NewSpeciesRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	moistureRepo := postgres.NewMoistureRepository(db)

	// Initialize services
	auditLogger := audit.NewSlogLogger()
	plantService := plant.NewService(plantRepo, speciesRepo, roomRepo, auditLogger)

	// Connect to the notification broker
	broker, err := mqtt.Connect(mqtt.Config{
		BrokerURL:      cfg.MQTT.BrokerURL,
		ClientID:       cfg.MQTT.ClientID,
		Username:       cfg.MQTT.Username,
		Password:       cfg.MQTT.Password,
		TopicPrefix:    cfg.MQTT.TopicPrefix,
		QoS:            byte(cfg.MQTT.QoS),
		ConnectTimeout: cfg.MQTT.ConnectTimeout,
		PublishTimeout: cfg.MQTT.PublishTimeout,
	})
	if err != nil {
		slog.Error("failed to connect to mqtt broker", logger.Error(err))
		os.Exit(1)
	}
	defer broker.Close()

	// Sensor bridge feeds ambient readings and moisture history
	bridge := sensor.NewBridge(plantRepo, moistureRepo, cfg.Monitor.ReadingMaxAge)
	if err := bridge.Start(broker, cfg.MQTT.SensorTopic, byte(cfg.MQTT.QoS)); err != nil {
		slog.Error("failed to subscribe sensor bridge", logger.Error(err))
		os.Exit(1)
	}

	// Condition monitor
	checker := monitor.NewChecker(
		monitor.Slack{
			Brightness:  cfg.Monitor.BrightnessSlack,
			Temperature: cfg.Monitor.TemperatureSlack,
			Humidity:    cfg.Monitor.HumiditySlack,
		},
		monitor.Bands{
			DryBelow: cfg.Monitor.MoistureDryBelow,
			WetAbove: cfg.Monitor.MoistureWetAbove,
		},
	)
	scanner := monitor.NewScanner(roomRepo, plantRepo, bridge, moistureRepo, checker, broker, auditLogger)
	scheduler := monitor.NewScheduler(scanner, cfg.Monitor.Interval)
	scheduler.Start(ctx)

	// Rate Limiter
	rateLimiter := transportHTTP.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Initialize HTTP handler
	handler := transportHTTP.NewHandler(plantService, scanner, bridge, moistureRepo)
	router := transportHTTP.NewRouter(handler, rateLimiter)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server
	go func() {
		slog.Info("starting http server", logger.Component("server"), logger.Operation("listen"))
		slog.Info(fmt.Sprintf("listening on %s", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	// Stop scheduling new scans before tearing down collaborators
	scheduler.Stop()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", logger.Error(err))
	}

	slog.Info("server stopped")
}

func runMigrate(cfg *config.Config) error {
	ctx := context.Background()
	db, err := postgres.New(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println("Applying initial schema...")
	if err := db.Migrate(ctx, postgres.InitialSchema); err != nil {
		return err
	}
	fmt.Println("Migration successful.")
	return nil
}
