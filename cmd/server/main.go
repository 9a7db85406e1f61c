package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"mesaYaCore/internal/config"
	assignapp "mesaYaCore/internal/modules/assignment/application"
	assigntransport "mesaYaCore/internal/modules/assignment/interface"
	availapp "mesaYaCore/internal/modules/availability/application"
	availtransport "mesaYaCore/internal/modules/availability/interface"
	clientsinfra "mesaYaCore/internal/modules/clients/infrastructure"
	rtapp "mesaYaCore/internal/modules/realtime/application"
	rtinfra "mesaYaCore/internal/modules/realtime/infrastructure"
	rttransport "mesaYaCore/internal/modules/realtime/interface"
	resapp "mesaYaCore/internal/modules/reservations/application"
	resinfra "mesaYaCore/internal/modules/reservations/infrastructure"
	restransport "mesaYaCore/internal/modules/reservations/interface"
	restinfra "mesaYaCore/internal/modules/restaurants/infrastructure"
	tablesapp "mesaYaCore/internal/modules/tables/application"
	tablesinfra "mesaYaCore/internal/modules/tables/infrastructure"
	tablestransport "mesaYaCore/internal/modules/tables/interface"
	"mesaYaCore/internal/platform/broker"
	"mesaYaCore/internal/platform/database"
	"mesaYaCore/internal/shared/auth"
	"mesaYaCore/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	db, err := database.Open(cfg.Database.User, cfg.Database.Pass, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	if err != nil {
		slog.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database connected", slog.String("host", cfg.Database.Host), slog.String("name", cfg.Database.Name))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, layout cache disabled", slog.Any("error", err))
			redisClient = nil
		}
		cancel()
	}

	// Realtime fan-out: websocket hub plus an optional Kafka mirror.
	hub := rtinfra.NewHub()
	publisher := broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer publisher.Close()
	notifier := rtapp.NewNotifier(hub, publisher)

	tableRepo := tablesinfra.NewTableRepository(db)
	reservationRepo := resinfra.NewReservationRepository(db)
	restaurantRepo := restinfra.NewRestaurantRepository(db)
	directory := clientsinfra.NewMySQLDirectory(db)
	layoutCache := tablesinfra.NewLayoutCache(redisClient, cfg.Redis.LayoutTTL)

	registry := tablesapp.NewRegistry(tableRepo, reservationRepo, restaurantRepo, layoutCache, notifier)
	store := resapp.NewStore(reservationRepo, restaurantRepo, directory, tableRepo, notifier)
	engine := availapp.NewEngine(tableRepo, reservationRepo, restaurantRepo)
	coordinator := assignapp.NewCoordinator(reservationRepo, tableRepo, directory, notifier)

	validator, err := auth.NewJWTValidator(cfg.Security.JWTSecret, cfg.Security.JWTPublicKey)
	if err != nil {
		log.Fatalf("jwt validator: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())

	tablestransport.NewTableHandler(registry).Register(e)
	availtransport.NewAvailabilityHandler(engine).Register(e)
	assigntransport.NewAssignmentHandler(coordinator).Register(e)
	restransport.NewReservationHandler(store).Register(e)

	restaurantWS := rttransport.NewRestaurantWebsocketHandler(hub, validator, cfg.Websocket.SendBuffer)
	customerWS := rttransport.NewCustomerWebsocketHandler(hub, validator, cfg.Websocket.SendBuffer)
	e.GET("/ws/restaurant/:id/:token", restaurantWS)
	e.GET("/ws/restaurant/:id", restaurantWS)
	e.GET("/ws/customer/:token", customerWS)
	e.GET("/ws/customer", customerWS)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"success": true, "status": "ok"})
	})

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Warn("server shutdown error", slog.Any("error", err))
	}
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
