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

	"github.com/afriklabprojet/ouagachap-backend-sub001/cmd"
	httpin "github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/in/http"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/kafka"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres/courierrepo"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/adapters/out/postgres/paymentrepo"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/core/ports"
	"github.com/afriklabprojet/ouagachap-backend-sub001/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.TransitionDTO{},
		&courierrepo.CourierDTO{}, &courierrepo.AssignmentOutcomeDTO{},
		&paymentrepo.PaymentDTO{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	var publisher ports.EventPublisher
	if len(config.KafkaBrokers) > 0 {
		saramaPublisher, err := kafka.NewSaramaEventPublisher(
			config.KafkaBrokers, config.KafkaEventsTopic, logger)
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer func() {
			if closeErr := saramaPublisher.Close(); closeErr != nil {
				logger.Warn("failed to close kafka producer", "error", closeErr)
			}
		}()
		publisher = saramaPublisher
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events will not be published")
	}

	root := cmd.NewCompositionRoot(config, db, publisher, logger)

	jobManager := jobs.NewJobManager(
		root.CreateDispatchPendingOrdersCommandHandler(),
		config.DispatchSchedule,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	server := httpin.NewServer(httpin.ServerParams{
		CreateOrder:     root.CreateCreateOrderCommandHandler(),
		AssignOrder:     root.CreateAssignOrderCommandHandler(),
		TransitionOrder: root.CreateTransitionOrderCommandHandler(),
		RegisterCourier: root.CreateRegisterCourierCommandHandler(),
		UpdateLocation:  root.CreateUpdateCourierLocationCommandHandler(),
		InitiatePayment: root.CreateInitiatePaymentCommandHandler(),
		ConfirmPayment:  root.CreateConfirmPaymentCommandHandler(),

		GetActiveOrders:       root.CreateGetActiveOrdersQueryHandler(),
		GetOrderHistory:       root.CreateGetOrderHistoryQueryHandler(),
		GetAvailableCouriers:  root.CreateGetAvailableCouriersQueryHandler(),
		GetDispatchCandidates: root.CreateGetDispatchCandidatesQueryHandler(),
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil &&
			err != http.ErrServerClosed {
			logger.Error("http server stopped", "error", err)
		}
	}()
	logger.Info("service started", "port", config.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
