package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-bankledger/actions"
	"go-bankledger/api"
	"go-bankledger/config"
	"go-bankledger/console"
	"go-bankledger/events"
	"go-bankledger/events/kafka"
	"go-bankledger/seed"
	"go-bankledger/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newLogger(cfg config.AppConfig) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Development() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func newPublisher(cfg config.AppConfig, logger *zap.Logger) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no kafka brokers configured, ledger events go to the log")
		return events.NewLogPublisher(logger)
	}
	logger.Info("publishing ledger events to kafka",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
	)
	return kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
}

func main() {
	mode := flag.String("mode", "server", "server, console or demo")
	flag.Parse()

	cfg := config.Load()
	logger := newLogger(cfg)
	defer logger.Sync()

	s := store.New(store.WithAccountStart(cfg.AccountStart))

	switch *mode {
	case "console", "demo":
		c := console.New(s, os.Stdin, os.Stdout, cfg.BankName)
		if *mode == "demo" {
			if err := c.Demo(); err != nil {
				logger.Fatal("demo failed", zap.Error(err))
			}
		}
		if err := c.Run(); err != nil {
			logger.Fatal("console failed", zap.Error(err))
		}
		return
	case "server":
	default:
		logger.Fatal("unknown mode", zap.String("mode", *mode))
	}

	if cfg.SeedSampleData {
		if err := seed.Sample(s); err != nil {
			logger.Fatal("failed to seed sample data", zap.Error(err))
		}
		logger.Info("sample data loaded", zap.Int("accounts", len(s.Accounts())))
	}

	publisher := newPublisher(cfg, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	dispatcher := actions.NewDispatcher(s, publisher, logger)
	router := api.NewHandler(dispatcher, logger, cfg.BankName).Router(cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting ledger server", zap.String("addr", cfg.HTTPAddr), zap.String("bank", cfg.BankName))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down ledger server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
}
