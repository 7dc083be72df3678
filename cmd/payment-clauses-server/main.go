package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/iwvelando/payment-clauses/internal/conciliacao"
	"github.com/iwvelando/payment-clauses/internal/config"
	"github.com/iwvelando/payment-clauses/internal/engine"
	"github.com/iwvelando/payment-clauses/internal/server"
	"github.com/iwvelando/payment-clauses/pkg/constants"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := config.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	eng := engine.New(logger, engine.NewMemoryStore())
	eng.OnBalanceChange(func(id uuid.UUID, r conciliacao.Result) {
		if !r.IsBalanced {
			logger.Warn("stored contract is unbalanced",
				zap.String("op", "main"),
				zap.String("contrato", id.String()),
				zap.Float64("diferenca", r.Difference),
			)
		}
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      server.NewHandler(logger, eng, cfg.BodySizeBytes(), version),
		ReadTimeout:  cfg.Timeouts.ReadTimeout(),
		WriteTimeout: cfg.Timeouts.WriteTimeout(),
		IdleTimeout:  cfg.Timeouts.IdleTimeout(),
	}

	go func() {
		logger.Info("listening",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server", zap.String("op", "main"))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
