package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/campus-registry/internal/config"
	"github.com/example/campus-registry/internal/credential"
	httptransport "github.com/example/campus-registry/internal/http"
	"github.com/example/campus-registry/internal/persistence/sqlite"
	"github.com/example/campus-registry/internal/registry"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	poolConfig := sqlite.DefaultPoolConfig(cfg.SQLiteDSN)
	poolConfig.OperationTimeout = cfg.OperationTimeout

	store, err := sqlite.Open(poolConfig)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close store", "error", cerr)
		}
	}()

	if err := store.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	hasher := credential.NewHasher(cfg.BcryptCost)
	personService := registry.NewPersonService(store.Persons, hasher, logger)
	roomService := registry.NewRoomService(store.Rooms, logger)
	usageService := registry.NewUsageService(store.Usages, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Persons: httptransport.NewPersonHandler(personService, logger),
		Rooms:   httptransport.NewRoomHandler(roomService, logger),
		Usages:  httptransport.NewUsageHandler(usageService, logger),
	})
	handler := httptransport.RequestLogger(logger)(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("registry API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
