package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"go.uber.org/dig"

	"p2p-delivery/internal/config"
	"p2p-delivery/internal/http/pprofserver"
	"p2p-delivery/internal/logx"
	"p2p-delivery/internal/sweeper"
	"p2p-delivery/internal/transport/kafka"
)

// MustRun starts the service using the provided DI container.
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

type runIn struct {
	dig.In

	Ctx      context.Context
	Cfg      *config.Config
	Logger   logx.Logger
	Server   *http.Server
	Sweeper  *sweeper.Sweeper
	Producer *kafka.Producer
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		if err := in.Sweeper.Start(); err != nil {
			return fmt.Errorf("start sweeper: %w", err)
		}

		pprofSrv := startPprof(in.Cfg, in.Logger)
		startServer(in.Server, in.Logger)

		<-in.Ctx.Done()
		in.Logger.Info("shutting down")

		in.Sweeper.Stop()
		gracefulShutdown(in.Server, in.Logger, 15*time.Second)
		if pprofSrv != nil {
			gracefulShutdown(pprofSrv, in.Logger, 5*time.Second)
		}
		if err := in.Producer.Close(); err != nil {
			in.Logger.Warn("producer close failed", logx.Err(err))
		}
		return in.Ctx.Err()
	})
}

func startServer(server *http.Server, logger logx.Logger) {
	go func() {
		logger.Info("dispatch service listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func startPprof(cfg *config.Config, logger logx.Logger) *http.Server {
	if cfg.PprofPort == 0 {
		return nil
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.PprofPort),
		Handler:           pprofserver.Handler(pprofserver.Config{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("pprof listening", logx.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("pprof listen error", logx.Err(err))
		}
	}()
	return srv
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Err(err))
	}
}
