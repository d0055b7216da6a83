package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/resume"
)

const (
	shutdownTimeout = 15 * time.Second
	cleanupInterval = time.Hour
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, logger, err := loadConfig(cmd, os.Stdout)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(logger)
	gin.SetMode(cfg.Server.Mode)

	logger.Info("starting portfolio", "version", getVersion(), "commit", getCommit())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var metrics *Metrics
	if cfg.Metrics.Enabled {
		metrics, err = OpenMetrics(cfg.Metrics.DSN, cfg.Metrics.Retention, logger)
		if err != nil {
			return err
		}
		defer metrics.Close()
		go metrics.RunCleanup(ctx, cleanupInterval)
	}

	locator := cfg.ProbeOrigin() + resume.DocumentPath
	prober := resume.NewProber(&http.Client{Timeout: cfg.Resume.ProbeTimeout}, logger)
	cell := resume.NewCell(prober, locator)
	cell.OnResolve(func(v resume.Verdict) {
		logger.Info("resume probe resolved", "locator", locator, "verdict", v.String())
	})

	router, err := newRouter(cfg, logger, cell, metrics)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// The server may be probing itself, so the probe starts once the
	// listener is up.
	cell.Mount(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		cell.Teardown()
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down")
	cell.Teardown()
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}
