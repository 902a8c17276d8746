package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rfwilliams11/pool-table-finder/config"
	deps "github.com/rfwilliams11/pool-table-finder/internal/debs"
	api "github.com/rfwilliams11/pool-table-finder/internal/http/rest"
	"github.com/rfwilliams11/pool-table-finder/util/logger"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
)

func main() {
	cfg := config.New()

	dependencies, err := deps.New(cfg)
	if err != nil {
		log.Fatalln("failed to initialise dependencies:", err)
	}
	defer dependencies.Close()

	lg := dependencies.Logger

	a := &api.API{
		Config: cfg,
		Deps:   dependencies,
	}
	a.Init()

	if cfg.GoogleMapsAPIKey == "" {
		lg.Warning("GOOGLE_MAPS_API_KEY is not set, the map page will show a configuration error")
	}

	serveErr := make(chan error, 1)
	go func() {
		lg.Info("server running", logger.Int("port", cfg.Port), logger.String("environment", cfg.Environment))
		if err := a.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		lg.Error("server stopped unexpectedly", logger.Error(err))
		return
	case sig := <-stopChan:
		lg.Info("request to shutdown server", logger.String("signal", sig.String()), logger.Duration("grace", allowConnectionsAfterShutdown))
	}

	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	lg.Info("shutting down server")
	if err := a.Shutdown(); err != nil {
		lg.Error("server shutdown failed", logger.Error(err))
	}
	lg.Info("server stopped")
}
