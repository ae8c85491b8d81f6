package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/soar/gamepadlab/internal/config"
	"github.com/soar/gamepadlab/internal/haptics"
	"github.com/soar/gamepadlab/internal/hub"
	applog "github.com/soar/gamepadlab/internal/log"
	"github.com/soar/gamepadlab/internal/poller"
	"github.com/soar/gamepadlab/internal/prefs"
	"github.com/soar/gamepadlab/internal/registry"
	"github.com/soar/gamepadlab/internal/server"
	"github.com/soar/gamepadlab/internal/source"
	"github.com/soar/gamepadlab/internal/tray"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(2)
	}

	logger, logCloser, err := applog.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		os.Stderr.WriteString("logging: " + err.Error() + "\n")
		os.Exit(2)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	store := prefs.NewStore(cfg.PrefsFile, logger)
	if cfg.Simulate {
		store.SetSimulationMode(true)
	}

	feed := source.NewFeed()
	reg := registry.New()
	dispatcher := haptics.NewDispatcher(reg, logger)

	p := poller.New(feed, reg, store, logger, poller.WithBinder(dispatcher))
	pollerDone := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(pollerDone)
	}()

	h := hub.New(hub.Deps{
		Feed:       feed,
		Prefs:      store,
		Registry:   reg,
		Dispatcher: dispatcher,
		Log:        logger,
	})
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, reg, store, p)
	go broadcaster.Run(ctx)

	srv := server.New(h, broadcaster, getFrontendFS(), cfg.Addr, logger)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	url := "http://localhost" + normalizeAddr(cfg.Addr)
	logger.Info("GamepadLab started", "url", url, "simulation", store.Current().SimulationMode)

	shutdownRequested := make(chan struct{})
	// Tray support is only reliable on desktop Windows; elsewhere the
	// process is expected to run from a terminal.
	if cfg.Tray && runtime.GOOS == "windows" {
		go func() {
			t := tray.New(url, logger, func() {
				close(shutdownRequested)
			})
			t.Run(tray.GetIcon())
		}()
	} else {
		logger.Info("press Ctrl+C to exit")
	}

	select {
	case <-sigCh:
		logger.Info("shutting down")
		cancel()
	case <-shutdownRequested:
		logger.Info("shutdown requested from tray")
		cancel()
	case err := <-serverErrCh:
		logger.Error("HTTP server error", "error", err)
		cancel()
	}

	p.Stop()
	<-pollerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("GamepadLab stopped")
}

// normalizeAddr turns a listen address into a host-relative ":port" suffix
// for display.
func normalizeAddr(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ":" + addr
}
