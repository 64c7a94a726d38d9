package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/daily-ballot/cliparse"
	"github.com/danielhkuo/daily-ballot/db"
	"github.com/danielhkuo/daily-ballot/metrics"
	"github.com/danielhkuo/daily-ballot/router"
	"github.com/danielhkuo/daily-ballot/store"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	// Open the ballot store
	s, err := openStore(cfg)
	if err != nil {
		slog.Error("store setup failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer s.Close()
	slog.Info("Ballot store ready", "type", cfg.DatabaseType)

	// Create router
	handler := router.NewRouter(s, metrics.NewVotingMetrics("dailyballot"), cfg)

	// Create server
	server := http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		return
	}

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	if err := serve(&server, ln, ctrlc, cfg.RequestTimeout); err != nil {
		slog.Error("Server closed", "error", err)
		return
	}
	slog.Info("Server closed")
}

// serve handles requests on ln until stop fires, then drains in-flight
// requests for up to timeout. It returns only once draining is over, so
// the store can be closed safely afterwards.
func serve(server *http.Server, ln net.Listener, stop <-chan os.Signal, timeout time.Duration) error {
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-stop
		shutdown(server, timeout)
	}()

	// Serve returns as soon as Shutdown starts, not when it finishes
	if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	<-drained
	return nil
}

// shutdown stops accepting connections and waits up to timeout for
// in-flight requests before forcing them closed
func shutdown(server *http.Server, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("graceful shutdown failed", "error", err)
		server.Close()
	}
}

func newLogger(cfg cliparse.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func openStore(cfg cliparse.Config) (store.Store, error) {
	if cfg.DatabaseType == db.TypeMemory {
		return store.NewMemoryStore(), nil
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Create schema (tables)
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return store.NewSQLStore(conn, cfg.DatabaseType), nil
}
