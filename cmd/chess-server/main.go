// Package main implements the chess server application with a RESTful API
// for two-player games and the prime day checker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chesstools/cmd/chess-server/cli"
	"chesstools/internal/service"
	"chesstools/internal/storage"
	transporthttp "chesstools/internal/transport/http"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// database maintenance subcommands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, WAL journal)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		return errors.New("-pid-lock flag requires the -pid flag to be set")
	}
	if *pidPath != "" {
		cleanup, err := managePIDFile(*pidPath, *pidLock)
		if err != nil {
			return fmt.Errorf("failed to manage PID file: %w", err)
		}
		defer cleanup()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	store, err := openStore(*storagePath, *dev)
	if err != nil {
		return err
	}

	// the service owns the store from here on
	svc := service.New(store)
	app := transporthttp.NewFiberApp(svc, *dev)
	addr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	listenErr := make(chan error, 1)
	go func() {
		log.Printf("Chess API Server listening on http://%s", addr)
		log.Printf("Rate limit: %d requests/second per IP", transporthttp.RateLimit(*dev))
		log.Printf("Endpoints: /api/v1/games, /api/v1/primeday, /health")
		listenErr <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		log.Println("Shutting down server...")
	case err := <-listenErr:
		log.Printf("API server listen error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// releases long-poll waiters, then drains and closes storage
	if err := svc.Close(); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// openStore returns nil when persistence is disabled
func openStore(path string, wal bool) (*storage.Store, error) {
	if path == "" {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
		return nil, nil
	}

	log.Printf("Initializing persistent storage at: %s", path)
	store, err := storage.NewStore(path, wal)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if err := store.InitDB(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}
