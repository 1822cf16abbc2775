package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"mazemaster/internal/dispatch"
	"mazemaster/internal/mazesvc"
	"mazemaster/internal/store"
	"mazemaster/internal/store/file"
	"mazemaster/internal/store/memory"
	httpTransport "mazemaster/internal/transport/http"
	"mazemaster/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	st := openStore(cfg)

	workers := cfg.DispatcherWorkers
	if cfg.Inline {
		workers = 0
		log.Println("DETA_RUNTIME_COMPAT enabled: solving inline without a worker pool")
	}
	dispatcher := dispatch.New(st, workers, cfg.DispatcherQueue)
	svc := mazesvc.New(st, dispatcher)

	r := gin.Default()
	httpTransport.RegisterRoutes(r, cfg, svc)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on port %s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func openStore(cfg *config.Config) store.Store {
	if cfg.StorePath == "" {
		return memory.New()
	}
	st, err := file.Open(cfg.StorePath)
	if err != nil {
		log.Printf("Warning: could not open store at %s: %v", cfg.StorePath, err)
		log.Println("Falling back to an in-memory store")
		return memory.New()
	}
	return st
}
