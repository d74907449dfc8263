/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the hotel reservation engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Rebuild the in-memory directory from stored records
  4. Create API handler and router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: hotel.db)
           Use ":memory:" for an in-memory database
  -name    Property name for a fresh database (default: "Harbor View")
  -env     "development" enables pretty console logging

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/hotel.db"

  # Run with in-memory database
  ./server -db=":memory:" -env=development

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Persistence layer
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/hotel-engine/api"
	"github.com/warp/hotel-engine/observability"
	"github.com/warp/hotel-engine/store/sqlite"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "hotel.db", "SQLite database path")
	name := flag.String("name", "Harbor View", "property name for a fresh database")
	env := flag.String("env", "production", "runtime environment (development|production)")
	flag.Parse()

	log := observability.NewLogger(*env)

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", *dbPath).Msg("failed to initialize database")
	}
	defer store.Close()

	dir, err := store.LoadDirectory(context.Background(), *name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to rebuild directory from store")
	}
	log.Info().
		Str("property", dir.Name()).
		Int("rooms", len(dir.Rooms())).
		Int("bookings", len(dir.Bookings())).
		Msg("directory loaded")

	handler := api.NewHandler(dir, store, log)
	router := api.NewRouter(handler, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", *port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
