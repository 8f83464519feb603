package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"qa-board/internal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
)

// viewer serves the badger inspector on a read-only copy of the store,
// so it can run next to a live server.
func main() {
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// BypassLockGuard allows opening while the server holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database.StartDebugServer(db, config.InspectorPort, internal.InspectEndpoint, internal.InspectMapper)
	fmt.Printf("Viewer started at http://localhost:%d%s?prefix=question:\n", config.InspectorPort, internal.InspectEndpoint)

	<-ctx.Done()
}
