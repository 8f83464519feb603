package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"qa-board/auth"
	"qa-board/domain"
	"qa-board/infrastructure/http/server"
	"qa-board/infrastructure/search"
	"qa-board/infrastructure/websocket"
	"qa-board/internal"
	"qa-board/moderation"
	"qa-board/observability"
	"qa-board/repositories"
	"qa-board/runtime"
	"qa-board/runtime/workers"
	"qa-board/services"
	"qa-board/sink"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Exit codes reported to the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "qa-board terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and owns the server lifecycle so deferred
// cleanup always executes before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	// A missing .env file is fine, the environment may already be populated.
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := config.CharacterRune()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Storage (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		url := fmt.Sprintf("http://localhost:%d%s", config.InspectorPort, internal.InspectEndpoint)
		logger.Info("Debug Badger inspector available", "url", url)
		database.StartDebugServer(db, config.InspectorPort, internal.InspectEndpoint, internal.InspectMapper)
	}

	questionRepository, err := repositories.NewQuestionRepository(db, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("question repository failed: %w", err)
	}
	defer func() { _ = questionRepository.Close() }()
	userRepository := repositories.NewUserRepository(db)

	// 3. Moderation dictionary
	censoredWords := repositories.NewCensoredWordRepository(db)
	if err := censoredWords.Add(config.CensoredWordList()...); err != nil {
		return exitRuntime, fmt.Errorf("seeding censored words failed: %w", err)
	}
	words, err := censoredWords.List()
	if err != nil {
		return exitRuntime, fmt.Errorf("loading censored words failed: %w", err)
	}
	moderator, err := moderation.NewModerator(words, charReplacement, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("moderator init failed: %w", err)
	}

	// 4. Full text index (Bluge)
	index, err := search.Open(config.BlugeFilepath, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open search index: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = index.Close()
	}()

	// 5. Metrics
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(promRegistry)

	// 6. Broadcast core
	clock := clockwork.NewRealClock()
	registry := runtime.NewRegistry(logger, metrics)
	events := make(chan domain.Event, config.EventBufferSize)
	broadcaster := runtime.NewBroadcaster(logger, registry, metrics, events)

	questionService := services.NewQuestionService(
		questionRepository, broadcaster, index, moderator, clock, logger, config.SearchLimit,
	)
	issuer := auth.NewTokenIssuer(config.SecretKey, config.AuthTokenDuration, clock)
	authService := services.NewAuthService(userRepository, issuer, config.AdminToken, logger)

	// 7. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 8. Background workers
	sup := workers.NewSupervisor(logger, config.RestartInterval).
		Add(
			workers.NewEventFanout(logger, events, config.SinkTimeout).
				Add(sink.NewSearchSink(index, logger)),
			workers.NewChannelCapacityWorker(logger, clock, metrics,
				[]workers.NamedChannel{{Name: "events", Channel: events}},
				config.MetricInterval, config.LowCapacityThreshold),
			workers.NewHealthMonitoringWorker(logger, clock, metrics, config.MetricInterval),
		)
	supDone := make(chan struct{})
	go func() {
		defer close(supDone)
		sup.Run(ctx)
	}()

	// 9. HTTP & WebSocket
	wsHandler := websocket.NewHandler(registry, clock, logger, websocket.Options{
		BufferSize:   config.ChannelBufferSize,
		WriteTimeout: config.WriteTimeout,
		PingInterval: config.PingInterval,
		PongTimeout:  config.PongTimeout,
		ReadLimit:    config.ReadLimit,
	}, config.Origins())

	srv := server.NewServer(server.Config{
		Host:               config.Host,
		Port:               config.Port,
		AllowedOrigins:     config.Origins(),
		RateLimitPerSecond: config.RateLimitPerSecond,
		RateLimitBurst:     config.RateLimitBurst,
	}, questionService, authService, wsHandler, promRegistry, logger)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 10. Wait for Stop or Error
	code, runErr := exitOK, error(nil)
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 11. Graceful shutdown, HTTP first so no new event is produced while workers stop
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	registry.CloseAll()
	sup.Stop()
	<-supDone
	logger.Info("Program stopped cleanly")

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}
