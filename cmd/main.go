package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/UnknownOlympus/tally/internal/config"
	"github.com/UnknownOlympus/tally/internal/metrics"
	"github.com/UnknownOlympus/tally/internal/scanner"
	"github.com/UnknownOlympus/tally/internal/service"
	"github.com/UnknownOlympus/tally/internal/tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const usage = "Expected arguments: <directory> <thread_count>"

// main is the entry point of the application. The two positional arguments
// are the directory holding the numbered access logs and the worker count;
// any configuration error exits non-zero before a single worker is launched.
func main() {
	os.Exit(run())
}

func run() int {
	// Create a context that will be canceled when an interrupt signal is
	// received, so a long scan can be stopped between files.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	args := os.Args[1:]
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	dir := args[0]
	workers, err := strconv.Atoi(args[1])
	if err != nil || workers <= 0 {
		fmt.Fprintf(os.Stderr, "Invalid thread count %q: must be a positive integer.\n%s\n", args[1], usage)
		return 2
	}

	// Enumerate the directory once, before any worker starts.
	totalFiles, err := scanner.CountRegularFiles(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open directory %q: %v\n", dir, err)
		return 1
	}

	logger.InfoContext(ctx, "Scanning directory", "dir", dir, "num_workers", workers)
	logger.InfoContext(ctx, "Enumerated log files", "files", totalFiles)

	// Create a separate registry for application metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Start the monitoring server only when a port is configured; a short
	// scan usually has no use for one.
	if cfg.MetricsPort > 0 {
		go startMonitoringServer(ctx, logger, reg, cfg.MetricsPort)
	}

	set := tracker.NewAddressSet()
	src := scanner.New(dir, logger)
	svc := service.NewScanService(logger, src, set, appMetrics, workers)

	summary, err := svc.Run(ctx, totalFiles)
	if err != nil {
		logger.ErrorContext(ctx, "Scan failed", "error", err)
		return 1
	}

	fmt.Printf("Distinct addresses: %d\n", summary.Distinct)
	return 0
}

// startMonitoringServer starts an HTTP server that provides health check and
// metrics endpoints. It listens on the specified port and logs the server's
// status and any errors encountered.
func startMonitoringServer(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		if _, err := writer.Write([]byte("OK")); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
