package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/tally/internal/metrics"
	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/UnknownOlympus/tally/internal/partition"
	"github.com/UnknownOlympus/tally/internal/scanner"
	"github.com/UnknownOlympus/tally/internal/tracker"
	"golang.org/x/sync/errgroup"
)

// ScanService coordinates a fixed pool of workers over a directory of
// numbered log files. Each worker owns a static, non-overlapping range of
// file indices; the only state shared between workers is the AddressSet.
type ScanService struct {
	log        *slog.Logger      // Logger for logging service activities
	source     scanner.Interface // Per-file scanning of the log directory
	set        *tracker.AddressSet
	metrics    *metrics.Metrics // Metrics for tracking scan progress
	numWorkers int              // Number of concurrent workers for processing
}

// workerStats accumulates per-worker results so the summary can be built
// without any shared counters beyond the AddressSet itself.
type workerStats struct {
	scanned int
	missing int
	lines   int64
}

// NewScanService creates a new instance of ScanService. It takes a logger,
// a file source, the shared address set, metrics for monitoring and the
// number of workers to use. It returns a pointer to the newly created
// ScanService.
func NewScanService(
	log *slog.Logger,
	source scanner.Interface,
	set *tracker.AddressSet,
	metrics *metrics.Metrics,
	numWorkers int,
) *ScanService {
	return &ScanService{
		log:        log,
		source:     source,
		set:        set,
		metrics:    metrics,
		numWorkers: numWorkers,
	}
}

// Run partitions file indices 1..totalFiles across the worker pool, launches
// every worker, and blocks until all of them have finished. Only after the
// full join does it read the distinct count, so the returned summary reflects
// every insert made by every worker. Missing files never fail the run; the
// only errors that propagate are context cancellation of the pool itself.
func (ss *ScanService) Run(ctx context.Context, totalFiles int) (models.ScanSummary, error) {
	if ss.numWorkers <= 0 {
		return models.ScanSummary{}, fmt.Errorf("invalid worker count: %d", ss.numWorkers)
	}

	ss.log.InfoContext(ctx, "Starting worker pool", "files", totalFiles, "num_workers", ss.numWorkers)

	stats := make([]workerStats, ss.numWorkers)
	group, gctx := errgroup.WithContext(ctx)
	for i := 0; i < ss.numWorkers; i++ {
		i := i
		rng := partition.ComputeRange(i, ss.numWorkers, totalFiles)
		ss.log.DebugContext(ctx, "Launching worker", "worker", i, "start", rng.Start, "end", rng.End)
		group.Go(func() error {
			return ss.worker(gctx, i, rng, &stats[i])
		})
	}

	if err := group.Wait(); err != nil {
		return models.ScanSummary{}, fmt.Errorf("worker pool aborted: %w", err)
	}

	summary := models.ScanSummary{TotalFiles: totalFiles}
	for _, st := range stats {
		summary.FilesScanned += st.scanned
		summary.FilesMissing += st.missing
		summary.Lines += st.lines
	}
	summary.Distinct = ss.set.Count()
	ss.metrics.DistinctAddresses.Set(float64(summary.Distinct))

	ss.log.InfoContext(ctx, "Scan finished",
		"files_scanned", summary.FilesScanned,
		"files_missing", summary.FilesMissing,
		"lines", summary.Lines,
		"distinct_addresses", summary.Distinct,
	)
	return summary, nil
}

// worker scans every file index in its assigned range in order. A file that
// cannot be read is logged, counted as missing and skipped; the scan of the
// remaining range always continues. The function takes a context, the worker
// index, the worker's file range and the stats slot to fill in.
func (ss *ScanService) worker(ctx context.Context, idx int, rng models.FileRange, st *workerStats) error {
	ss.metrics.ActiveWorkers.Inc()
	defer ss.metrics.ActiveWorkers.Dec()

	for i := rng.Start; i <= rng.End; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		startTime := time.Now()
		lines, err := ss.source.Scan(ctx, i, ss.set)
		if err != nil {
			ss.log.WarnContext(ctx, "Skipping unreadable file", "worker", idx, "index", i, "error", err)
			ss.metrics.FilesProcessed.WithLabelValues("missing").Inc()
			st.missing++
			continue
		}
		ss.metrics.FileScanSeconds.Observe(time.Since(startTime).Seconds())
		ss.metrics.FilesProcessed.WithLabelValues("scanned").Inc()
		ss.metrics.LinesRead.Add(float64(lines))
		st.scanned++
		st.lines += lines

		ss.log.DebugContext(ctx, "Finished file", "worker", idx, "index", i, "lines", lines)
	}
	return nil
}
