package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/metrics"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/repository"
)

// BackfillWorker periodically resolves coordinates of stops that were created without them,
// so that routes can be drawn on a map before they are optimized. It never touches
// optimized_order.
type BackfillWorker struct {
	log          *slog.Logger         // Logger for logging worker activities
	repo         repository.Interface // Interface for data repository access
	provider     geocoding.Provider   // Geocoding provider for external geocoding services
	metrics      *metrics.Metrics     // Metrics for tracking worker performance
	numWorkers   int                  // Number of concurrent workers for processing
	batchSize    int                  // Stops fetched per poll
	pollInterval time.Duration        // Interval between polls
}

// NewBackfillWorker creates a new instance of BackfillWorker.
func NewBackfillWorker(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	metrics *metrics.Metrics,
	numWorkers int,
	batchSize int,
	pollInterval time.Duration,
) *BackfillWorker {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	return &BackfillWorker{
		log:          log,
		repo:         repo,
		provider:     provider,
		metrics:      metrics,
		numWorkers:   numWorkers,
		batchSize:    batchSize,
		pollInterval: pollInterval,
	}
}

// Run polls for stops without coordinates until the context is cancelled.
func (bw *BackfillWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(bw.pollInterval)
	defer ticker.Stop()

	bw.log.InfoContext(ctx, "Stop backfill worker started...")

	for {
		select {
		case <-ctx.Done():
			bw.log.InfoContext(ctx, "Stop backfill worker stopped.")
			return
		case <-ticker.C:
			bw.log.DebugContext(ctx, "Polling for stops without coordinates...")
			bw.processBatch(ctx)
		}
	}
}

// processBatch fetches one batch of stops and geocodes it with a pool of workers.
func (bw *BackfillWorker) processBatch(ctx context.Context) {
	tasks, err := bw.repo.FetchStopsForGeocoding(ctx, bw.batchSize)
	if err != nil {
		bw.log.ErrorContext(ctx, "Failed to fetch stops", "error", err)
		return
	}
	if len(tasks) == 0 {
		bw.log.DebugContext(ctx, "No stops to process.")
		return
	}

	bw.log.InfoContext(ctx, "Found stops to process. Starting worker pool.",
		"jobs", len(tasks), "num_workers", bw.numWorkers)

	jobs := make(chan models.StopTask, len(tasks))
	var wgr sync.WaitGroup

	for i := 1; i <= bw.numWorkers; i++ {
		wgr.Add(1)
		go bw.worker(ctx, i, &wgr, jobs)
	}

	for _, task := range tasks {
		jobs <- task
	}
	close(jobs)

	wgr.Wait()
	bw.log.InfoContext(ctx, "Backfill batch finished")
}

func (bw *BackfillWorker) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.StopTask) {
	defer wg.Done()
	for task := range jobs {
		bw.metrics.ActiveWorkers.Inc()
		bw.process(ctx, idx, task)
		bw.metrics.ActiveWorkers.Dec()
	}
}

func (bw *BackfillWorker) process(ctx context.Context, idx int, task models.StopTask) {
	bw.log.DebugContext(ctx, "Processing stop", "worker", idx, "stop", task.ID)

	startTime := time.Now()
	coords, err := bw.provider.Geocode(ctx, task.Address)
	bw.metrics.RequestSeconds.WithLabelValues("backfill").Observe(time.Since(startTime).Seconds())

	if err != nil {
		bw.log.WarnContext(ctx, "Failed to geocode stop", "worker", idx, "stop", task.ID, "error", err)
		bw.metrics.BackfillProcessed.WithLabelValues("failure").Inc()

		if err = bw.repo.IncrementFailureCount(ctx, task.ID, err.Error()); err != nil {
			bw.log.ErrorContext(ctx, "Could not update failure count for stop",
				"worker", idx, "stop", task.ID, "error", err)
		}
		return
	}

	bw.metrics.BackfillProcessed.WithLabelValues("success").Inc()

	if err = bw.repo.UpdateStopCoordinates(ctx, task.ID, *coords); err != nil {
		bw.log.ErrorContext(ctx, "Failed to update coordinates for stop",
			"worker", idx, "stop", task.ID, "error", err)
	}
}
