package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds configuration for the job runner.
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process jobs.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue.
	QueueSize int

	// StuckJobAge defines how long a job can remain in the processing
	// state before it is considered stuck and reset.
	StuckJobAge time.Duration

	// StuckJobCheckInterval defines how often to check for stuck jobs.
	// If zero, defaults to 5 minutes.
	StuckJobCheckInterval time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount:           2,
		QueueSize:             100,
		StuckJobAge:           30 * time.Minute,
		StuckJobCheckInterval: 5 * time.Minute,
	}
}

// ResolveFn rebuilds an executable job from a recovered job record.
// Recovered jobs come out of the store with their payload but without
// execution logic; the resolver (typically a job factory) supplies it.
type ResolveFn func(j Job) (Job, error)

// Runner manages background job processing over a durable JobStore.
type Runner struct {
	store      JobStore
	jobChan    chan Job
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	resolver   ResolveFn
}

// NewRunner creates a new Runner.
func NewRunner(store JobStore, config RunnerConfig, logger *slog.Logger) *Runner {
	if config.StuckJobCheckInterval == 0 {
		config.StuckJobCheckInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		store:      store,
		jobChan:    make(chan Job, config.QueueSize),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With(slog.String("component", "job_runner")),
	}
}

// SetResolver installs the function used to rebuild executable jobs
// during recovery. Must be called before Start.
func (r *Runner) SetResolver(resolver ResolveFn) {
	r.resolver = resolver
}

// Submit persists a new job and adds it to the processing queue.
// Returns an error when the job cannot be saved or the queue is full;
// in the latter case the job stays pending in the store and is picked
// up on the next recovery.
func (r *Runner) Submit(ctx context.Context, j Job) error {
	if err := r.store.SaveJob(ctx, j); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}

	select {
	case r.jobChan <- j:
		return nil
	default:
		return fmt.Errorf("job queue is full, try again later")
	}
}

// Start recovers unfinished jobs from previous runs and launches the
// worker pool and the stuck-job monitor.
func (r *Runner) Start() error {
	if err := r.recover(); err != nil {
		return fmt.Errorf("failed to recover jobs: %w", err)
	}

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.stuckJobMonitor()

	return nil
}

// Stop gracefully shuts down the runner, waiting for in-flight jobs.
func (r *Runner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	close(r.jobChan)
}

// recover loads unfinished jobs from the store and requeues them.
// Jobs interrupted mid-processing by a crash are reset to pending first.
func (r *Runner) recover() error {
	ctx := context.Background()

	pendingJobs, err := r.store.GetPendingJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending jobs: %w", err)
	}

	processingJobs, err := r.store.GetProcessingJobs(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get processing jobs: %w", err)
	}

	r.logger.Info("recovering unfinished jobs",
		"pending_count", len(pendingJobs),
		"processing_count", len(processingJobs))

	for _, j := range pendingJobs {
		r.requeue(ctx, j, false)
	}

	for _, j := range processingJobs {
		r.requeue(ctx, j, true)
	}

	return nil
}

// requeue resolves and enqueues a recovered job, optionally resetting
// its persisted status back to pending first.
func (r *Runner) requeue(ctx context.Context, j Job, resetStatus bool) {
	if r.resolver != nil {
		resolved, err := r.resolver(j)
		if err != nil {
			r.logger.Error("failed to resolve recovered job",
				"job_id", j.ID(),
				"job_type", j.Type(),
				"error", err)
			if updateErr := r.store.UpdateJobStatus(ctx, j.ID(), StatusFailed, err.Error()); updateErr != nil {
				r.logger.Error("failed to mark unresolvable job as failed",
					"job_id", j.ID(),
					"error", updateErr)
			}
			return
		}
		j = resolved
	}

	if resetStatus {
		if err := r.store.UpdateJobStatus(ctx, j.ID(), StatusPending, "reset after recovery"); err != nil {
			r.logger.Error("failed to reset processing job status",
				"job_id", j.ID(),
				"job_type", j.Type(),
				"error", err)
			return
		}
	}

	select {
	case r.jobChan <- j:
	default:
		r.logger.Error("failed to requeue job, queue is full",
			"job_id", j.ID(),
			"job_type", j.Type())
	}
}

// worker processes jobs from the queue until the runner stops.
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case j, ok := <-r.jobChan:
			if !ok {
				r.logger.Debug("job channel closed, stopping worker", "worker_id", id)
				return
			}
			r.processJob(j, id)
		}
	}
}

// processJob handles execution of a single job, tracking its status in
// the store across the processing/completed/failed transitions.
func (r *Runner) processJob(j Job, workerID int) {
	ctx := context.Background()
	log := r.logger.With(
		"job_id", j.ID(),
		"job_type", j.Type(),
		"worker_id", workerID,
	)

	if err := r.store.UpdateJobStatus(ctx, j.ID(), StatusProcessing, ""); err != nil {
		log.Error("failed to update job status to processing", "error", err)
		return
	}

	log.Info("processing job")

	if err := j.Execute(ctx); err != nil {
		log.Error("job execution failed", "error", err)
		if updateErr := r.store.UpdateJobStatus(ctx, j.ID(), StatusFailed, err.Error()); updateErr != nil {
			log.Error("failed to update job status to failed", "error", updateErr)
		}
		return
	}

	log.Info("job completed successfully")
	if err := r.store.UpdateJobStatus(ctx, j.ID(), StatusCompleted, ""); err != nil {
		log.Error("failed to update job status to completed", "error", err)
	}
}

// stuckJobMonitor periodically resets jobs that have been in the
// processing state for longer than the configured age and requeues them.
func (r *Runner) stuckJobMonitor() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.StuckJobCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return

		case <-ticker.C:
			ctx := context.Background()

			stuckJobs, err := r.store.GetProcessingJobs(ctx, r.config.StuckJobAge)
			if err != nil {
				r.logger.Error("failed to check for stuck jobs", "error", err)
				continue
			}

			if len(stuckJobs) == 0 {
				continue
			}

			r.logger.Info("found stuck jobs", "count", len(stuckJobs))
			for _, j := range stuckJobs {
				r.requeue(ctx, j, true)
			}
		}
	}
}
