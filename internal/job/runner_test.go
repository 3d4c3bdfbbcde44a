package job

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldesk/fiscaldesk-api/internal/service"
)

// fakeJobStore is an in-memory JobStore recording status transitions.
type fakeJobStore struct {
	mu       sync.Mutex
	saved    []Job
	statuses map[uuid.UUID][]Status
	pending  []Job
	procing  []Job
	saveErr  error
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{statuses: make(map[uuid.UUID][]Status)}
}

func (s *fakeJobStore) SaveJob(ctx context.Context, j Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, j)
	return nil
}

func (s *fakeJobStore) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status Status, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[jobID] = append(s.statuses[jobID], status)
	return nil
}

func (s *fakeJobStore) GetPendingJobs(ctx context.Context) ([]Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, nil
}

func (s *fakeJobStore) GetProcessingJobs(ctx context.Context, olderThan time.Duration) ([]Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.procing, nil
}

func (s *fakeJobStore) statusHistory(jobID uuid.UUID) []Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]Status, len(s.statuses[jobID]))
	copy(history, s.statuses[jobID])
	return history
}

// signalJob is a Job whose execution closes a channel, so tests can wait
// for it deterministically.
type signalJob struct {
	id       uuid.UUID
	jobType  string
	status   Status
	execErr  error
	executed chan struct{}
	once     sync.Once
}

func newSignalJob(execErr error) *signalJob {
	return &signalJob{
		id:       uuid.New(),
		jobType:  "signal",
		status:   StatusPending,
		execErr:  execErr,
		executed: make(chan struct{}),
	}
}

func (j *signalJob) ID() uuid.UUID   { return j.id }
func (j *signalJob) Type() string    { return j.jobType }
func (j *signalJob) Payload() []byte { return []byte(`{}`) }
func (j *signalJob) Status() Status  { return j.status }

func (j *signalJob) Execute(ctx context.Context) error {
	j.once.Do(func() { close(j.executed) })
	return j.execErr
}

func waitForSignal(t *testing.T, j *signalJob) {
	t.Helper()
	select {
	case <-j.executed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job execution")
	}
}

func testRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount:           1,
		QueueSize:             4,
		StuckJobAge:           time.Minute,
		StuckJobCheckInterval: time.Hour,
	}
}

func TestSubmitPersistsAndExecutes(t *testing.T) {
	t.Parallel()

	store := newFakeJobStore()
	runner := NewRunner(store, testRunnerConfig(), slog.Default())
	require.NoError(t, runner.Start())

	j := newSignalJob(nil)
	require.NoError(t, runner.Submit(context.Background(), j))
	waitForSignal(t, j)
	runner.Stop()

	assert.Len(t, store.saved, 1)
	assert.Equal(t, []Status{StatusProcessing, StatusCompleted}, store.statusHistory(j.id))
}

func TestSubmitFailsWhenQueueFull(t *testing.T) {
	t.Parallel()

	store := newFakeJobStore()
	cfg := testRunnerConfig()
	cfg.QueueSize = 1
	runner := NewRunner(store, cfg, slog.Default())
	// Not started: nothing drains the queue.

	require.NoError(t, runner.Submit(context.Background(), newSignalJob(nil)))

	err := runner.Submit(context.Background(), newSignalJob(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue is full")
	// Both jobs were still persisted for later recovery.
	assert.Len(t, store.saved, 2)
}

func TestFailedExecutionMarksJobFailed(t *testing.T) {
	t.Parallel()

	store := newFakeJobStore()
	runner := NewRunner(store, testRunnerConfig(), slog.Default())
	require.NoError(t, runner.Start())

	j := newSignalJob(errors.New("boom"))
	require.NoError(t, runner.Submit(context.Background(), j))
	waitForSignal(t, j)
	runner.Stop()

	assert.Equal(t, []Status{StatusProcessing, StatusFailed}, store.statusHistory(j.id))
}

func TestStartRecoversPendingJobs(t *testing.T) {
	t.Parallel()

	store := newFakeJobStore()
	j := newSignalJob(nil)
	store.pending = []Job{j}

	runner := NewRunner(store, testRunnerConfig(), slog.Default())
	require.NoError(t, runner.Start())

	waitForSignal(t, j)
	runner.Stop()

	assert.Equal(t, []Status{StatusProcessing, StatusCompleted}, store.statusHistory(j.id))
}

func TestStartResetsInterruptedProcessingJobs(t *testing.T) {
	t.Parallel()

	store := newFakeJobStore()
	j := newSignalJob(nil)
	j.status = StatusProcessing
	store.procing = []Job{j}

	runner := NewRunner(store, testRunnerConfig(), slog.Default())
	require.NoError(t, runner.Start())

	waitForSignal(t, j)
	runner.Stop()

	history := store.statusHistory(j.id)
	require.NotEmpty(t, history)
	assert.Equal(t, StatusPending, history[0], "interrupted job should be reset to pending before requeue")
	assert.Equal(t, StatusCompleted, history[len(history)-1])
}

func TestRecoveryResolverFailureMarksJobFailed(t *testing.T) {
	t.Parallel()

	store := newFakeJobStore()
	j := newSignalJob(nil)
	store.pending = []Job{j}

	runner := NewRunner(store, testRunnerConfig(), slog.Default())
	runner.SetResolver(func(Job) (Job, error) {
		return nil, errors.New("unknown job type")
	})
	require.NoError(t, runner.Start())
	runner.Stop()

	history := store.statusHistory(j.id)
	require.Len(t, history, 1)
	assert.Equal(t, StatusFailed, history[0])

	select {
	case <-j.executed:
		t.Fatal("unresolvable job must not execute")
	default:
	}
}

func TestGenerationJobFactoryResolve(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	payload, err := json.Marshal(generationPayload{TenantID: tenantID, Competence: "03/2025"})
	require.NoError(t, err)

	recovered := &staticJob{
		id:      uuid.New(),
		jobType: TypeTaskGeneration,
		payload: payload,
		status:  StatusPending,
	}

	factory := NewGenerationJobFactory(&nopGenerationRunner{}, slog.Default())
	resolved, err := factory.Resolve(recovered)
	require.NoError(t, err)

	genJob, ok := resolved.(*GenerationJob)
	require.True(t, ok)
	assert.Equal(t, recovered.id, genJob.ID())
	assert.Equal(t, tenantID, genJob.tenantID)
	assert.Equal(t, "03/2025", genJob.competence)
}

func TestGenerationJobFactoryIgnoresOtherTypes(t *testing.T) {
	t.Parallel()

	other := newSignalJob(nil)
	factory := NewGenerationJobFactory(&nopGenerationRunner{}, slog.Default())

	resolved, err := factory.Resolve(other)
	require.NoError(t, err)
	assert.Same(t, other, resolved)
}

func TestGenerationJobFactoryRejectsBadPayload(t *testing.T) {
	t.Parallel()

	recovered := &staticJob{
		id:      uuid.New(),
		jobType: TypeTaskGeneration,
		payload: []byte("not json"),
		status:  StatusPending,
	}

	factory := NewGenerationJobFactory(&nopGenerationRunner{}, slog.Default())
	_, err := factory.Resolve(recovered)
	assert.Error(t, err)
}

// nopGenerationRunner satisfies GenerationRunner without doing any work.
type nopGenerationRunner struct{}

func (r *nopGenerationRunner) Run(
	ctx context.Context,
	tenantID uuid.UUID,
	competence string,
) (*service.GenerationOutcome, error) {
	return &service.GenerationOutcome{}, nil
}

// staticJob carries a fixed payload and no execution logic, like a job
// loaded back from the store.
type staticJob struct {
	id      uuid.UUID
	jobType string
	payload []byte
	status  Status
}

func (j *staticJob) ID() uuid.UUID   { return j.id }
func (j *staticJob) Type() string    { return j.jobType }
func (j *staticJob) Payload() []byte { return j.payload }
func (j *staticJob) Status() Status  { return j.status }

func (j *staticJob) Execute(ctx context.Context) error {
	return errors.New("static job has no execution logic")
}
