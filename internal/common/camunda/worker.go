// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"onboarding-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// HandlerFunc is the signature every worker handler exposes via Handle.
type HandlerFunc func(client worker.JobClient, job entities.Job)

// Fleet tracks the job workers opened for the onboarding task types so
// shutdown can close them before the Zeebe client goes away.
type Fleet struct {
	client  zbc.Client
	logger  *zap.Logger
	obs     *observability.Observability
	workers []openedWorker
}

type openedWorker struct {
	taskType string
	worker   worker.JobWorker
}

func NewFleet(client zbc.Client, logger *zap.Logger, obs *observability.Observability) *Fleet {
	return &Fleet{client: client, logger: logger, obs: obs}
}

// Register opens a job worker for the task type. maxJobsActive and timeout
// come from the per-worker config section.
func (f *Fleet) Register(taskType string, maxJobsActive int, timeout time.Duration, handler HandlerFunc) {
	instrumented := handler
	if f.obs != nil {
		instrumented = func(client worker.JobClient, job entities.Job) {
			start := time.Now()
			handler(client, job)
			f.obs.RecordJob(context.Background(), taskType, time.Since(start))
		}
	}

	jw := f.client.NewJobWorker().
		JobType(taskType).
		Handler(worker.JobHandler(instrumented)).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Open()

	f.workers = append(f.workers, openedWorker{taskType: taskType, worker: jw})
	f.logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", maxJobsActive),
		zap.Duration("timeout", timeout),
	)
}

func (f *Fleet) Size() int {
	return len(f.workers)
}

// Close drains every registered worker, then the client. Respects ctx so a
// stuck drain cannot block shutdown past the deadline.
func (f *Fleet) Close(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		for _, w := range f.workers {
			f.logger.Info("stopping worker", zap.String("taskType", w.taskType))
			w.worker.Close()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		f.logger.Warn("worker drain timed out", zap.Error(ctx.Err()))
	}

	if err := f.client.Close(); err != nil {
		f.logger.Error("error closing zeebe client", zap.Error(err))
	}
}
