// internal/workers/onboarding/aggregate-progress/handler.go
package aggregateprogress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stderrors "onboarding-workers/internal/common/errors"
	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/common/metrics"
	"onboarding-workers/internal/ledger"
	"onboarding-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "aggregate-progress"

	cacheKeyPrefix = "onboarding:progress:"
)

// Handler recomputes an employee's overall progress from the ledgers.
//
// The snapshot is always derived fresh from the stores, persisted back to the
// roster row and then cached in Redis for dashboard reads. Recomputing is
// idempotent: running twice with no ledger changes yields the same snapshot.
type Handler struct {
	config    *Config
	logger    logger.Logger
	employees models.EmployeeStore
	documents models.DocumentLedger
	training  models.TrainingLedger
	cache     *redis.Client
}

func NewHandler(
	config *Config,
	log logger.Logger,
	employees models.EmployeeStore,
	documents models.DocumentLedger,
	training models.TrainingLedger,
	cache *redis.Client,
) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		employees: employees,
		documents: documents,
		training:  training,
		cache:     cache,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey": job.Key,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	if input.EmployeeEmail == "" {
		h.failJob(client, job, string(stderrors.ErrCodeValidationFailed), "employeeEmail is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			h.failJob(client, job, string(stderrors.ErrCodeEmployeeNotFound), err.Error())
			return
		}
		h.failJob(client, job, string(stderrors.ErrCodeProgressRecomputeFailed), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile, err := h.employees.Profile(ctx, input.EmployeeEmail)
	if err != nil {
		return nil, fmt.Errorf("load profile for %s: %w", input.EmployeeEmail, err)
	}

	uploaded, err := h.documents.UploadedCount(ctx, input.EmployeeEmail)
	if err != nil {
		return nil, fmt.Errorf("count uploads for %s: %w", input.EmployeeEmail, err)
	}

	completed, err := h.training.CompletedCount(ctx, input.EmployeeEmail)
	if err != nil {
		return nil, fmt.Errorf("count completed modules for %s: %w", input.EmployeeEmail, err)
	}

	tier := models.ProfileHeaderTier(profile)
	snapshot := models.ProgressSnapshot{
		EmployeeEmail:    input.EmployeeEmail,
		ProfileTier:      tier,
		DocumentsDone:    uploaded,
		DocumentProgress: models.DocumentProgress(uploaded),
		TrainingDone:     completed,
		TrainingProgress: models.TrainingProgress(completed),
		Overall:          models.OverallProgress(tier, uploaded, completed),
		ComputedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.employees.SaveProgress(ctx, input.EmployeeEmail, snapshot.Overall); err != nil {
		return nil, fmt.Errorf("save progress for %s: %w", input.EmployeeEmail, err)
	}

	metrics.ProgressSnapshots.Inc()

	cached := h.cacheSnapshot(ctx, &snapshot)
	if cached {
		metrics.ProgressCacheWrites.WithLabelValues("ok").Inc()
	} else {
		metrics.ProgressCacheWrites.WithLabelValues("skipped").Inc()
	}

	h.logger.Info("progress recomputed", map[string]interface{}{
		"employeeEmail": input.EmployeeEmail,
		"profileTier":   snapshot.ProfileTier,
		"documentsDone": snapshot.DocumentsDone,
		"trainingDone":  snapshot.TrainingDone,
		"overall":       snapshot.Overall,
		"cached":        cached,
	})

	return &Output{
		Snapshot: snapshot,
		Overall:  snapshot.Overall,
		Cached:   cached,
	}, nil
}

// cacheSnapshot writes the snapshot for dashboard reads. Cache failures are
// logged and swallowed: the roster row already holds the new value.
func (h *Handler) cacheSnapshot(ctx context.Context, snapshot *models.ProgressSnapshot) bool {
	if h.cache == nil {
		return false
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		h.logger.Warn("failed to marshal progress snapshot", map[string]interface{}{
			"employeeEmail": snapshot.EmployeeEmail,
			"error":         err.Error(),
		})
		return false
	}

	key := cacheKeyPrefix + snapshot.EmployeeEmail
	if err := h.cache.Set(ctx, key, payload, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("failed to cache progress snapshot", map[string]interface{}{
			"employeeEmail": snapshot.EmployeeEmail,
			"error":         err.Error(),
		})
		return false
	}
	return true
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
