// internal/workers/onboarding/update-training-progress/handler.go
package updatetrainingprogress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	stderrors "onboarding-workers/internal/common/errors"
	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/ledger"
	"onboarding-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "update-training-progress"
)

// Handler advances an employee through the training curriculum.
//
// start moves a not-started module to in-progress, but only when the module
// has a learning resource to hand out. continue re-emits the resource link
// for an in-progress module and review for a completed one; neither touches
// the record. complete finishes an in-progress module. Requests that cannot
// apply (unknown module, missing resource, completing a module that was
// never started, starting one already underway) complete the job with
// applied=false rather than throwing a BPMN error.
type Handler struct {
	config *Config
	logger logger.Logger
	ledger models.TrainingLedger
}

func NewHandler(config *Config, log logger.Logger, trainingLedger models.TrainingLedger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		ledger: trainingLedger,
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

	if input.EmployeeEmail == "" || input.ModuleName == "" || input.Action == "" {
		h.failJob(client, job, string(stderrors.ErrCodeValidationFailed), "employeeEmail, moduleName and action are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, string(stderrors.ErrCodeQueryExecutionFailed), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if !models.IsCurriculumModule(input.ModuleName) {
		h.logger.Warn("request for unknown training module ignored", map[string]interface{}{
			"employeeEmail": input.EmployeeEmail,
			"moduleName":    input.ModuleName,
		})
		return h.withCounts(ctx, input.EmployeeEmail, &Output{
			Applied:    false,
			ModuleName: input.ModuleName,
		})
	}

	var (
		rec     *models.TrainingRecord
		applied bool
		err     error
	)

	switch input.Action {
	case ActionStart:
		rec, err = h.ledger.Record(ctx, input.EmployeeEmail, input.ModuleName)
		if err == nil && rec.Status == models.TrainingStatusNotStarted {
			rec, err = h.ledger.Start(ctx, input.EmployeeEmail, input.ModuleName)
			applied = err == nil
		}
		// Already underway or done: nothing transitioned, report the row as is.
	case ActionContinue, ActionReview:
		rec, err = h.ledger.Record(ctx, input.EmployeeEmail, input.ModuleName)
	case ActionComplete:
		rec, err = h.ledger.Complete(ctx, input.EmployeeEmail, input.ModuleName)
		applied = err == nil
	default:
		return nil, stderrors.NewValidationFailedError(fmt.Sprintf("unknown action %q", input.Action))
	}

	if err != nil {
		if errors.Is(err, ledger.ErrResourceMissing) || errors.Is(err, ledger.ErrNotInProgress) {
			h.logger.Warn("training action not applied", map[string]interface{}{
				"employeeEmail": input.EmployeeEmail,
				"moduleName":    input.ModuleName,
				"action":        input.Action,
				"reason":        err.Error(),
			})
			return h.withCounts(ctx, input.EmployeeEmail, &Output{
				Applied:    false,
				ModuleName: input.ModuleName,
			})
		}
		return nil, fmt.Errorf("%s module %s: %w", input.Action, input.ModuleName, err)
	}

	output := &Output{
		Applied:        applied,
		ModuleName:     rec.ModuleName,
		ModuleStatus:   rec.Status,
		ModuleProgress: rec.Progress,
		ResourceURL:    rec.ResourceURL,
	}

	// continue reopens in-progress modules, review reopens completed ones.
	// The wrong state has nothing to reopen, so no resource comes back.
	if (input.Action == ActionContinue && rec.Status != models.TrainingStatusInProgress) ||
		(input.Action == ActionReview && rec.Status != models.TrainingStatusCompleted) {
		output.ResourceURL = ""
	}

	return h.withCounts(ctx, input.EmployeeEmail, output)
}

func (h *Handler) withCounts(ctx context.Context, employeeEmail string, output *Output) (*Output, error) {
	count, err := h.ledger.CompletedCount(ctx, employeeEmail)
	if err != nil {
		return nil, fmt.Errorf("count completed modules for %s: %w", employeeEmail, err)
	}
	output.CompletedCount = count
	output.TrainingProgress = models.TrainingProgress(count)
	return output, nil
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
