// internal/workers/onboarding/verify-document/handler.go
package verifydocument

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
	TaskType = "verify-document"
)

// Handler applies an HR review decision to a document submission.
type Handler struct {
	config *Config
	logger logger.Logger
	ledger models.DocumentLedger
}

func NewHandler(config *Config, log logger.Logger, docLedger models.DocumentLedger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		ledger: docLedger,
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

	if input.SubmissionID == "" || input.ReviewedBy == "" {
		h.failJob(client, job, string(stderrors.ErrCodeValidationFailed), "submissionId and reviewedBy are required")
		return
	}
	if input.Decision != models.DocumentStatusVerified && input.Decision != models.DocumentStatusRejected {
		h.failJob(client, job, string(stderrors.ErrCodeValidationFailed),
			fmt.Sprintf("decision must be %q or %q", models.DocumentStatusVerified, models.DocumentStatusRejected))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			h.failJob(client, job, string(stderrors.ErrCodeDocumentNotFound), err.Error())
			return
		}
		h.failJob(client, job, string(stderrors.ErrCodeQueryExecutionFailed), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	sub, err := h.ledger.MarkVerified(ctx, input.SubmissionID, input.ReviewedBy, input.Decision)
	if err != nil {
		return nil, fmt.Errorf("mark submission %s %s: %w", input.SubmissionID, input.Decision, err)
	}

	h.logger.Info("document reviewed", map[string]interface{}{
		"submissionId":  sub.ID,
		"employeeEmail": sub.EmployeeEmail,
		"documentType":  sub.DocumentType,
		"status":        sub.Status,
		"reviewedBy":    input.ReviewedBy,
	})

	return &Output{
		SubmissionID:  sub.ID,
		EmployeeEmail: sub.EmployeeEmail,
		DocumentType:  sub.DocumentType,
		Status:        sub.Status,
		ReviewedBy:    input.ReviewedBy,
	}, nil
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
