// internal/workers/onboarding/record-document-upload/handler.go
package recorddocumentupload

import (
	"context"
	"encoding/json"
	"fmt"

	stderrors "onboarding-workers/internal/common/errors"
	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "record-document-upload"
)

// Handler records a document upload in the checklist ledger. Uploads for
// types outside the required checklist are acknowledged but never stored:
// the job completes with applied=false and the counts unchanged.
type Handler struct {
	config *Config
	logger logger.Logger
	ledger models.DocumentLedger
}

func NewHandler(config *Config, log logger.Logger, ledger models.DocumentLedger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		ledger: ledger,
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

	if input.EmployeeEmail == "" || input.DocumentType == "" || input.FileName == "" {
		h.failJob(client, job, string(stderrors.ErrCodeValidationFailed), "employeeEmail, documentType and fileName are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, string(stderrors.ErrCodeDatabaseInsertFailed), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if !models.IsRequiredDocument(input.DocumentType) {
		h.logger.Warn("upload for unknown document type ignored", map[string]interface{}{
			"employeeEmail": input.EmployeeEmail,
			"documentType":  input.DocumentType,
		})
		count, err := h.ledger.UploadedCount(ctx, input.EmployeeEmail)
		if err != nil {
			return nil, fmt.Errorf("count uploads for %s: %w", input.EmployeeEmail, err)
		}
		return &Output{
			Applied:          false,
			UploadedCount:    count,
			DocumentProgress: models.DocumentProgress(count),
		}, nil
	}

	sub, err := h.ledger.RecordUpload(ctx, input.EmployeeEmail, input.DocumentType, input.FileName, input.FileURL)
	if err != nil {
		return nil, fmt.Errorf("record upload of %s: %w", input.DocumentType, err)
	}

	count, err := h.ledger.UploadedCount(ctx, input.EmployeeEmail)
	if err != nil {
		return nil, fmt.Errorf("count uploads for %s: %w", input.EmployeeEmail, err)
	}

	h.logger.Info("document upload recorded", map[string]interface{}{
		"employeeEmail": input.EmployeeEmail,
		"documentType":  input.DocumentType,
		"status":        sub.Status,
		"uploadedCount": count,
	})

	return &Output{
		Applied:          true,
		SubmissionID:     sub.ID,
		Status:           sub.Status,
		UploadedCount:    count,
		DocumentProgress: models.DocumentProgress(count),
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
