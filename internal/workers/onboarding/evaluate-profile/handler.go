// internal/workers/onboarding/evaluate-profile/handler.go
package evaluateprofile

import (
	"context"
	"encoding/json"
	"fmt"

	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-profile"
)

// Handler scores a profile snapshot against both completeness policies.
// It touches no storage: the snapshot arrives as job variables and both
// scores leave the same way.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	output := h.execute(&input)
	h.completeJob(client, job, output)
}

func (h *Handler) execute(input *Input) *Output {
	profile := models.EmployeeProfile{
		Email:             input.Email,
		Name:              input.Name,
		ProfilePictureURL: input.ProfilePictureURL,
		Department:        input.Department,
		Position:          input.Position,
		Manager:           input.Manager,
		WorkLocation:      input.WorkLocation,
		StartDate:         input.StartDate,
	}

	missing := []string{}
	if profile.Name == "" {
		missing = append(missing, "name")
	}
	if profile.Email == "" {
		missing = append(missing, "email")
	}
	if !profile.HasAvatar() {
		missing = append(missing, "profilePicture")
	}

	output := &Output{
		DetailScore:     models.ProfileDetailScore(&profile),
		HeaderTier:      models.ProfileHeaderTier(&profile),
		ProfileComplete: models.ProfileComplete(&profile),
		MissingFields:   missing,
	}

	h.logger.Info("profile evaluated", map[string]interface{}{
		"email":       input.Email,
		"detailScore": output.DetailScore,
		"headerTier":  output.HeaderTier,
		"complete":    output.ProfileComplete,
	})

	return output
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

func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	return h.execute(input), nil
}
