// internal/workers/assistant/answer-faq/handler.go
package answerfaq

import (
	"context"
	"encoding/json"
	"fmt"

	"onboarding-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "answer-faq"
)

// Handler answers portal help questions with keyword-matched canned answers.
// Unmatched questions get a fallback pointing at HR; the job never fails on
// an unrecognized question.
type Handler struct {
	config         *Config
	logger         logger.Logger
	hrContactEmail string
	hrContactPhone string
}

func NewHandler(config *Config, log logger.Logger, hrContactEmail, hrContactPhone string) *Handler {
	if hrContactEmail == "" {
		hrContactEmail = "hr@company.com"
	}
	if hrContactPhone == "" {
		hrContactPhone = "(555) 123-4567"
	}
	return &Handler{
		config:         config,
		logger:         log.WithFields(map[string]interface{}{"taskType": TaskType}),
		hrContactEmail: hrContactEmail,
		hrContactPhone: hrContactPhone,
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

	output := h.execute(&input)
	h.completeJob(client, job, output)
}

func (h *Handler) execute(input *Input) *Output {
	output := &Output{
		QuickQuestions: quickQuestions,
	}

	if r, ok := matchRule(input.Question); ok {
		output.Answer = r.answer
		output.Topic = r.topic
		output.Matched = true
	} else {
		output.Answer = fmt.Sprintf(
			"I'm not sure about that one. Please contact HR at %s or call %s for assistance.",
			h.hrContactEmail, h.hrContactPhone,
		)
		output.Topic = "fallback"
	}

	h.logger.Info("faq answered", map[string]interface{}{
		"topic":   output.Topic,
		"matched": output.Matched,
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
