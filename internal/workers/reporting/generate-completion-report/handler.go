// internal/workers/reporting/generate-completion-report/handler.go
package generatecompletionreport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	stderrors "onboarding-workers/internal/common/errors"
	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/ledger"
	"onboarding-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-completion-report"
)

// Handler renders a plain-text onboarding report for one employee.
//
// The document and training sections are keyed by checklist type and module
// name, so a report stays correct even when submissions arrived out of
// order. Missing optional fields render as "Not provided".
type Handler struct {
	config    *Config
	logger    logger.Logger
	employees models.EmployeeStore
	documents models.DocumentLedger
	training  models.TrainingLedger
}

func NewHandler(
	config *Config,
	log logger.Logger,
	employees models.EmployeeStore,
	documents models.DocumentLedger,
	training models.TrainingLedger,
) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		employees: employees,
		documents: documents,
		training:  training,
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
		h.failJob(client, job, string(stderrors.ErrCodeReportGenerationFailed), err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	account, err := h.employees.Account(ctx, input.EmployeeEmail)
	if err != nil {
		return nil, fmt.Errorf("load account for %s: %w", input.EmployeeEmail, err)
	}

	profile, err := h.employees.Profile(ctx, input.EmployeeEmail)
	if err != nil {
		return nil, fmt.Errorf("load profile for %s: %w", input.EmployeeEmail, err)
	}

	submissions, err := h.documents.Submissions(ctx, input.EmployeeEmail)
	if err != nil {
		return nil, fmt.Errorf("list submissions for %s: %w", input.EmployeeEmail, err)
	}

	records, err := h.training.Records(ctx, input.EmployeeEmail)
	if err != nil {
		return nil, fmt.Errorf("list training records for %s: %w", input.EmployeeEmail, err)
	}

	uploaded := 0
	subsByType := make(map[string]models.DocumentSubmission, len(submissions))
	for _, s := range submissions {
		subsByType[s.DocumentType] = s
		if s.IsUploaded() {
			uploaded++
		}
	}

	completed := 0
	recsByModule := make(map[string]models.TrainingRecord, len(records))
	for _, r := range records {
		recsByModule[r.ModuleName] = r
		if r.Status == models.TrainingStatusCompleted {
			completed++
		}
	}

	tier := models.ProfileHeaderTier(profile)
	now := time.Now().UTC()

	var b strings.Builder
	line := strings.Repeat("=", 60)

	b.WriteString(line + "\n")
	b.WriteString("ONBOARDING COMPLETION REPORT\n")
	b.WriteString(line + "\n\n")

	b.WriteString("EMPLOYEE INFORMATION\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	writeField(&b, "Name", account.FullName())
	writeField(&b, "Email", account.Email)
	writeField(&b, "Department", account.Department)
	writeField(&b, "Position", account.Position)
	writeField(&b, "Manager", account.Manager)
	writeField(&b, "Work Location", account.WorkLocation)
	writeField(&b, "Start Date", account.StartDate)
	b.WriteString("\n")

	b.WriteString("PROGRESS OVERVIEW\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "Profile:   %d%%\n", tier)
	fmt.Fprintf(&b, "Documents: %d%% (%d of %d uploaded)\n",
		models.DocumentProgress(uploaded), uploaded, models.RequiredDocumentCount)
	fmt.Fprintf(&b, "Training:  %d%% (%d of %d completed)\n",
		models.TrainingProgress(completed), completed, models.CurriculumSize)
	fmt.Fprintf(&b, "Overall:   %d%%\n\n", models.OverallProgress(tier, uploaded, completed))

	b.WriteString("DOCUMENT STATUS\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, docType := range models.RequiredDocuments {
		if sub, ok := subsByType[docType]; ok {
			fmt.Fprintf(&b, "%-28s %s", docType, sub.Status)
			if sub.FileName != "" {
				fmt.Fprintf(&b, " (%s)", sub.FileName)
			}
			b.WriteString("\n")
		} else {
			fmt.Fprintf(&b, "%-28s %s\n", docType, models.DocumentStatusPending)
		}
	}
	b.WriteString("\n")

	b.WriteString("TRAINING STATUS\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, m := range models.Curriculum {
		status := models.TrainingStatusNotStarted
		progress := 0
		if rec, ok := recsByModule[m.Name]; ok {
			status = rec.Status
			progress = rec.Progress
		}
		fmt.Fprintf(&b, "%-28s %-12s %3d%% (%d min)\n", m.Name, status, progress, m.Duration)
	}
	b.WriteString("\n")

	b.WriteString(line + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", now.Format("2006-01-02 15:04:05 MST"))
	b.WriteString(line + "\n")

	h.logger.Info("report generated", map[string]interface{}{
		"employeeEmail": input.EmployeeEmail,
		"uploaded":      uploaded,
		"completed":     completed,
	})

	return &Output{
		Report:   b.String(),
		FileName: fmt.Sprintf("onboarding-report-%s-%s.txt", account.ID, now.Format("20060102")),
	}, nil
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		value = "Not provided"
	}
	fmt.Fprintf(b, "%-14s %s\n", label+":", value)
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
