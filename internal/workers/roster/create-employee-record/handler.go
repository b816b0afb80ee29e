// internal/workers/roster/create-employee-record/handler.go
package createemployeerecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/common/validation"
	"onboarding-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-employee-record"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateEmployee    = errors.New("DUPLICATE_EMPLOYEE")
	ErrValidationFailed     = errors.New("VALIDATION_FAILED")
)

// Handler creates a roster account for a new hire and seeds both ledgers:
// a pending row per checklist document and a not-started row per curriculum
// module. The welcome notification is handed to the next task in the process
// via the notificationType variable.
type Handler struct {
	db        *sql.DB
	logger    logger.Logger
	documents models.DocumentLedger
	training  models.TrainingLedger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger, documents models.DocumentLedger, training models.TrainingLedger) *Handler {
	return &Handler{
		db:        db,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		documents: documents,
		training:  training,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		if errors.Is(err, ErrDatabaseInsertFailed) {
			errorCode = "DATABASE_INSERT_FAILED"
			retries = 3
		} else if errors.Is(err, ErrDuplicateEmployee) {
			errorCode = "DUPLICATE_EMPLOYEE"
			retries = 0
		} else if errors.Is(err, ErrValidationFailed) {
			errorCode = "VALIDATION_FAILED"
			retries = 0
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: firstName, lastName and email are required", ErrValidationFailed)
	}
	if !validation.ValidateEmail(input.Email) {
		return nil, fmt.Errorf("%w: invalid email %q", ErrValidationFailed, input.Email)
	}
	if input.Phone != "" && !validation.ValidatePhone(input.Phone) {
		return nil, fmt.Errorf("%w: invalid phone number %q", ErrValidationFailed, input.Phone)
	}

	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM employee_accounts WHERE email = $1
		)`, input.Email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: account already exists for %s", ErrDuplicateEmployee, input.Email)
	}

	employeeID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO employee_accounts (
			id, first_name, last_name, email, phone, department, position,
			manager, work_location, start_date, progress, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $12)`,
		employeeID,
		input.FirstName,
		input.LastName,
		input.Email,
		input.Phone,
		input.Department,
		input.Position,
		input.Manager,
		input.WorkLocation,
		input.StartDate,
		input.CreatedBy,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	if err := h.documents.Seed(ctx, input.Email); err != nil {
		return nil, fmt.Errorf("%w: checklist seed failed: %v", ErrDatabaseInsertFailed, err)
	}
	if err := h.training.Seed(ctx, input.Email); err != nil {
		return nil, fmt.Errorf("%w: curriculum seed failed: %v", ErrDatabaseInsertFailed, err)
	}

	// Audit log entry (non-critical, log error but don't fail)
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"email":      input.Email,
		"department": input.Department,
		"position":   input.Position,
		"createdBy":  input.CreatedBy,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"employee_created",
		"employee",
		employeeID,
		auditDetailsJSON,
		createdAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":      err,
			"employeeId": employeeID,
		})
	}

	fullName := input.FirstName + " " + input.LastName

	h.logger.Info("employee record created", map[string]interface{}{
		"employeeId": employeeID,
		"email":      input.Email,
		"department": input.Department,
		"position":   input.Position,
	})

	return &Output{
		EmployeeID:       employeeID,
		Email:            input.Email,
		FullName:         fullName,
		CreatedAt:        createdAt,
		NotificationType: "welcome_email",
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
	} else {
		h.logger.Info("job completed successfully", map[string]interface{}{
			"jobKey": job.Key,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
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
