// internal/ledger/training.go
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/models"

	"github.com/google/uuid"
)

// PostgresTrainingLedger stores per-module training state in the
// training_progress table. Rows are seeded when the account is created, one
// per curriculum module.
type PostgresTrainingLedger struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresTrainingLedger(db *sql.DB, log logger.Logger) *PostgresTrainingLedger {
	return &PostgresTrainingLedger{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "training-ledger"}),
	}
}

// Seed inserts a not-started row per curriculum module for a new employee.
// Modules get their resource link from DefaultModuleResources.
func (l *PostgresTrainingLedger) Seed(ctx context.Context, employeeEmail string) error {
	for _, m := range models.Curriculum {
		_, err := l.db.ExecContext(ctx, `
			INSERT INTO training_progress (
				id, employee_email, module_name, status, progress, resource_url
			) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (employee_email, module_name) DO NOTHING`,
			uuid.New().String(), employeeEmail, m.Name,
			models.TrainingStatusNotStarted, 0, DefaultModuleResources[m.Name],
		)
		if err != nil {
			return fmt.Errorf("seed module %q: %w", m.Name, err)
		}
	}
	return nil
}

// Start moves a not-started module to in-progress at 20 percent. It fails
// closed: without a resource link there is nothing to open, so the row is
// left untouched and ErrResourceMissing comes back. Starting a module that
// is already underway or done just returns the current row.
func (l *PostgresTrainingLedger) Start(ctx context.Context, employeeEmail, moduleName string) (*models.TrainingRecord, error) {
	rec, err := l.Record(ctx, employeeEmail, moduleName)
	if err != nil {
		return nil, err
	}

	if rec.Status != models.TrainingStatusNotStarted {
		return rec, nil
	}
	if rec.ResourceURL == "" {
		return nil, ErrResourceMissing
	}

	now := time.Now().UTC()
	_, err = l.db.ExecContext(ctx, `
		UPDATE training_progress
		SET status = $1, progress = $2, started_at = $3
		WHERE id = $4`,
		models.TrainingStatusInProgress, 20, now, rec.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("start module: %w", err)
	}

	rec.Status = models.TrainingStatusInProgress
	rec.Progress = 20
	rec.StartedAt = &now
	return rec, nil
}

// Complete moves an in-progress module to completed at 100 percent.
// Completing twice is a no-op; completing a module that was never started
// returns ErrNotInProgress.
func (l *PostgresTrainingLedger) Complete(ctx context.Context, employeeEmail, moduleName string) (*models.TrainingRecord, error) {
	rec, err := l.Record(ctx, employeeEmail, moduleName)
	if err != nil {
		return nil, err
	}

	if rec.Status == models.TrainingStatusCompleted {
		return rec, nil
	}
	if rec.Status != models.TrainingStatusInProgress {
		return nil, ErrNotInProgress
	}

	now := time.Now().UTC()
	_, err = l.db.ExecContext(ctx, `
		UPDATE training_progress
		SET status = $1, progress = $2, completed_at = $3
		WHERE id = $4`,
		models.TrainingStatusCompleted, 100, now, rec.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("complete module: %w", err)
	}

	rec.Status = models.TrainingStatusCompleted
	rec.Progress = 100
	rec.CompletedAt = &now
	return rec, nil
}

// Record fetches the row for one module.
func (l *PostgresTrainingLedger) Record(ctx context.Context, employeeEmail, moduleName string) (*models.TrainingRecord, error) {
	var rec models.TrainingRecord
	var resourceURL sql.NullString
	var startedAt, completedAt sql.NullTime

	err := l.db.QueryRowContext(ctx, `
		SELECT id, employee_email, module_name, status, progress, resource_url, started_at, completed_at
		FROM training_progress
		WHERE employee_email = $1 AND module_name = $2`,
		employeeEmail, moduleName,
	).Scan(&rec.ID, &rec.EmployeeEmail, &rec.ModuleName, &rec.Status, &rec.Progress, &resourceURL, &startedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("module lookup: %w", err)
	}

	rec.ResourceURL = resourceURL.String
	if startedAt.Valid {
		t := startedAt.Time
		rec.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		rec.CompletedAt = &t
	}
	return &rec, nil
}

// CompletedCount returns how many curriculum modules are completed.
func (l *PostgresTrainingLedger) CompletedCount(ctx context.Context, employeeEmail string) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM training_progress
		WHERE employee_email = $1 AND status = $2`,
		employeeEmail, models.TrainingStatusCompleted,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("completed count: %w", err)
	}
	return count, nil
}

// Records returns all module rows for one employee in curriculum order.
func (l *PostgresTrainingLedger) Records(ctx context.Context, employeeEmail string) ([]models.TrainingRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, employee_email, module_name, status, progress, resource_url, started_at, completed_at
		FROM training_progress
		WHERE employee_email = $1`,
		employeeEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]models.TrainingRecord, models.CurriculumSize)
	for rows.Next() {
		var rec models.TrainingRecord
		var resourceURL sql.NullString
		var startedAt, completedAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.EmployeeEmail, &rec.ModuleName, &rec.Status, &rec.Progress, &resourceURL, &startedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scan module: %w", err)
		}
		rec.ResourceURL = resourceURL.String
		if startedAt.Valid {
			t := startedAt.Time
			rec.StartedAt = &t
		}
		if completedAt.Valid {
			t := completedAt.Time
			rec.CompletedAt = &t
		}
		byName[rec.ModuleName] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}

	// Curriculum order, not insertion order.
	out := make([]models.TrainingRecord, 0, len(byName))
	for _, m := range models.Curriculum {
		if rec, ok := byName[m.Name]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
