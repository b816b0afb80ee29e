package ledger

import (
	"context"
	"regexp"
	"testing"

	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingRow(id, email, module, status string, progress int, resourceURL string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "employee_email", "module_name", "status", "progress", "resource_url", "started_at", "completed_at",
	}).AddRow(id, email, module, status, progress, resourceURL, nil, nil)
}

func TestPostgresTrainingLedger_Start(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM training_progress`)).
		WithArgs("sam@company.com", "Company Overview").
		WillReturnRows(trainingRow("rec-1", "sam@company.com", "Company Overview",
			models.TrainingStatusNotStarted, 0, "https://learn.company.com/onboarding/company-overview"))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE training_progress`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	l := NewPostgresTrainingLedger(db, logger.NewTestLogger(t))
	rec, err := l.Start(context.Background(), "sam@company.com", "Company Overview")

	require.NoError(t, err)
	assert.Equal(t, models.TrainingStatusInProgress, rec.Status)
	assert.Equal(t, 20, rec.Progress)
	assert.NotNil(t, rec.StartedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTrainingLedger_Start_NoResourceFailsClosed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM training_progress`)).
		WithArgs("sam@company.com", "Team Introduction").
		WillReturnRows(trainingRow("rec-8", "sam@company.com", "Team Introduction",
			models.TrainingStatusNotStarted, 0, ""))

	l := NewPostgresTrainingLedger(db, logger.NewTestLogger(t))
	_, err = l.Start(context.Background(), "sam@company.com", "Team Introduction")

	// No UPDATE was expected: the row must stay untouched.
	assert.ErrorIs(t, err, ErrResourceMissing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTrainingLedger_Start_AlreadyInProgressIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM training_progress`)).
		WithArgs("sam@company.com", "Code of Conduct").
		WillReturnRows(trainingRow("rec-2", "sam@company.com", "Code of Conduct",
			models.TrainingStatusInProgress, 20, "https://learn.company.com/onboarding/code-of-conduct"))

	l := NewPostgresTrainingLedger(db, logger.NewTestLogger(t))
	rec, err := l.Start(context.Background(), "sam@company.com", "Code of Conduct")

	require.NoError(t, err)
	assert.Equal(t, models.TrainingStatusInProgress, rec.Status)
	assert.Equal(t, 20, rec.Progress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTrainingLedger_Complete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM training_progress`)).
		WithArgs("sam@company.com", "Safety Guidelines").
		WillReturnRows(trainingRow("rec-3", "sam@company.com", "Safety Guidelines",
			models.TrainingStatusInProgress, 20, "https://learn.company.com/onboarding/safety-guidelines"))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE training_progress`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	l := NewPostgresTrainingLedger(db, logger.NewTestLogger(t))
	rec, err := l.Complete(context.Background(), "sam@company.com", "Safety Guidelines")

	require.NoError(t, err)
	assert.Equal(t, models.TrainingStatusCompleted, rec.Status)
	assert.Equal(t, 100, rec.Progress)
	assert.NotNil(t, rec.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTrainingLedger_Complete_NotStarted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM training_progress`)).
		WithArgs("sam@company.com", "Benefits Overview").
		WillReturnRows(trainingRow("rec-5", "sam@company.com", "Benefits Overview",
			models.TrainingStatusNotStarted, 0, "https://learn.company.com/onboarding/benefits"))

	l := NewPostgresTrainingLedger(db, logger.NewTestLogger(t))
	_, err = l.Complete(context.Background(), "sam@company.com", "Benefits Overview")

	assert.ErrorIs(t, err, ErrNotInProgress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryTrainingLedger_Lifecycle(t *testing.T) {
	l := NewMemoryTrainingLedger()
	ctx := context.Background()

	rec, err := l.Start(ctx, "sam@company.com", "Company Overview")
	require.NoError(t, err)
	assert.Equal(t, models.TrainingStatusInProgress, rec.Status)
	assert.Equal(t, 20, rec.Progress)

	rec, err = l.Complete(ctx, "sam@company.com", "Company Overview")
	require.NoError(t, err)
	assert.Equal(t, models.TrainingStatusCompleted, rec.Status)

	// Completing again is a no-op, not an error.
	again, err := l.Complete(ctx, "sam@company.com", "Company Overview")
	require.NoError(t, err)
	assert.Equal(t, rec.Status, again.Status)

	count, err := l.CompletedCount(ctx, "sam@company.com")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryTrainingLedger_StartWithoutResourceLeavesStateUnchanged(t *testing.T) {
	l := NewMemoryTrainingLedger()
	ctx := context.Background()

	// Team Introduction ships without a resource link.
	_, err := l.Start(ctx, "sam@company.com", "Team Introduction")
	assert.ErrorIs(t, err, ErrResourceMissing)

	rec, err := l.Record(ctx, "sam@company.com", "Team Introduction")
	require.NoError(t, err)
	assert.Equal(t, models.TrainingStatusNotStarted, rec.Status)
	assert.Equal(t, 0, rec.Progress)

	// Once HR attaches a link, start succeeds.
	l.SetResourceURL("sam@company.com", "Team Introduction", "https://learn.company.com/onboarding/team-intro")
	rec, err = l.Start(ctx, "sam@company.com", "Team Introduction")
	require.NoError(t, err)
	assert.Equal(t, models.TrainingStatusInProgress, rec.Status)
}

func TestMemoryTrainingLedger_RecordsFollowCurriculumOrder(t *testing.T) {
	l := NewMemoryTrainingLedger()
	ctx := context.Background()

	require.NoError(t, l.Seed(ctx, "sam@company.com"))
	recs, err := l.Records(ctx, "sam@company.com")
	require.NoError(t, err)
	require.Len(t, recs, models.CurriculumSize)
	for i, m := range models.Curriculum {
		assert.Equal(t, m.Name, recs[i].ModuleName)
	}
}
