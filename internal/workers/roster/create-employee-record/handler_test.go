// internal/workers/roster/create-employee-record/handler_test.go
package createemployeerecord

import (
	"context"
	"regexp"
	"testing"

	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/ledger"
	"onboarding-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *ledger.MemoryDocumentLedger, *ledger.MemoryTrainingLedger) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg, err := LoadConfig()
	require.NoError(t, err)

	documents := ledger.NewMemoryDocumentLedger()
	training := ledger.NewMemoryTrainingLedger()
	return NewHandler(cfg, db, logger.NewTestLogger(t), documents, training), mock, documents, training
}

func validInput() *Input {
	return &Input{
		FirstName:  "Sam",
		LastName:   "Ortiz",
		Email:      "sam@company.com",
		Department: "Engineering",
		Position:   "Backend Engineer",
		CreatedBy:  "hr.admin@company.com",
	}
}

func TestExecute_CreatesAccountAndSeedsLedgers(t *testing.T) {
	h, mock, documents, training := createTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(`)).
		WithArgs("sam@company.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO employee_accounts`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO audit_log`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	output, err := h.Execute(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, output.EmployeeID)
	assert.Equal(t, "sam@company.com", output.Email)
	assert.Equal(t, "Sam Ortiz", output.FullName)
	assert.Equal(t, "welcome_email", output.NotificationType)

	records, err := training.Records(context.Background(), "sam@company.com")
	require.NoError(t, err)
	assert.Len(t, records, 8)

	subs, err := documents.Submissions(context.Background(), "sam@company.com")
	require.NoError(t, err)
	require.Len(t, subs, 5)
	for _, sub := range subs {
		assert.Equal(t, models.DocumentStatusPending, sub.Status)
	}

	uploaded, err := documents.UploadedCount(context.Background(), "sam@company.com")
	require.NoError(t, err)
	assert.Zero(t, uploaded)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_DuplicateEmail(t *testing.T) {
	h, mock, _, _ := createTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(`)).
		WithArgs("sam@company.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := h.Execute(context.Background(), validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateEmployee)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_MissingRequiredFields(t *testing.T) {
	h, _, _, _ := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{FirstName: "Sam"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestExecute_InvalidEmailFormat(t *testing.T) {
	h, _, _, _ := createTestHandler(t)

	input := validInput()
	input.Email = "not-an-email"
	_, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestExecute_InvalidPhoneFormat(t *testing.T) {
	h, _, _, _ := createTestHandler(t)

	input := validInput()
	input.Phone = "12ab"
	_, err := h.Execute(context.Background(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestExecute_AuditLogFailureDoesNotFailJob(t *testing.T) {
	h, mock, _, _ := createTestHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(`)).
		WithArgs("sam@company.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO employee_accounts`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO audit_log`)).
		WillReturnError(assert.AnError)

	output, err := h.Execute(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, output.EmployeeID)
}
