// internal/workers/onboarding/verify-document/handler_test.go
package verifydocument

import (
	"context"
	"testing"

	"onboarding-workers/internal/common/logger"
	"onboarding-workers/internal/ledger"
	"onboarding-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestHandler(t *testing.T) (*Handler, *ledger.MemoryDocumentLedger) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	docs := ledger.NewMemoryDocumentLedger()
	return NewHandler(cfg, logger.NewTestLogger(t), docs), docs
}

func TestExecute_VerifiesSubmission(t *testing.T) {
	h, docs := createTestHandler(t)

	sub, err := docs.RecordUpload(context.Background(), "sam@company.com", "Government ID", "passport.pdf", "")
	require.NoError(t, err)

	output, err := h.Execute(context.Background(), &Input{
		SubmissionID: sub.ID,
		Decision:     models.DocumentStatusVerified,
		ReviewedBy:   "hr.admin@company.com",
	})
	require.NoError(t, err)

	assert.Equal(t, sub.ID, output.SubmissionID)
	assert.Equal(t, "sam@company.com", output.EmployeeEmail)
	assert.Equal(t, "Government ID", output.DocumentType)
	assert.Equal(t, models.DocumentStatusVerified, output.Status)
}

func TestExecute_RejectedStillCountsAsUploaded(t *testing.T) {
	h, docs := createTestHandler(t)

	sub, err := docs.RecordUpload(context.Background(), "sam@company.com", "Medical Certificate", "med.pdf", "")
	require.NoError(t, err)

	output, err := h.Execute(context.Background(), &Input{
		SubmissionID: sub.ID,
		Decision:     models.DocumentStatusRejected,
		ReviewedBy:   "hr.admin@company.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusRejected, output.Status)

	count, err := docs.UploadedCount(context.Background(), "sam@company.com")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestExecute_UnknownSubmission(t *testing.T) {
	h, _ := createTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		SubmissionID: "missing-id",
		Decision:     models.DocumentStatusVerified,
		ReviewedBy:   "hr.admin@company.com",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
