// internal/ledger/document.go
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

// PostgresDocumentLedger stores document submissions in the
// document_submissions table.
type PostgresDocumentLedger struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresDocumentLedger(db *sql.DB, log logger.Logger) *PostgresDocumentLedger {
	return &PostgresDocumentLedger{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "document-ledger"}),
	}
}

// Seed inserts a pending row per checklist document for a new employee, so
// the submission list is full-length from day one.
func (l *PostgresDocumentLedger) Seed(ctx context.Context, employeeEmail string) error {
	for _, docType := range models.RequiredDocuments {
		_, err := l.db.ExecContext(ctx, `
			INSERT INTO document_submissions (
				id, employee_email, document_type, status
			) VALUES ($1, $2, $3, $4)
			ON CONFLICT (employee_email, document_type) DO NOTHING`,
			uuid.New().String(), employeeEmail, docType, models.DocumentStatusPending,
		)
		if err != nil {
			return fmt.Errorf("seed document %q: %w", docType, err)
		}
	}
	return nil
}

// RecordUpload records an upload against the checklist. A repeat upload of
// the same type replaces the file reference on the existing row instead of
// creating a second one, so the uploaded count never double-counts. Callers
// are expected to have validated the document type against the checklist.
func (l *PostgresDocumentLedger) RecordUpload(ctx context.Context, employeeEmail, docType, fileName, fileURL string) (*models.DocumentSubmission, error) {
	var existing models.DocumentSubmission
	err := l.db.QueryRowContext(ctx, `
		SELECT id, status FROM document_submissions
		WHERE employee_email = $1 AND document_type = $2`,
		employeeEmail, docType,
	).Scan(&existing.ID, &existing.Status)

	now := time.Now().UTC()

	if err == nil {
		// Forward-only: a verified submission keeps its status on re-upload,
		// anything else becomes uploaded again.
		status := models.DocumentStatusUploaded
		if existing.Status == models.DocumentStatusVerified {
			status = models.DocumentStatusVerified
		}

		_, err = l.db.ExecContext(ctx, `
			UPDATE document_submissions
			SET file_name = $1, file_url = $2, status = $3, submitted_at = $4
			WHERE id = $5`,
			fileName, fileURL, status, now, existing.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("replace submission: %w", err)
		}

		return &models.DocumentSubmission{
			ID:            existing.ID,
			EmployeeEmail: employeeEmail,
			DocumentType:  docType,
			FileName:      fileName,
			FileURL:       fileURL,
			Status:        status,
			SubmittedAt:   now,
		}, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("submission lookup: %w", err)
	}

	sub := &models.DocumentSubmission{
		ID:            uuid.New().String(),
		EmployeeEmail: employeeEmail,
		DocumentType:  docType,
		FileName:      fileName,
		FileURL:       fileURL,
		Status:        models.DocumentStatusUploaded,
		SubmittedAt:   now,
	}

	_, err = l.db.ExecContext(ctx, `
		INSERT INTO document_submissions (
			id, employee_email, document_type, file_name, file_url, status, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.EmployeeEmail, sub.DocumentType, sub.FileName, sub.FileURL, sub.Status, sub.SubmittedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	return sub, nil
}

// MarkVerified sets an uploaded submission to verified or rejected.
func (l *PostgresDocumentLedger) MarkVerified(ctx context.Context, submissionID, verifiedBy, status string) (*models.DocumentSubmission, error) {
	now := time.Now().UTC()

	res, err := l.db.ExecContext(ctx, `
		UPDATE document_submissions
		SET status = $1, verified_at = $2, verified_by = $3
		WHERE id = $4`,
		status, now, verifiedBy, submissionID,
	)
	if err != nil {
		return nil, fmt.Errorf("verify submission: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("verify submission: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	sub := &models.DocumentSubmission{
		ID:         submissionID,
		Status:     status,
		VerifiedAt: &now,
		VerifiedBy: verifiedBy,
	}

	err = l.db.QueryRowContext(ctx, `
		SELECT employee_email, document_type, file_name, file_url, submitted_at
		FROM document_submissions WHERE id = $1`,
		submissionID,
	).Scan(&sub.EmployeeEmail, &sub.DocumentType, &sub.FileName, &sub.FileURL, &sub.SubmittedAt)
	if err != nil {
		l.logger.Warn("verified submission readback failed", map[string]interface{}{
			"submissionId": submissionID,
			"error":        err.Error(),
		})
	}

	return sub, nil
}

// UploadedCount returns how many checklist types have been uploaded.
// Verified and rejected submissions count: they were uploaded first.
func (l *PostgresDocumentLedger) UploadedCount(ctx context.Context, employeeEmail string) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM document_submissions
		WHERE employee_email = $1 AND status <> $2`,
		employeeEmail, models.DocumentStatusPending,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("uploaded count: %w", err)
	}
	return count, nil
}

// Submissions returns all submissions for one employee, checklist order.
func (l *PostgresDocumentLedger) Submissions(ctx context.Context, employeeEmail string) ([]models.DocumentSubmission, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, employee_email, document_type, file_name, file_url, status, submitted_at, verified_at, verified_by
		FROM document_submissions
		WHERE employee_email = $1
		ORDER BY document_type`,
		employeeEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []models.DocumentSubmission
	for rows.Next() {
		var s models.DocumentSubmission
		var fileName, fileURL, verifiedBy sql.NullString
		var submittedAt, verifiedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.EmployeeEmail, &s.DocumentType, &fileName, &fileURL, &s.Status, &submittedAt, &verifiedAt, &verifiedBy); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		// Seeded pending rows have no file or submission time yet.
		s.FileName = fileName.String
		s.FileURL = fileURL.String
		s.VerifiedBy = verifiedBy.String
		s.SubmittedAt = submittedAt.Time
		if verifiedAt.Valid {
			t := verifiedAt.Time
			s.VerifiedAt = &t
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	return subs, nil
}
