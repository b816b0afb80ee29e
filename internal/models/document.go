// internal/models/document.go
package models

import (
	"context"
	"time"
)

// Document submission statuses. Transitions are forward-only: a submission
// never moves back to pending once uploaded.
const (
	DocumentStatusPending  = "pending"
	DocumentStatusUploaded = "uploaded"
	DocumentStatusVerified = "verified"
	DocumentStatusRejected = "rejected"
)

// RequiredDocuments is the fixed onboarding checklist. Uploads for any other
// type are ignored rather than tracked.
var RequiredDocuments = []string{
	"Government ID",
	"Address Proof",
	"Educational Certificate",
	"Previous Employment",
	"Medical Certificate",
}

// RequiredDocumentCount is the checklist size used by progress math.
const RequiredDocumentCount = 5

// IsRequiredDocument reports whether docType is on the checklist.
func IsRequiredDocument(docType string) bool {
	for _, d := range RequiredDocuments {
		if d == docType {
			return true
		}
	}
	return false
}

// DocumentSubmission is one row of the per-employee document ledger.
type DocumentSubmission struct {
	ID            string     `json:"id" db:"id"`
	EmployeeEmail string     `json:"employeeEmail" db:"employee_email"`
	DocumentType  string     `json:"documentType" db:"document_type"`
	FileName      string     `json:"fileName" db:"file_name"`
	FileURL       string     `json:"fileUrl,omitempty" db:"file_url"`
	Status        string     `json:"status" db:"status"`
	SubmittedAt   time.Time  `json:"submittedAt" db:"submitted_at"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty" db:"verified_at"`
	VerifiedBy    string     `json:"verifiedBy,omitempty" db:"verified_by"`
}

// IsUploaded reports whether the submission counts toward document progress.
// Verified and rejected submissions were uploaded first, so they count too.
func (d *DocumentSubmission) IsUploaded() bool {
	return d.Status == DocumentStatusUploaded ||
		d.Status == DocumentStatusVerified ||
		d.Status == DocumentStatusRejected
}

// DocumentLedger tracks uploads against the fixed checklist for one store.
// Implementations must treat unknown document types as a no-op and must not
// double-count repeat uploads of the same type.
type DocumentLedger interface {
	Seed(ctx context.Context, employeeEmail string) error
	RecordUpload(ctx context.Context, employeeEmail, docType, fileName, fileURL string) (*DocumentSubmission, error)
	MarkVerified(ctx context.Context, submissionID, verifiedBy, status string) (*DocumentSubmission, error)
	UploadedCount(ctx context.Context, employeeEmail string) (int, error)
	Submissions(ctx context.Context, employeeEmail string) ([]DocumentSubmission, error)
}
