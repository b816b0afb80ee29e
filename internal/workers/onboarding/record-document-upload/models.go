// internal/workers/onboarding/record-document-upload/models.go
package recorddocumentupload

type Input struct {
	EmployeeEmail string `json:"employeeEmail"`
	DocumentType  string `json:"documentType"`
	FileName      string `json:"fileName"`
	FileURL       string `json:"fileUrl,omitempty"`
}

type Output struct {
	Applied          bool   `json:"applied"`
	SubmissionID     string `json:"submissionId,omitempty"`
	Status           string `json:"documentStatus,omitempty"`
	UploadedCount    int    `json:"uploadedCount"`
	DocumentProgress int    `json:"documentProgress"`
}
