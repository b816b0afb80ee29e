// internal/workers/onboarding/verify-document/models.go
package verifydocument

type Input struct {
	SubmissionID string `json:"submissionId"`
	Decision     string `json:"decision"`
	ReviewedBy   string `json:"reviewedBy"`
}

type Output struct {
	SubmissionID  string `json:"submissionId"`
	EmployeeEmail string `json:"employeeEmail"`
	DocumentType  string `json:"documentType"`
	Status        string `json:"documentStatus"`
	ReviewedBy    string `json:"reviewedBy"`
}
