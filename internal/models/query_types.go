// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeEmployeeRoster   QueryType = "employee_roster"
	QueryTypeEmployeeDetail   QueryType = "employee_detail"
	QueryTypePendingDocuments QueryType = "pending_documents"
	QueryTypeOnboardingStats  QueryType = "onboarding_stats"
	QueryTypeTrainingOverview QueryType = "training_overview"
)
