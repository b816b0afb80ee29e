// internal/workers/data-access/query-onboarding/models.go
package queryonboarding

import "onboarding-workers/internal/models"

type Input struct {
	QueryType     string                 `json:"queryType"`
	EmployeeEmail string                 `json:"employeeEmail,omitempty"`
	Filters       map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

var (
	QueryTypeEmployeeRoster   = models.QueryTypeEmployeeRoster
	QueryTypeEmployeeDetail   = models.QueryTypeEmployeeDetail
	QueryTypePendingDocuments = models.QueryTypePendingDocuments
	QueryTypeOnboardingStats  = models.QueryTypeOnboardingStats
	QueryTypeTrainingOverview = models.QueryTypeTrainingOverview
)
