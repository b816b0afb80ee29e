// internal/workers/onboarding/aggregate-progress/models.go
package aggregateprogress

import "onboarding-workers/internal/models"

type Input struct {
	EmployeeEmail string `json:"employeeEmail"`
}

type Output struct {
	Snapshot models.ProgressSnapshot `json:"progressSnapshot"`
	Overall  int                     `json:"overallProgress"`
	Cached   bool                    `json:"progressCached"`
}
